package pipeline

// Pool shares a small number of equivalent clients round-robin across
// many workers. The clients themselves are read-only after
// construction and safe for concurrent use; the pool adds no locking
// because selection is purely positional.
type Pool[T any] struct {
	items []T
}

// NewPool creates a pool over the given clients.
func NewPool[T any](items []T) *Pool[T] {
	return &Pool[T]{items: items}
}

// Get returns the client for a work-unit index.
func (p *Pool[T]) Get(i int) T {
	return p.items[i%len(p.items)]
}

// Size reports how many clients the pool holds.
func (p *Pool[T]) Size() int {
	return len(p.items)
}
