package filmweb

import (
	"errors"
	"fmt"
)

// ErrAuthRejected indicates Filmweb rejected the session cookies.
// The cookies can be invalidated server-side mid-run; once this
// surfaces, every further authenticated request would fail the same
// way, so the whole run aborts.
var ErrAuthRejected = errors.New("filmweb rejected the session cookies")

// ParseError is a recoverable failure to parse one field of one
// record. The affected record is skipped and logged; the rest of the
// page is unaffected.
type ParseError struct {
	TitleID int
	Field   string
	Value   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("title %d: cannot parse %s from %q", e.TitleID, e.Field, e.Value)
}
