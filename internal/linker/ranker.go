package linker

import (
	"sort"
	"strings"

	"fwexport/internal/filmweb"
)

// FloorScore marks labels that are never worth querying with.
const FloorScore = 0

// labelRanks maps label markers to scores, checked in order with the
// first hit winning. Labels closer to the English or original release
// name rank higher because they are the likeliest to match IMDb's
// English-language index.
var labelRanks = []struct {
	marker string
	score  int
}{
	{"USA", 10},
	{"angielski", 10},
	{"oryginalny", 9},
	{"główny", 8},
	{"alternatywna pisownia", 7},
	{"inny tytuł", 6},
	{"Polska", 5},
}

// ScoreLabel scores an alternate-title locale label. Total over any
// input; unknown labels get the floor score and are never queried.
func ScoreLabel(label string) int {
	for _, rank := range labelRanks {
		if strings.Contains(label, rank.marker) {
			return rank.score
		}
	}
	return FloorScore
}

// queryAttempt is one title text to try against IMDb, with its rank.
type queryAttempt struct {
	Title string
	Score int
}

// buildQueue orders the canonical name and every alternate title by
// descending score, dropping floor-scored entries. The sort is stable
// so equally-ranked alternates keep their page order, with the
// canonical name always first among score-10 entries.
func buildQueue(t *filmweb.Title) []queryAttempt {
	attempts := make([]queryAttempt, 0, len(t.Alternates)+1)
	attempts = append(attempts, queryAttempt{Title: t.Name, Score: 10})
	for _, alt := range t.Alternates {
		attempts = append(attempts, queryAttempt{Title: alt.Title, Score: ScoreLabel(alt.Label)})
	}

	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].Score > attempts[j].Score
	})

	for i, a := range attempts {
		if a.Score == FloorScore {
			return attempts[:i]
		}
	}
	return attempts
}

// PreferredTitle is the name used in the export: the highest-scored
// alternate when one exists, else the canonical name.
func PreferredTitle(t *filmweb.Title) string {
	best := ""
	bestScore := FloorScore
	for _, alt := range t.Alternates {
		if score := ScoreLabel(alt.Label); score > bestScore {
			best, bestScore = alt.Title, score
		}
	}
	if best == "" {
		return t.Name
	}
	return best
}
