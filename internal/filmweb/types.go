package filmweb

import (
	"strconv"
	"strings"
)

// Category identifies which of a user's title listings a record came from.
type Category int

const (
	Films Category = iota
	Serials
	WantToSee
)

func (c Category) String() string {
	switch c {
	case Films:
		return "films"
	case Serials:
		return "serials"
	case WantToSee:
		return "want2see"
	}
	return "unknown"
}

// pathSegment is the listing URL segment for the category.
func (c Category) pathSegment() string {
	switch c {
	case Films:
		return "films"
	case Serials:
		return "serials"
	default:
		return "wantToSee"
	}
}

// voteKind is the logged-vote API segment. WantToSee entries carry no vote.
func (c Category) voteKind() string {
	if c == Serials {
		return "serial"
	}
	return "film"
}

// Year is a release year or, for multi-season serials, an inclusive range.
// A single year has Start == End.
type Year struct {
	Start int
	End   int
}

// ParseYear parses listing-page year text. "2015" and "2015-2019" are
// valid; a range with an unparseable end collapses to the start year.
// A non-numeric start is a recoverable per-record failure.
func ParseYear(s string, titleID int) (Year, error) {
	s = strings.TrimSpace(s)
	if before, after, ok := strings.Cut(s, "-"); ok {
		start, err := strconv.Atoi(strings.TrimSpace(before))
		if err != nil {
			return Year{}, &ParseError{TitleID: titleID, Field: "year", Value: s}
		}
		end, err := strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			end = start
		}
		return Year{Start: start, End: end}, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return Year{}, &ParseError{TitleID: titleID, Field: "year", Value: s}
	}
	return Year{Start: year, End: year}, nil
}

// Rating is the user's vote on a title, decoded from the logged-vote API.
type Rating struct {
	Rate     int  `json:"rate"`
	Favorite bool `json:"favorite"`
	ViewDate int  `json:"viewDate"`
}

// AlternateTitle is one localized title variant with its label text
// (language/region description as shown on the titles page).
type AlternateTitle struct {
	Label string
	Title string
}

// Title is one rated or watchlisted entry scraped from a listing page.
// Immutable once scraped; resolution state lives alongside it in the
// pipeline results, not on the record itself.
type Title struct {
	ID         int
	URL        string
	Name       string
	Alternates []AlternateTitle
	Category   Category
	Duration   int // minutes, 0 when the title page carries none
	Year       Year
	Rating     *Rating // nil for watchlist entries
}

// Counts holds the per-category totals from the user's profile,
// used to derive how many listing pages to fetch.
type Counts struct {
	Films     int
	Serials   int
	WantToSee int
}

// PageCount converts an item count to the number of 25-item listing pages.
func PageCount(items int) int {
	return items/25 + 1
}
