// Package export writes confirmed matches as CSV files in the IMDb
// import schema, split into three buckets by rating status.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fwexport/internal/linker"
	"fwexport/internal/pipeline"
)

// header is the fixed IMDb ratings-import column layout. Only Const,
// Your Rating, Title and Year are filled; the rest stay empty for
// schema compatibility.
var header = []string{
	"Const",
	"Your Rating",
	"Date Rated",
	"Title",
	"URL",
	"Title Type",
	"IMDb Rating",
	"Runtime (mins)",
	"Year",
	"Genres",
	"Num Votes",
	"Release Date",
	"Directors",
}

const (
	colConst  = 0
	colRating = 1
	colTitle  = 3
	colYear   = 8
)

// Bucket names the three output files.
type Bucket int

const (
	Generic Bucket = iota
	Favorited
	Want2See
)

func (b Bucket) filename() string {
	switch b {
	case Favorited:
		return "favorited.csv"
	case Want2See:
		return "want2see.csv"
	default:
		return "generic.csv"
	}
}

// Files holds the three open bucket writers.
type Files struct {
	writers [3]*csv.Writer
	files   [3]*os.File
	counts  [3]int
}

// Create opens the three bucket files under dir, writing headers.
func Create(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	var f Files
	for b := Generic; b <= Want2See; b++ {
		file, err := os.Create(filepath.Join(dir, b.filename()))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create %s: %w", b.filename(), err)
		}
		w := csv.NewWriter(file)
		if err := w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
		f.files[b] = file
		f.writers[b] = w
	}
	return &f, nil
}

// Classify picks the bucket for a result: favorited votes, plain
// votes, and unvoted watchlist entries each get their own file.
func Classify(res *pipeline.Result) Bucket {
	switch {
	case res.Title.Rating == nil:
		return Want2See
	case res.Title.Rating.Favorite:
		return Favorited
	default:
		return Generic
	}
}

// Write appends one confirmed result to its bucket.
func (f *Files) Write(res *pipeline.Result) error {
	if res.Match.Status != linker.StatusConfirmed {
		return fmt.Errorf("refusing to export %s match for title %d", res.Match.Status, res.Title.ID)
	}

	rating := "no.vote"
	if res.Title.Rating != nil {
		rating = strconv.Itoa(res.Title.Rating.Rate)
	}

	row := make([]string, len(header))
	row[colConst] = res.Match.Candidate.ID
	row[colRating] = rating
	row[colTitle] = linker.PreferredTitle(&res.Title)
	row[colYear] = strconv.Itoa(res.Title.Year.Start)

	bucket := Classify(res)
	if err := f.writers[bucket].Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	f.counts[bucket]++
	return nil
}

// Count reports how many rows a bucket received.
func (f *Files) Count(b Bucket) int {
	return f.counts[b]
}

// Close flushes and closes every bucket file.
func (f *Files) Close() error {
	var firstErr error
	for i, w := range f.writers {
		if w != nil {
			w.Flush()
			if err := w.Error(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if f.files[i] != nil {
			if err := f.files[i].Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
