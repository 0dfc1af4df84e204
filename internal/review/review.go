// Package review walks uncertain matches past a human after the
// concurrent stage has finished.
package review

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"fwexport/internal/linker"
	"fwexport/internal/pipeline"
)

// Session confirms or rejects needs-review matches sequentially.
// In/Out default to the process terminal in the CLI; tests inject
// buffers. When AutoDecline is set (no terminal attached) every
// uncertain match is downgraded without prompting.
type Session struct {
	In          io.Reader
	Out         io.Writer
	AutoDecline bool
	Log         *slog.Logger
}

// Confirm resolves every needs-review result in place. "y"/"yes"
// promotes the match to confirmed, "n"/"no" or an empty answer
// rejects it to not-found, anything else re-prompts.
func (s *Session) Confirm(results []pipeline.Result) error {
	scanner := bufio.NewScanner(s.In)

	for i := range results {
		if results[i].Match.Status != linker.StatusNeedsReview {
			continue
		}

		if s.AutoDecline {
			results[i].Match.Status = linker.StatusNotFound
			if s.Log != nil {
				s.Log.Info("no terminal attached, declining uncertain match",
					"title", results[i].Title.Name, "imdb_id", results[i].Match.Candidate.ID)
			}
			continue
		}

		accepted, err := s.prompt(scanner, &results[i])
		if err != nil {
			return err
		}
		if accepted {
			results[i].Match.Status = linker.StatusConfirmed
		} else {
			results[i].Match.Status = linker.StatusNotFound
		}
	}
	return nil
}

func (s *Session) prompt(scanner *bufio.Scanner, res *pipeline.Result) (bool, error) {
	cand := res.Match.Candidate
	for {
		fmt.Fprintf(s.Out, "[?] Is https://www.imdb.com/title/tt%s (%q, similarity %.2f) a good match for %q? (y/N): ",
			cand.ID, cand.Title, res.Match.Similarity, res.Title.Name)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, fmt.Errorf("read answer: %w", err)
			}
			// Input exhausted counts as a decline.
			fmt.Fprintln(s.Out)
			return false, nil
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no", "":
			return false, nil
		}
		// Not an answer; ask again.
	}
}
