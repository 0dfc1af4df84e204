package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"fwexport/internal/export"
	"fwexport/internal/linker"
	"fwexport/internal/pipeline"
)

// printSummary reports the run: per-bucket export counts, skip
// tallies, and a table of every title that could not be matched.
func printSummary(w io.Writer, results []pipeline.Result, stats pipeline.Stats, files *export.Files) {
	fmt.Fprintf(w, "\nExported %d rated, %d favorited, %d watchlist titles (%d pages, %d titles scanned)\n",
		files.Count(export.Generic), files.Count(export.Favorited), files.Count(export.Want2See),
		stats.Pages, stats.Titles)

	if stats.SkippedRecords > 0 || stats.SkippedPages > 0 {
		fmt.Fprintf(w, "Skipped %d unparseable records and %d unreadable pages\n",
			stats.SkippedRecords, stats.SkippedPages)
	}

	var notFound []pipeline.Result
	for _, res := range results {
		if res.Match.Status == linker.StatusNotFound {
			notFound = append(notFound, res)
		}
	}
	if len(notFound) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%d titles could not be matched:\n", len(notFound))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Title", "Year", "Category", "Rating"})
	for _, res := range notFound {
		rating := ""
		if res.Title.Rating != nil {
			rating = fmt.Sprintf("%d/10", res.Title.Rating.Rate)
			if res.Title.Rating.Favorite {
				rating += " *"
			}
		}
		tw.AppendRow(table.Row{res.Title.Name, res.Title.Year.Start, res.Title.Category.String(), rating})
	}
	tw.Render()
}
