package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"image_fetcher/internal/domain"
)

const maxTitleWidth = 48

var imageHeader = []string{"SOURCE", "YEAR", "TITLE", "URL"}

// Images writes a search result as an aligned table.
func Images(w io.Writer, result *domain.SearchResult) error {
	if _, err := fmt.Fprintf(w, "%d images for %q from %s\n\n", result.Count, result.Query, sourceList(result.Sources)); err != nil {
		return err
	}
	if len(result.Images) == 0 {
		return nil
	}
	return writeLines(w, table(imageRows(result.Images)))
}

// Timeline writes each period as a heading followed by its images.
func Timeline(w io.Writer, result *domain.TimelineResult) error {
	if _, err := fmt.Fprintf(w, "%d images for %q from %s\n", result.Count, result.Query, sourceList(result.Sources)); err != nil {
		return err
	}

	for _, p := range result.Periods {
		if _, err := fmt.Fprintf(w, "\n%s (%d)\n", periodHeading(p), len(p.Images)); err != nil {
			return err
		}
		if err := writeLines(w, table(imageRows(p.Images))); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func periodHeading(p domain.TimelinePeriod) string {
	if p.IsUndated() {
		return p.Label
	}
	return fmt.Sprintf("%s [%d-%d]", p.Label, p.StartYear, p.EndYear)
}

func sourceList(sources []domain.SourceID) string {
	if len(sources) == 0 {
		return "no sources"
	}
	names := make([]string, len(sources))
	for i, id := range sources {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}

func imageRows(images []domain.ImageRecord) [][]string {
	rows := make([][]string, 0, len(images)+1)
	rows = append(rows, imageHeader)
	for _, img := range images {
		year := "-"
		if img.HasYear() {
			year = strconv.Itoa(*img.Year)
		}
		rows = append(rows, []string{
			string(img.Source),
			year,
			runewidth.Truncate(singleLine(img.Title), maxTitleWidth, "…"),
			img.URL,
		})
	}
	return rows
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// table pads every cell to its column's display width. The last column is not padded.
func table(rows [][]string) []string {
	var colCount int
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}

	widths := make([]int, colCount)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
