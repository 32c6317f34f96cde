package formatter

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

// ReportMeta describes how a report's song list was produced.
type ReportMeta struct {
	Title string
	Sort  models.SortDescriptor
	Query string // empty when unfiltered
}

// ExportToMarkdown renders songs as a Markdown table with the on-screen columns:
// features to three decimals, tempo to two, duration as m:ss and star ratings.
func ExportToMarkdown(songs []models.Song, meta ReportMeta) []byte {
	var buf bytes.Buffer

	title := meta.Title
	if title == "" {
		title = "Songs"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Songs**: %d\n", len(songs))
	if meta.Sort.Field != "" {
		fmt.Fprintf(&buf, "**Sorted by**: %s (%s)\n", meta.Sort.Field.Label(), meta.Sort.Direction)
	}
	if meta.Query != "" {
		fmt.Fprintf(&buf, "**Search**: %s\n", meta.Query)
	}
	buf.WriteString("\n")

	headers := make([]string, len(models.Fields))
	for i, f := range models.Fields {
		headers[i] = f.Label()
	}
	buf.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	buf.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")

	for _, s := range songs {
		buf.WriteString("| " + strings.Join(displayRow(s, escapePipes), " | ") + " |\n")
	}

	return buf.Bytes()
}

// ExportToText renders songs as an aligned plain-text table.
func ExportToText(songs []models.Song, meta ReportMeta) []byte {
	var buf bytes.Buffer

	title := meta.Title
	if title == "" {
		title = "Songs"
	}
	fmt.Fprintf(&buf, "%s\n", title)
	if meta.Query != "" {
		fmt.Fprintf(&buf, "Search: %s\n", meta.Query)
	}
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(songs))

	if len(songs) == 0 {
		return buf.Bytes()
	}

	rows := make([][]string, 0, len(songs)+1)
	header := make([]string, len(models.Fields))
	for i, f := range models.Fields {
		header[i] = f.Label()
	}
	rows = append(rows, header)
	for _, s := range songs {
		rows = append(rows, displayRow(s, func(t string) string { return runewidth.Truncate(t, 32, "…") }))
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		buf.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
	}

	return buf.Bytes()
}

// displayRow formats a song the way the dashboard table shows it.
func displayRow(s models.Song, title func(string) string) []string {
	return []string{
		strconv.Itoa(s.ID),
		s.SongID,
		title(s.Title),
		strconv.FormatFloat(s.Danceability, 'f', 3, 64),
		strconv.FormatFloat(s.Energy, 'f', 3, 64),
		strconv.Itoa(s.Mode),
		strconv.FormatFloat(s.Acousticness, 'f', 3, 64),
		strconv.FormatFloat(s.Tempo, 'f', 2, 64),
		shared.FormatDuration(s.DurationMS),
		strconv.Itoa(s.NumSections),
		strconv.Itoa(s.NumSegments),
		shared.Stars(s.AvgRating),
	}
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// WriteMarkdownExport writes the Markdown report to path, songs.md when empty.
func WriteMarkdownExport(songs []models.Song, meta ReportMeta, path string) (string, error) {
	if path == "" {
		path = "songs.md"
	}

	if err := os.WriteFile(path, ExportToMarkdown(songs, meta), 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}
	return path, nil
}

// WriteTextExport writes the plain-text report to path, songs.txt when empty.
func WriteTextExport(songs []models.Song, meta ReportMeta, path string) (string, error) {
	if path == "" {
		path = "songs.txt"
	}

	if err := os.WriteFile(path, ExportToText(songs, meta), 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}
