package formatter

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

const (
	CSVFilename    = "songs.csv"
	CSVContentType = "text/csv;charset=utf-8"
)

// CSVHeaders are the export columns, in order.
var CSVHeaders = []string{
	"Index",
	"Song ID",
	"Title",
	"Danceability",
	"Energy",
	"Mode",
	"Acousticness",
	"Tempo",
	"Duration (ms)",
	"Sections",
	"Segments",
	"Rating",
}

// ToCSV renders songs in the given order as CSV.
//
// The title is always quoted with inner quotes doubled and no other field is
// quoted. Numbers use their shortest form, an absent rating is an empty field
// and rows are joined by "\n" without a trailing newline.
func ToCSV(songs []models.Song) string {
	rows := make([]string, 0, len(songs)+1)
	rows = append(rows, strings.Join(CSVHeaders, ","))
	for _, s := range songs {
		rows = append(rows, CSVRow(s))
	}
	return strings.Join(rows, "\n")
}

// CSVRow renders one song as a CSV line.
func CSVRow(s models.Song) string {
	rating := ""
	if s.AvgRating != nil {
		rating = shared.FormatFloat(*s.AvgRating)
	}

	return strings.Join([]string{
		strconv.Itoa(s.ID),
		s.SongID,
		QuoteTitle(s.Title),
		shared.FormatFloat(s.Danceability),
		shared.FormatFloat(s.Energy),
		strconv.Itoa(s.Mode),
		shared.FormatFloat(s.Acousticness),
		shared.FormatFloat(s.Tempo),
		strconv.Itoa(s.DurationMS),
		strconv.Itoa(s.NumSections),
		strconv.Itoa(s.NumSegments),
		rating,
	}, ",")
}

// QuoteTitle wraps title in double quotes, doubling any inside it.
func QuoteTitle(title string) string {
	return `"` + strings.ReplaceAll(title, `"`, `""`) + `"`
}

// WriteCSVExport writes the CSV of songs to path, songs.csv when empty, and returns the path.
func WriteCSVExport(songs []models.Song, path string) (string, error) {
	if path == "" {
		path = CSVFilename
	}

	if err := os.WriteFile(path, []byte(ToCSV(songs)), 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}
	return path, nil
}
