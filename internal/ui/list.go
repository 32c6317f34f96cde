package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

// column is one table column, keyed by its sort field.
type column struct {
	field models.SortField
	width int
}

var columns = []column{
	{models.FieldID, 6},
	{models.FieldSongID, 12},
	{models.FieldTitle, 24},
	{models.FieldDanceability, 8},
	{models.FieldEnergy, 8},
	{models.FieldMode, 5},
	{models.FieldAcousticness, 8},
	{models.FieldTempo, 8},
	{models.FieldDurationMS, 8},
	{models.FieldNumSections, 5},
	{models.FieldNumSegments, 6},
	{models.FieldAvgRating, 7},
}

// cell formats a song attribute for display.
func cell(s models.Song, f models.SortField) string {
	switch f {
	case models.FieldID:
		return fmt.Sprintf("%d", s.ID)
	case models.FieldSongID:
		return s.SongID
	case models.FieldTitle:
		return s.Title
	case models.FieldDanceability:
		return fmt.Sprintf("%.3f", s.Danceability)
	case models.FieldEnergy:
		return fmt.Sprintf("%.3f", s.Energy)
	case models.FieldMode:
		return fmt.Sprintf("%d", s.Mode)
	case models.FieldAcousticness:
		return fmt.Sprintf("%.3f", s.Acousticness)
	case models.FieldTempo:
		return fmt.Sprintf("%.1f", s.Tempo)
	case models.FieldDurationMS:
		return shared.FormatDuration(s.DurationMS)
	case models.FieldNumSections:
		return fmt.Sprintf("%d", s.NumSections)
	case models.FieldNumSegments:
		return fmt.Sprintf("%d", s.NumSegments)
	case models.FieldAvgRating:
		return shared.Stars(s.AvgRating)
	default:
		return ""
	}
}

// pad truncates or fills s to exactly w display cells.
func pad(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// headerRow renders column labels with the sort key and an arrow on the sorted column.
func headerRow(sort models.SortDescriptor) string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		label := c.field.Label()
		if i < len(sortKeys) {
			label = sortKeys[i] + " " + label
		}
		if c.field == sort.Field {
			if sort.Descending() {
				label += " ▼"
			} else {
				label += " ▲"
			}
		}
		cells[i] = pad(label, c.width)
	}
	return strings.Join(cells, " ")
}

// songRow renders a song as padded cells.
func songRow(s models.Song) string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = pad(cell(s, c.field), c.width)
	}
	return strings.Join(cells, " ")
}
