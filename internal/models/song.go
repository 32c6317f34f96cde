package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Song represents one track with its audio features, as returned by GET /songs.
type Song struct {
	ID           int      `json:"id"`      // Backend-assigned unique id, also the rating key
	SongID       string   `json:"song_id"` // External catalog id
	Title        string   `json:"title"`
	Danceability float64  `json:"danceability"`
	Energy       float64  `json:"energy"`
	Mode         int      `json:"mode"`
	Acousticness float64  `json:"acousticness"`
	Tempo        float64  `json:"tempo"` // BPM
	DurationMS   int      `json:"duration_ms"`
	NumSections  int      `json:"num_sections"`
	NumSegments  int      `json:"num_segments"`
	AvgRating    *float64 `json:"avg_rating"` // nil means unrated
}

// songWire is the decoding shape of [Song]. Listing rows carry latest_rating while the
// response schema names it avg_rating.
type songWire struct {
	ID           int      `json:"id"`
	SongID       string   `json:"song_id"`
	Title        string   `json:"title"`
	Danceability float64  `json:"danceability"`
	Energy       float64  `json:"energy"`
	Mode         int      `json:"mode"`
	Acousticness float64  `json:"acousticness"`
	Tempo        float64  `json:"tempo"`
	DurationMS   int      `json:"duration_ms"`
	NumSections  int      `json:"num_sections"`
	NumSegments  int      `json:"num_segments"`
	AvgRating    *float64 `json:"avg_rating"`
	LatestRating *float64 `json:"latest_rating"`
}

// UnmarshalJSON decodes a song, taking avg_rating and falling back to latest_rating.
func (s *Song) UnmarshalJSON(data []byte) error {
	var w songWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = Song{
		ID:           w.ID,
		SongID:       w.SongID,
		Title:        w.Title,
		Danceability: w.Danceability,
		Energy:       w.Energy,
		Mode:         w.Mode,
		Acousticness: w.Acousticness,
		Tempo:        w.Tempo,
		DurationMS:   w.DurationMS,
		NumSections:  w.NumSections,
		NumSegments:  w.NumSegments,
		AvgRating:    w.AvgRating,
	}
	if s.AvgRating == nil {
		s.AvgRating = w.LatestRating
	}
	return nil
}

// Rated reports whether the song carries a rating.
func (s Song) Rated() bool {
	return s.AvgRating != nil
}

// Value returns the attribute named by f as a string or float64.
// Returns nil for an absent rating or an unknown field.
func (s Song) Value(f SortField) any {
	switch f {
	case FieldID:
		return float64(s.ID)
	case FieldSongID:
		return s.SongID
	case FieldTitle:
		return s.Title
	case FieldDanceability:
		return s.Danceability
	case FieldEnergy:
		return s.Energy
	case FieldMode:
		return float64(s.Mode)
	case FieldAcousticness:
		return s.Acousticness
	case FieldTempo:
		return s.Tempo
	case FieldDurationMS:
		return float64(s.DurationMS)
	case FieldNumSections:
		return float64(s.NumSections)
	case FieldNumSegments:
		return float64(s.NumSegments)
	case FieldAvgRating:
		if s.AvgRating == nil {
			return nil
		}
		return *s.AvgRating
	default:
		return nil
	}
}

// RatingRequest is the body of POST /rate.
//
// The wire name song_index carries the song's unique id, not a position.
type RatingRequest struct {
	SongID int `json:"song_index"`
	Rating int `json:"rating"`
}

// Rating returns a pointer to r for building songs in tests and fixtures.
func Rating(r float64) *float64 {
	return &r
}

// SortField names a [Song] attribute by its wire name.
type SortField string

const (
	FieldID           SortField = "id"
	FieldSongID       SortField = "song_id"
	FieldTitle        SortField = "title"
	FieldDanceability SortField = "danceability"
	FieldEnergy       SortField = "energy"
	FieldMode         SortField = "mode"
	FieldAcousticness SortField = "acousticness"
	FieldTempo        SortField = "tempo"
	FieldDurationMS   SortField = "duration_ms"
	FieldNumSections  SortField = "num_sections"
	FieldNumSegments  SortField = "num_segments"
	FieldAvgRating    SortField = "avg_rating"
)

// Fields lists every sort field in column order.
var Fields = []SortField{
	FieldID,
	FieldSongID,
	FieldTitle,
	FieldDanceability,
	FieldEnergy,
	FieldMode,
	FieldAcousticness,
	FieldTempo,
	FieldDurationMS,
	FieldNumSections,
	FieldNumSegments,
	FieldAvgRating,
}

// Label returns the column header shown for the field.
func (f SortField) Label() string {
	switch f {
	case FieldID:
		return "Index"
	case FieldSongID:
		return "Song ID"
	case FieldTitle:
		return "Title"
	case FieldDanceability:
		return "Danceability"
	case FieldEnergy:
		return "Energy"
	case FieldMode:
		return "Mode"
	case FieldAcousticness:
		return "Acousticness"
	case FieldTempo:
		return "Tempo"
	case FieldDurationMS:
		return "Duration"
	case FieldNumSections:
		return "Sections"
	case FieldNumSegments:
		return "Segments"
	case FieldAvgRating:
		return "Rating"
	default:
		return string(f)
	}
}

// ParseSortField resolves a wire name (or the "rating"/"latest_rating" aliases) to a [SortField].
func ParseSortField(s string) (SortField, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "index":
		return FieldID, nil
	case "rating", "latest_rating":
		return FieldAvgRating, nil
	case "duration":
		return FieldDurationMS, nil
	}

	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortDescriptor is the active column and direction.
type SortDescriptor struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders by id ascending.
func DefaultSort() SortDescriptor {
	return SortDescriptor{Field: FieldID, Direction: Ascending}
}

// Select returns the descriptor after the user picks field f: the same field toggles
// direction, another field starts ascending.
func (d SortDescriptor) Select(f SortField) SortDescriptor {
	if d.Field == f {
		return SortDescriptor{Field: f, Direction: d.Direction.Flip()}
	}
	return SortDescriptor{Field: f, Direction: Ascending}
}

// Descending reports whether the descriptor sorts high to low.
func (d SortDescriptor) Descending() bool {
	return d.Direction == Descending
}
