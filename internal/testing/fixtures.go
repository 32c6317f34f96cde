package testing

import (
	"fmt"

	"github.com/desertthunder/songdash/internal/models"
)

// SampleSongs builds n songs with ids 0..n-1. Tempo rises with the id, every
// third song is rated and titles alternate case so collation matters.
func SampleSongs(n int) []models.Song {
	songs := make([]models.Song, n)
	for i := range songs {
		title := fmt.Sprintf("Song %02d", i)
		if i%2 == 1 {
			title = fmt.Sprintf("song %02d", i)
		}
		songs[i] = models.Song{
			ID:           i,
			SongID:       fmt.Sprintf("sp%04d", i),
			Title:        title,
			Danceability: float64(i%10) / 10,
			Energy:       0.5,
			Mode:         i % 2,
			Acousticness: float64(n-i) / float64(n),
			Tempo:        float64(60 + i),
			DurationMS:   120_000 + i*1_000,
			NumSections:  8,
			NumSegments:  400 + i,
		}
		if i%3 == 0 {
			songs[i].AvgRating = models.Rating(float64(i%5 + 1))
		}
	}
	return songs
}
