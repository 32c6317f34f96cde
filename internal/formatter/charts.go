package formatter

import (
	"fmt"
	"math"

	"github.com/desertthunder/songdash/internal/models"
)

const (
	HistogramBins = 10
	BarChartSongs = 20
	BarLabelRunes = 20
)

// ScatterPoint is one song on the danceability/tempo plane.
type ScatterPoint struct {
	X     float64 `json:"x"` // danceability
	Y     float64 `json:"y"` // tempo
	Title string  `json:"title"`
}

// HistogramBin counts songs whose duration in seconds falls in the labeled range.
type HistogramBin struct {
	Label string `json:"range"`
	Count int    `json:"count"`
}

// Bar pairs acousticness with tempo scaled by 1/100 so both share an axis.
type Bar struct {
	Title        string  `json:"title"`
	Acousticness float64 `json:"acousticness"`
	Tempo        float64 `json:"tempo"`
}

// Charts is every dataset of the charts view.
type Charts struct {
	Scatter   []ScatterPoint `json:"scatter"`
	Histogram []HistogramBin `json:"histogram"`
	Bars      []Bar          `json:"bars"`
}

// BuildCharts derives all datasets from songs.
func BuildCharts(songs []models.Song) Charts {
	return Charts{
		Scatter:   Scatter(songs),
		Histogram: DurationHistogram(songs, HistogramBins),
		Bars:      Bars(songs, BarChartSongs),
	}
}

// Scatter maps each song to {danceability, tempo}.
func Scatter(songs []models.Song) []ScatterPoint {
	points := make([]ScatterPoint, len(songs))
	for i, s := range songs {
		points[i] = ScatterPoint{X: s.Danceability, Y: s.Tempo, Title: s.Title}
	}
	return points
}

// DurationHistogram splits durations (seconds) into n equal-width bins between
// the shortest and longest song. The last bin includes the maximum.
//
// No songs means no bins. When every duration is equal all songs land in the first bin.
func DurationHistogram(songs []models.Song, n int) []HistogramBin {
	if len(songs) == 0 || n <= 0 {
		return []HistogramBin{}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range songs {
		d := seconds(s)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	width := (hi - lo) / float64(n)

	bins := make([]HistogramBin, n)
	for i := range bins {
		from := math.Floor(lo + float64(i)*width)
		to := math.Floor(lo + float64(i+1)*width)
		bins[i].Label = fmt.Sprintf("%d-%d", int(from), int(to))
	}

	for _, s := range songs {
		idx := 0
		if width > 0 {
			idx = min(int(math.Floor((seconds(s)-lo)/width)), n-1)
		}
		bins[idx].Count++
	}
	return bins
}

// Bars returns the first n songs with titles cut to 20 characters.
func Bars(songs []models.Song, n int) []Bar {
	songs = songs[:max(0, min(n, len(songs)))]
	bars := make([]Bar, len(songs))
	for i, s := range songs {
		bars[i] = Bar{
			Title:        truncateRunes(s.Title, BarLabelRunes),
			Acousticness: s.Acousticness,
			Tempo:        s.Tempo / 100,
		}
	}
	return bars
}

func seconds(s models.Song) float64 {
	return float64(s.DurationMS) / 1000
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
