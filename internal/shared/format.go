package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDuration renders milliseconds as m:ss.
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatFloat renders f in the shortest form that round-trips.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatRating renders a rating with one decimal, or "-" when absent.
func FormatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

// Stars renders five stars, filled for every position k with k <= rating.
func Stars(rating *float64) string {
	var b strings.Builder
	for k := 1; k <= 5; k++ {
		if rating != nil && float64(k) <= *rating {
			b.WriteString("★")
		} else {
			b.WriteString("☆")
		}
	}
	return b.String()
}
