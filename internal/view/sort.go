// Package view derives the sorted, paginated song table from an active list.
//
// Everything here is pure: inputs are never mutated and the same inputs give the same output.
package view

import (
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/desertthunder/songdash/internal/models"
)

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

// Compare orders a and b on the descriptor's field.
//
// An absent value sorts after any present value in both directions and two
// absent values are equal. Strings use English collation, numbers compare by
// sign of the difference and values of different kinds are equal.
func Compare(a, b models.Song, d models.SortDescriptor) int {
	va, vb := a.Value(d.Field), b.Value(d.Field)

	switch {
	case va == nil && vb == nil:
		return 0
	case va == nil:
		return 1
	case vb == nil:
		return -1
	}

	c := 0
	switch x := va.(type) {
	case string:
		y, ok := vb.(string)
		if !ok {
			return 0
		}
		c = compareStrings(x, y)
	case float64:
		y, ok := vb.(float64)
		if !ok {
			return 0
		}
		c = sign(x - y)
	default:
		return 0
	}

	if d.Descending() {
		return -c
	}
	return c
}

// Sort returns a stably sorted copy of songs.
func Sort(songs []models.Song, d models.SortDescriptor) []models.Song {
	sorted := slices.Clone(songs)
	if sorted == nil {
		sorted = []models.Song{}
	}
	slices.SortStableFunc(sorted, func(a, b models.Song) int {
		return Compare(a, b, d)
	})
	return sorted
}

// collate.Collator keeps scratch buffers and is not safe for concurrent use.
func compareStrings(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	default:
		return 0
	}
}
