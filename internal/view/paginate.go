package view

import "github.com/desertthunder/songdash/internal/models"

// Page is one page of a sorted list.
type Page struct {
	Items      []models.Song
	Page       int // 1-based
	TotalPages int
	Total      int // length of the full list
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// TotalPages returns ceil(n/size), zero for an empty list.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate slices [(page-1)*size, page*size) out of sorted, clamped to its bounds.
//
// The page number is not clamped: a page outside 1..TotalPages yields no items.
func Paginate(sorted []models.Song, page, size int) Page {
	p := Page{Page: page, TotalPages: TotalPages(len(sorted), size), Total: len(sorted), Items: []models.Song{}}
	if size <= 0 || page < 1 {
		return p
	}

	start := (page - 1) * size
	if start >= len(sorted) {
		return p
	}
	end := min(start+size, len(sorted))

	p.Items = sorted[start:end]
	return p
}

// ClampPage bounds page to 1..totalPages, returning 1 when there are no pages.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}
	return min(page, totalPages)
}
