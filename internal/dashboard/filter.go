package dashboard

import (
	"context"
	"strings"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/services"
)

// SearchFilter is the optional title-search override of the store list.
type SearchFilter struct {
	query   string
	results []models.Song // nil when no filter is active
	loading bool
	err     error
	latest  Ticket
}

// NewSearchFilter returns an inactive filter.
func NewSearchFilter() *SearchFilter {
	return &SearchFilter{}
}

// Active reports whether a search result overrides the store list.
func (f *SearchFilter) Active() bool { return f.results != nil }

// Results returns the override list, nil when inactive. Callers must not modify it.
func (f *SearchFilter) Results() []models.Song { return f.results }

// Query returns the query that produced the active results.
func (f *SearchFilter) Query() string { return f.query }

// Loading reports whether a search is outstanding.
func (f *SearchFilter) Loading() bool { return f.loading }

// Err returns the error of the last applied search.
func (f *SearchFilter) Err() error { return f.err }

// Clear drops the override and retires any outstanding search.
func (f *SearchFilter) Clear() {
	f.latest++
	f.query = ""
	f.results = nil
	f.loading = false
	f.err = nil
}

// Begin starts a search for query. A blank query clears the filter instead and
// reports false, meaning no request should be sent.
func (f *SearchFilter) Begin(query string) (Ticket, bool) {
	if strings.TrimSpace(query) == "" {
		f.Clear()
		return 0, false
	}

	f.latest++
	f.loading = true
	return f.latest, true
}

// Apply takes the result of the search numbered t for query and reports whether it was applied.
//
// A failure records the error and leaves the previous filter untouched.
func (f *SearchFilter) Apply(t Ticket, query string, songs []models.Song, err error) bool {
	if t != f.latest {
		return false
	}

	f.loading = false
	if err != nil {
		f.err = err
		return true
	}

	if songs == nil {
		songs = []models.Song{}
	}
	f.query = query
	f.results = songs
	f.err = nil
	return true
}

// Search runs query against svc. It reports whether the filter changed.
func (f *SearchFilter) Search(ctx context.Context, svc services.Service, query string) (bool, error) {
	t, ok := f.Begin(query)
	if !ok {
		return true, nil
	}

	songs, err := svc.SearchSongs(ctx, query)
	applied := f.Apply(t, query, songs, err)
	return applied && err == nil, err
}
