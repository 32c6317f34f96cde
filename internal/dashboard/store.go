package dashboard

import (
	"context"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/services"
)

// Ticket numbers a request. Results carrying an older ticket are dropped.
type Ticket uint64

// SongStore is the authoritative song list with its loading and error status.
type SongStore struct {
	songs   []models.Song
	loading bool
	err     error
	latest  Ticket
}

// NewSongStore returns an empty, idle store.
func NewSongStore() *SongStore {
	return &SongStore{songs: []models.Song{}}
}

// Songs returns the current list. Callers must not modify it.
func (s *SongStore) Songs() []models.Song { return s.songs }

// Loading reports whether a fetch is outstanding.
func (s *SongStore) Loading() bool { return s.loading }

// Err returns the error of the last applied fetch, nil after a success.
func (s *SongStore) Err() error { return s.err }

// Begin marks a fetch as started and returns its ticket.
func (s *SongStore) Begin() Ticket {
	s.latest++
	s.loading = true
	s.err = nil
	return s.latest
}

// Apply takes the result of the fetch numbered t and reports whether it was applied.
//
// A success replaces the list wholesale; a failure keeps the previous list.
func (s *SongStore) Apply(t Ticket, songs []models.Song, err error) bool {
	if t != s.latest {
		return false
	}

	s.loading = false
	if err != nil {
		s.err = err
		return true
	}

	if songs == nil {
		songs = []models.Song{}
	}
	s.songs = songs
	s.err = nil
	return true
}

// FetchAll lists up to limit songs from svc and applies the result.
func (s *SongStore) FetchAll(ctx context.Context, svc services.Service, limit int) error {
	t := s.Begin()
	songs, err := svc.ListSongs(ctx, 0, limit)
	s.Apply(t, songs, err)
	return err
}
