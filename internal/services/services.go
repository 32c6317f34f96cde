package services

import (
	"context"

	"github.com/desertthunder/songdash/internal/models"
)

// Service is the songs dashboard backend as seen by the client pipeline.
type Service interface {
	// ListSongs returns up to limit songs starting at skip, ordered by id.
	ListSongs(ctx context.Context, skip, limit int) ([]models.Song, error)

	// SearchSongs returns the songs whose title contains title, case-insensitively.
	SearchSongs(ctx context.Context, title string) ([]models.Song, error)

	// RateSong records a 1..5 rating for the song with the given id.
	RateSong(ctx context.Context, songID, rating int) error
}
