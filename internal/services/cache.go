package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

// SongCache is the read side of the local song snapshot.
type SongCache interface {
	List() ([]models.Song, error)
	SearchByTitle(title string) ([]models.Song, error)
}

// CachedService serves songs from the local snapshot for offline use.
//
// It is read-only: RateSong fails with [shared.ErrServiceUnavailable].
type CachedService struct {
	cache SongCache
}

// NewCachedService creates a [Service] backed by cache.
func NewCachedService(cache SongCache) *CachedService {
	return &CachedService{cache: cache}
}

// ListSongs pages through the snapshot the way GET /songs does.
func (c *CachedService) ListSongs(ctx context.Context, skip, limit int) ([]models.Song, error) {
	if skip < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: skip must be >= 0 and limit > 0", shared.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	songs, err := c.cache.List()
	if err != nil {
		return nil, err
	}
	if skip >= len(songs) {
		return []models.Song{}, nil
	}
	return songs[skip:min(len(songs), skip+limit)], nil
}

// SearchSongs matches titles case-insensitively in the snapshot.
func (c *CachedService) SearchSongs(ctx context.Context, title string) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	songs, err := c.cache.SearchByTitle(title)
	if err != nil {
		return nil, err
	}
	return nonNil(songs), nil
}

func (c *CachedService) RateSong(ctx context.Context, songID, rating int) error {
	return fmt.Errorf("%w: cannot rate songs offline", shared.ErrServiceUnavailable)
}
