package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

// SyncResult describes a completed cache sync.
type SyncResult struct {
	Songs    []models.Song
	Count    int
	Rated    int
	SyncedAt time.Time
	Elapsed  time.Duration
}

// Sync fetches every song from the backend and replaces the cached snapshot.
//
// The cache is left untouched when the fetch fails.
func (e *SongEngine) Sync(ctx context.Context, progress chan<- ProgressUpdate) (*SyncResult, error) {
	if e.songs == nil {
		return nil, fmt.Errorf("%w: song cache not initialized", shared.ErrServiceUnavailable)
	}

	const totalSteps = 3
	start := time.Now()

	e.sendProgress(progress, fetchingSongsUpdate(1, totalSteps, e.listLimit))
	songs, err := e.svc.ListSongs(ctx, 0, e.listLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrFetchSongs, err)
	}

	e.sendProgress(progress, cachingSongsUpdate(2, totalSteps, len(songs)))
	if err := e.songs.ReplaceAll(songs); err != nil {
		return nil, fmt.Errorf("failed to cache songs: %w", err)
	}

	result := &SyncResult{
		Songs:    songs,
		Count:    len(songs),
		SyncedAt: time.Now().UTC(),
		Elapsed:  time.Since(start),
	}
	for _, s := range songs {
		if s.Rated() {
			result.Rated++
		}
	}

	e.logger.Info("song cache synced", "count", result.Count, "rated", result.Rated)
	e.sendProgress(progress, syncedUpdate(totalSteps, totalSteps, result))
	return result, nil
}
