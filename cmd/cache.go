package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/songdash/internal/formatter"
	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/repositories"
	"github.com/desertthunder/songdash/internal/shared"
	"github.com/desertthunder/songdash/internal/tasks"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// CacheSync replaces the cached snapshot with the backend's full list.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	db, closeDB, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	engine := r.newEngine(db)

	progress := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("  %s\n", update.Message)
		}
	}()

	result, err := engine.Sync(ctx, progress)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("✓ Cached %s songs (%d rated) in %s\n",
		humanize.Comma(int64(result.Count)), result.Rated, result.Elapsed.Round(time.Millisecond))
	return nil
}

// CacheList prints the cached snapshot and its age.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, closeDB, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	repo := repositories.NewSongRepository(db)
	songs, err := repo.List()
	if errors.Is(err, shared.ErrCacheEmpty) {
		return fmt.Errorf("%w: run 'songdash cache sync' first", err)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}

	meta := formatter.ReportMeta{Title: "Cached songs", Sort: models.DefaultSort()}
	if _, err := r.output.Write(formatter.ExportToText(songs, meta)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if syncedAt, ok, err := repo.SyncedAt(); err != nil {
		r.logger.Warn("failed to read sync time", "error", err)
	} else if ok {
		r.writePlainln("Synced %s", humanize.Time(syncedAt))
	}
	return nil
}

// CacheRatings prints the local rating log, newest last.
func (r *Runner) CacheRatings(ctx context.Context, cmd *cli.Command) error {
	db, closeDB, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer closeDB()

	criteria := map[string]any{"limit": int(cmd.Int("limit"))}
	if song := int(cmd.Int("song")); song >= 0 {
		criteria["song_id"] = song
	}

	ratings, err := repositories.NewRatingRepository(db).List(criteria)
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		return r.writePlain("No ratings recorded\n")
	}

	for _, rec := range ratings {
		stars := float64(rec.Stars())
		r.writePlain("#%-4d song %-6d %s  %s\n",
			rec.Sequence(), rec.SongID(), shared.Stars(&stars), humanize.Time(rec.CreatedAt()))
	}
	return nil
}
