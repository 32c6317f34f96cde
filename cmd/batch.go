package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/songdash/internal/shared"
	"github.com/desertthunder/songdash/internal/tasks"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

// BatchRate submits every rating in a song_id,stars file, throttled, with a progress bar.
func (r *Runner) BatchRate(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	entries, err := tasks.ReadRatingsCSV(f)
	f.Close()
	if err != nil {
		return err
	}

	limit := cmd.Float64("rate-limit")
	if limit <= 0 {
		limit = r.config.Batch.RateLimit
	}

	db, closeDB, err := r.openDatabase()
	if err != nil {
		r.logger.Warn("ratings will not be recorded locally", "error", err)
		db, closeDB = nil, func() {}
	}
	defer closeDB()
	engine := r.newEngine(db)

	var w io.Writer = r.output
	if cmd.Bool("quiet") {
		w = io.Discard
	}
	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Rating songs"),
		progressbar.OptionShowCount(),
	)

	progress := make(chan tasks.ProgressUpdate, len(entries)+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase)
			if update.Phase == tasks.RateSongs {
				bar.Add(1)
			}
		}
	}()

	r.logger.Info("batch rating", "file", path, "entries", len(entries), "rate_limit", limit)
	result, err := engine.BatchRate(ctx, progress, entries, tasks.BatchOpts{RateLimit: limit})
	close(progress)
	<-done
	bar.Finish()
	r.writePlain("\n")

	if err != nil {
		return err
	}

	for _, res := range result.Results {
		if res.Error != nil {
			r.writePlain("✗ song %d → %d★: %v\n", res.Entry.SongID, res.Entry.Stars, res.Error)
		}
	}
	if result.RefreshErr != nil {
		r.logger.Warn("list refresh after batch failed", "error", result.RefreshErr)
	}

	r.writePlain("✓ %d rated, %d failed\n", result.Succeeded, result.Failed)
	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d ratings failed", shared.ErrUpdateRating, result.Failed, len(entries))
	}
	return nil
}
