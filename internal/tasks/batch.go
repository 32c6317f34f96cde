package tasks

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
	"golang.org/x/time/rate"
)

// RatingEntry is one line of a batch rating file.
type RatingEntry struct {
	SongID int `json:"song_id"`
	Stars  int `json:"stars"`
}

// RatingResult is the outcome of submitting a single [RatingEntry].
type RatingResult struct {
	Entry  RatingEntry
	Record *models.RatingRecord // Local cache record, nil when not recorded
	Error  error
}

// BatchOpts configures [SongEngine.BatchRate].
type BatchOpts struct {
	RateLimit float64 // Submissions per second; zero or less disables throttling
}

// BatchResult collects per-entry results and the refreshed list.
type BatchResult struct {
	Results    []RatingResult
	Succeeded  int
	Failed     int
	Songs      []models.Song // List fetched after the batch, nil when nothing succeeded
	RefreshErr error
}

// BatchRate submits entries one at a time, throttled to opts.RateLimit per second.
//
// A failed entry is recorded and the batch continues. The song list is re-fetched once
// after the last entry when at least one rating succeeded, and the cache is replaced
// when one is configured. Cancelling ctx stops the batch and returns the partial result.
func (e *SongEngine) BatchRate(ctx context.Context, progress chan<- ProgressUpdate, entries []RatingEntry, opts BatchOpts) (*BatchResult, error) {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	limiter := rate.NewLimiter(limit, 1)

	result := &BatchResult{Results: make([]RatingResult, 0, len(entries))}
	total := len(entries)

	for i, entry := range entries {
		res := RatingResult{Entry: entry}

		if err := models.ValidateStars(entry.Stars); err != nil {
			res.Error = fmt.Errorf("%w: %v", shared.ErrInvalidRating, err)
		} else {
			if err := limiter.Wait(ctx); err != nil {
				return result, err
			}
			res.Error = e.svc.RateSong(ctx, entry.SongID, entry.Stars)
		}

		if res.Error == nil {
			result.Succeeded++
			res.Record = e.record(entry)
		} else {
			result.Failed++
			e.logger.Warn("rating failed", "song", entry.SongID, "stars", entry.Stars, "error", res.Error)
		}

		result.Results = append(result.Results, res)
		e.sendProgress(progress, ratedUpdate(i+1, total, res))
	}

	if result.Succeeded == 0 {
		return result, nil
	}

	e.sendProgress(progress, refreshingUpdate(total, total))
	songs, err := e.svc.ListSongs(ctx, 0, e.listLimit)
	if err != nil {
		result.RefreshErr = fmt.Errorf("%w: %w", shared.ErrFetchSongs, err)
		return result, nil
	}
	result.Songs = songs

	if e.songs != nil {
		if err := e.songs.ReplaceAll(songs); err != nil {
			result.RefreshErr = fmt.Errorf("failed to cache songs: %w", err)
		}
	}
	return result, nil
}

// record stores a successful rating in the local log. Failures are logged only.
func (e *SongEngine) record(entry RatingEntry) *models.RatingRecord {
	if e.ratings == nil {
		return nil
	}

	rec := models.NewRatingRecord(0, entry.SongID, entry.Stars)
	if err := e.ratings.Create(rec); err != nil {
		e.logger.Warn("failed to record rating", "song", entry.SongID, "error", err)
		return nil
	}
	return rec
}

// ReadRatingsCSV parses "song_id,stars" lines. A first record whose song id is not a
// number is treated as a header and skipped. Blank lines and # comments are ignored;
// errors name the line in the file.
func ReadRatingsCSV(r io.Reader) ([]RatingEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var entries []RatingEntry
	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		line, _ := reader.FieldPos(0)

		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			if first {
				continue
			}
			return nil, fmt.Errorf("%w: line %d: song id %q is not a number", shared.ErrInvalidInput, line, record[0])
		}
		stars, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: stars %q is not a number", shared.ErrInvalidInput, line, record[1])
		}

		entries = append(entries, RatingEntry{SongID: id, Stars: stars})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no ratings found", shared.ErrInvalidInput)
	}
	return entries, nil
}
