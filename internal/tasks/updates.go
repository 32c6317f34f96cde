package tasks

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchSongs Phase = iota
	CacheSongs
	RateSongs
	RefreshSongs
	ProbeEndpoints
)

func (p Phase) String() string {
	switch p {
	case FetchSongs:
		return "fetch_songs"
	case CacheSongs:
		return "cache_songs"
	case RateSongs:
		return "rate_songs"
	case RefreshSongs:
		return "refresh_songs"
	case ProbeEndpoints:
		return "probe_endpoints"
	default:
		return ""
	}
}

func fetchingSongsUpdate(step, total, limit int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching up to %s songs...", humanize.Comma(int64(limit))),
	}
}

func cachingSongsUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Caching %s songs...", humanize.Comma(int64(count))),
	}
}

func syncedUpdate(step, total int, res *SyncResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Synced %s songs (%d rated) in %s", humanize.Comma(int64(res.Count)), res.Rated, res.Elapsed.Round(time.Millisecond)),
		Data:    res,
	}
}

func ratedUpdate(step, total int, r RatingResult) ProgressUpdate {
	mark := "✓"
	if r.Error != nil {
		mark = "✗"
	}
	msg := fmt.Sprintf("[%d/%d] %s song %d → %d★", step, total, mark, r.Entry.SongID, r.Entry.Stars)
	if r.Error != nil {
		msg += fmt.Sprintf(": %v", r.Error)
	}
	return ProgressUpdate{
		Phase:   RateSongs,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    r,
	}
}

func refreshingUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshSongs,
		Step:    step,
		Total:   total,
		Message: "Refreshing song list...",
	}
}

func probeUpdate(step, total int, res EndpointResult) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] %s → %d", step, total, res.Endpoint, res.StatusCode)
	if res.Error != nil {
		msg = fmt.Sprintf("[%d/%d] %s ✗ %v", step, total, res.Endpoint, res.Error)
	}
	return ProgressUpdate{
		Phase:   ProbeEndpoints,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    res,
	}
}
