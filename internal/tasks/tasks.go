package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songdash/internal/repositories"
	"github.com/desertthunder/songdash/internal/services"
	"github.com/desertthunder/songdash/internal/shared"
)

// DefaultListLimit is the page size used to fetch "all" songs in one request.
const DefaultListLimit = 1000

// APIClient defines the raw request interface used by [SongEngine.Probe].
type APIClient interface {
	Get(ctx context.Context, path string) (*services.APIResponse, error)
}

// EngineOpts holds the optional dependencies of a [SongEngine].
type EngineOpts struct {
	API       APIClient                      // Needed by Probe
	Songs     *repositories.SongRepository   // Needed by Sync; refreshed by BatchRate when set
	Ratings   *repositories.RatingRepository // Records successful ratings when set
	ListLimit int                            // Songs fetched per sync; defaults to [DefaultListLimit]
	Logger    *log.Logger
}

// SongEngine runs multi-step operations against the songs backend and the local cache.
type SongEngine struct {
	svc       services.Service
	api       APIClient
	songs     *repositories.SongRepository
	ratings   *repositories.RatingRepository
	listLimit int
	logger    *log.Logger
}

// NewSongEngine creates a new SongEngine over svc.
func NewSongEngine(svc services.Service, opts EngineOpts) *SongEngine {
	limit := opts.ListLimit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SongEngine{
		svc:       svc,
		api:       opts.API,
		songs:     opts.Songs,
		ratings:   opts.Ratings,
		listLimit: limit,
		logger:    logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *SongEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}

// EndpointResult is the outcome of probing a single backend endpoint.
type EndpointResult struct {
	Endpoint   string `json:"endpoint"`
	StatusCode int    `json:"status"`
	Data       any    `json:"data,omitempty"`
	Error      error  `json:"-"`
}

// ProbeResult contains every probed endpoint in request order.
type ProbeResult struct {
	Endpoints []EndpointResult
	Failed    int
}

// Healthy reports whether every endpoint answered with a 2xx status.
func (r *ProbeResult) Healthy() bool {
	return r.Failed == 0
}

type endpointOperation struct {
	name string
	path string
}

// Probe checks that the backend answers its read endpoints.
func (e *SongEngine) Probe(ctx context.Context, progress chan<- ProgressUpdate) (*ProbeResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
	}

	endpoints := []endpointOperation{
		{name: "songs", path: "/songs?skip=0&limit=1"},
		{name: "search", path: "/songs/search?title="},
	}

	result := &ProbeResult{Endpoints: make([]EndpointResult, 0, len(endpoints))}
	for i, op := range endpoints {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		res := EndpointResult{Endpoint: op.path}
		resp, err := e.api.Get(ctx, op.path)
		switch {
		case err != nil:
			res.Error = err
		case !resp.OK():
			res.StatusCode = resp.StatusCode
			res.Error = resp.Err()
		default:
			res.StatusCode = resp.StatusCode
			res.Data = resp.JSONData
		}

		if res.Error != nil {
			result.Failed++
			e.logger.Warn("endpoint probe failed", "endpoint", op.name, "error", res.Error)
		}
		result.Endpoints = append(result.Endpoints, res)
		e.sendProgress(progress, probeUpdate(i+1, len(endpoints), res))
	}
	return result, nil
}
