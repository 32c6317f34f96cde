// Songs dashboard backend [Service] implementation
//
// Talks to the FastAPI songs service (GET /songs, GET /songs/search, POST /rate).
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

const defaultBaseURL string = "http://localhost:8000"

// SongsService implements [Service] over HTTP.
type SongsService struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewSongsService creates a client for the backend at baseURL.
//
// An empty baseURL means http://localhost:8000 and a nil client means [http.DefaultClient].
func NewSongsService(baseURL string, client *http.Client) *SongsService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SongsService{
		baseURL:    baseURL,
		httpClient: client,
		logger:     log.New(io.Discard),
	}
}

// SetLogger attaches a logger that receives one debug line per request.
func (s *SongsService) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// BaseURL returns the backend address.
func (s *SongsService) BaseURL() string {
	return s.baseURL
}

func (s *SongsService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	s.logger.Debug("backend request", "method", method, "endpoint", endpoint, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return newAPIError(resp.StatusCode, data)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
		}
	}

	return nil
}

// ListSongs calls GET /songs?skip=<skip>&limit=<limit>.
func (s *SongsService) ListSongs(ctx context.Context, skip, limit int) ([]models.Song, error) {
	if skip < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: skip must be >= 0 and limit > 0", shared.ErrInvalidArgument)
	}

	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var songs []models.Song
	if err := s.doRequest(ctx, http.MethodGet, "/songs?"+q.Encode(), nil, &songs); err != nil {
		return nil, err
	}
	return nonNil(songs), nil
}

// SearchSongs calls GET /songs/search?title=<title>.
func (s *SongsService) SearchSongs(ctx context.Context, title string) ([]models.Song, error) {
	q := url.Values{}
	q.Set("title", title)

	var songs []models.Song
	if err := s.doRequest(ctx, http.MethodGet, "/songs/search?"+q.Encode(), nil, &songs); err != nil {
		return nil, err
	}
	return nonNil(songs), nil
}

// RateSong calls POST /rate with {"song_index": songID, "rating": rating}.
//
// The rating is not validated here; the backend answers 400 for values outside 1..5.
func (s *SongsService) RateSong(ctx context.Context, songID, rating int) error {
	return s.doRequest(ctx, http.MethodPost, "/rate", models.RatingRequest{SongID: songID, Rating: rating}, nil)
}

func nonNil(songs []models.Song) []models.Song {
	if songs == nil {
		return []models.Song{}
	}
	return songs
}
