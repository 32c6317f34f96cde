// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/songdash/internal/models"
)

// MockService is a scripted test double for [services.Service].
//
// Each call is recorded in Calls ("list", "search:<title>", "rate:<id>:<stars>")
// so tests can assert the order of the rate, list, search chain.
type MockService struct {
	mu sync.Mutex

	Songs     []models.Song
	Results   []models.Song
	ListErr   error
	SearchErr error
	RateErr   error
	Calls     []string
	ListHook  func()
}

func (m *MockService) ListSongs(ctx context.Context, skip, limit int) ([]models.Song, error) {
	m.record("list")
	if m.ListHook != nil {
		m.ListHook()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return clone(m.Songs), nil
}

func (m *MockService) SearchSongs(ctx context.Context, title string) ([]models.Song, error) {
	m.record("search:" + title)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return clone(m.Results), nil
}

// RateSong records the rating and, on success, writes it into Songs and Results
// the way the backend's latest_rating does.
func (m *MockService) RateSong(ctx context.Context, songID, rating int) error {
	m.record(fmt.Sprintf("rate:%d:%d", songID, rating))
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RateErr != nil {
		return m.RateErr
	}
	setRating(m.Songs, songID, rating)
	setRating(m.Results, songID, rating)
	return nil
}

// CallLog returns a copy of the recorded calls.
func (m *MockService) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

func (m *MockService) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func setRating(songs []models.Song, songID, rating int) {
	for i := range songs {
		if songs[i].ID == songID {
			songs[i].AvgRating = models.Rating(float64(rating))
		}
	}
}

func clone(songs []models.Song) []models.Song {
	if songs == nil {
		return []models.Song{}
	}
	return append([]models.Song(nil), songs...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
