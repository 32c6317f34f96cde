package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/songdash/internal/formatter"
	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/services"
	"github.com/desertthunder/songdash/internal/shared"
	tu "github.com/desertthunder/songdash/internal/testing"
)

func newTestRouter(t *testing.T, backend *tu.FakeBackend) (*BasicRouter, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	svc := services.NewSongsService(backend.Start(t), nil)
	return NewExportRouter(svc, 1000, shared.NewLogger(&logs)), &logs
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	router, logs := newTestRouter(t, tu.NewFakeBackend(nil))

	rec := get(router, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "path=/health")
	assert.Contains(t, logs.String(), "status=200")
}

func TestSongsCSV(t *testing.T) {
	t.Run("serves an attachment", func(t *testing.T) {
		router, _ := newTestRouter(t, tu.NewFakeBackend(tu.SampleSongs(12)))

		rec := get(router, "/songs.csv")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv;charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="songs.csv"`, rec.Header().Get("Content-Disposition"))

		lines := strings.Split(rec.Body.String(), "\n")
		require.Len(t, lines, 13)
		assert.Equal(t, strings.Join(formatter.CSVHeaders, ","), lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "0,"))
	})

	t.Run("applies sort and direction", func(t *testing.T) {
		router, _ := newTestRouter(t, tu.NewFakeBackend(tu.SampleSongs(12)))

		rec := get(router, "/songs.csv?sort=tempo&dir=desc")

		require.Equal(t, http.StatusOK, rec.Code)
		lines := strings.Split(rec.Body.String(), "\n")
		assert.True(t, strings.HasPrefix(lines[1], "11,"), "highest tempo first, got %q", lines[1])
	})

	t.Run("title query exports the search results", func(t *testing.T) {
		backend := tu.NewFakeBackend(tu.SampleSongs(12))
		router, _ := newTestRouter(t, backend)

		rec := get(router, "/songs.csv?title=1")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, strings.Split(rec.Body.String(), "\n"), 4)
		assert.Equal(t, []string{"GET /songs/search?title=1"}, backend.Requests())
	})

	t.Run("bad sort is a client error", func(t *testing.T) {
		router, _ := newTestRouter(t, tu.NewFakeBackend(nil))

		for _, target := range []string{"/songs.csv?sort=loudness", "/songs.csv?dir=sideways"} {
			rec := get(router, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			assert.Contains(t, rec.Body.String(), "invalid argument", target)
		}
	})

	t.Run("backend failure is a bad gateway", func(t *testing.T) {
		backend := tu.NewFakeBackend(nil)
		backend.FailWith("/songs", http.StatusInternalServerError, "db down")
		router, logs := newTestRouter(t, backend)

		rec := get(router, "/songs.csv")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.JSONEq(t, `{"detail":"Failed to fetch songs: db down"}`, rec.Body.String())
		assert.Contains(t, logs.String(), "ERRO")
	})

	t.Run("wrong method", func(t *testing.T) {
		router, _ := newTestRouter(t, tu.NewFakeBackend(nil))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/songs.csv", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Header().Get("Allow"), http.MethodGet)
	})
}

func TestCharts(t *testing.T) {
	router, _ := newTestRouter(t, tu.NewFakeBackend(tu.SampleSongs(30)))

	rec := get(router, "/charts")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var charts formatter.Charts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &charts))
	assert.Len(t, charts.Scatter, 30)
	assert.Len(t, charts.Histogram, formatter.HistogramBins)
	assert.Len(t, charts.Bars, formatter.BarChartSongs)
}

func TestParseSort(t *testing.T) {
	d, err := ParseSort("", "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSort(), d)

	d, err = ParseSort("rating", "DESC")
	require.NoError(t, err)
	assert.Equal(t, models.SortDescriptor{Field: models.FieldAvgRating, Direction: models.Descending}, d)

	_, err = ParseSort("title", "up")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestMiddleware(t *testing.T) {
	t.Run("applied in registration order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Get("/x", func(w http.ResponseWriter, r *http.Request) { order = append(order, "handler") })

		get(router, "/x")
		assert.Equal(t, []string{"first", "second", "handler"}, order)
	})

	t.Run("recover answers 500", func(t *testing.T) {
		var logs bytes.Buffer
		router := NewBasicRouter()
		router.Use(Recover(shared.NewLogger(&logs)))
		router.Get("/boom", func(w http.ResponseWriter, r *http.Request) { panic("boom") })

		rec := get(router, "/boom")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, logs.String(), "handler panic")
	})
}

func TestServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	router := NewBasicRouter()
	router.Get("/health", Health)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, router, shared.NewLogger(&bytes.Buffer{})) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
