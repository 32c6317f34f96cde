package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/songdash/internal/formatter"
	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/repositories"
	"github.com/desertthunder/songdash/internal/services"
	"github.com/desertthunder/songdash/internal/shared"
	tu "github.com/desertthunder/songdash/internal/testing"
	"github.com/urfave/cli/v3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

type testEnv struct {
	runner  *Runner
	output  *bytes.Buffer
	backend *tu.FakeBackend
	db      *sql.DB
}

// newTestEnv wires a runner to a fake backend holding n sample songs and an in-memory cache.
func newTestEnv(t *testing.T, n int) *testEnv {
	t.Helper()

	backend := tu.NewFakeBackend(tu.SampleSongs(n))
	config := shared.DefaultConfig()
	config.API.BaseURL = backend.Start(t)
	config.Batch.RateLimit = 1000

	db := setupTestDB(t)
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		DB:     db,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})

	return &testEnv{runner: runner, output: output, backend: backend, db: db}
}

func (e *testEnv) run(args ...string) error {
	app := &cli.Command{
		Name:      "songdash",
		Commands:  e.runner.register(),
		Writer:    &bytes.Buffer{},
		ErrWriter: &bytes.Buffer{},
	}
	return app.Run(context.Background(), append([]string{"songdash"}, args...))
}

func (e *testEnv) requests(prefix string) []string {
	var matched []string
	for _, r := range e.backend.Requests() {
		if strings.HasPrefix(r, prefix) {
			matched = append(matched, r)
		}
	}
	return matched
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			songs := &tu.MockService{}
			api := &services.APIService{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Songs:      songs,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.songs != songs {
				t.Error("expected songs service to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses configured timeout", func(t *testing.T) {
			config := shared.DefaultConfig()
			runner := NewRunner(RunnerOpts{Config: config})

			if runner.httpClient == nil {
				t.Fatal("expected httpClient to be created")
			}
			if runner.httpClient.Timeout != config.API.Timeout() {
				t.Errorf("expected timeout %v, got %v", config.API.Timeout(), runner.httpClient.Timeout)
			}
		})

		t.Run("with nil songs service talks to the configured backend", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.API.BaseURL = "http://songs.test"
			runner := NewRunner(RunnerOpts{Config: config})

			svc, ok := runner.songs.(*services.SongsService)
			if !ok {
				t.Fatalf("expected *services.SongsService, got %T", runner.songs)
			}
			if svc.BaseURL() != "http://songs.test" {
				t.Errorf("expected base URL from config, got %s", svc.BaseURL())
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := []string{"setup", "songs", "charts", "cache", "batch", "api", "serve", "tui"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			if cmd.Name != want[i] {
				t.Errorf("command %d: expected %s, got %s", i, want[i], cmd.Name)
			}
		}
	})
}

func TestSongsCommands(t *testing.T) {
	t.Run("list shows the first page", func(t *testing.T) {
		env := newTestEnv(t, 25)

		if err := env.run("songs", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := env.output.String()
		if !strings.Contains(out, "Page 1 of 3 · 25 songs") {
			t.Errorf("expected page footer, got:\n%s", out)
		}
		if !strings.Contains(out, "Song 00") || strings.Contains(out, "song 11") {
			t.Errorf("expected only the first ten songs, got:\n%s", out)
		}
		if got := env.requests("GET /songs?"); len(got) != 1 || got[0] != "GET /songs?limit=1000&skip=0" {
			t.Errorf("expected one full listing request, got %v", got)
		}
	})

	t.Run("list sorts and pages", func(t *testing.T) {
		env := newTestEnv(t, 25)

		if err := env.run("songs", "list", "--sort", "tempo", "--desc", "--page", "2", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var songs []models.Song
		if err := json.Unmarshal(env.output.Bytes(), &songs); err != nil {
			t.Fatalf("expected JSON output, got %v", err)
		}
		if len(songs) != 10 {
			t.Fatalf("expected 10 songs, got %d", len(songs))
		}
		if songs[0].ID != 14 || songs[9].ID != 5 {
			t.Errorf("expected ids 14..5, got %d..%d", songs[0].ID, songs[9].ID)
		}
	})

	t.Run("list clamps the page", func(t *testing.T) {
		env := newTestEnv(t, 25)

		if err := env.run("songs", "list", "--page", "9"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), "Page 3 of 3") {
			t.Errorf("expected last page, got:\n%s", env.output.String())
		}
	})

	t.Run("list --all shows every song", func(t *testing.T) {
		env := newTestEnv(t, 25)

		if err := env.run("songs", "list", "--all"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := env.output.String()
		if !strings.Contains(out, "song 23") || !strings.Contains(out, "25 songs") {
			t.Errorf("expected all songs, got:\n%s", out)
		}
	})

	t.Run("list rejects an unknown sort column", func(t *testing.T) {
		env := newTestEnv(t, 5)

		err := env.run("songs", "list", "--sort", "loudness")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if got := env.backend.Requests(); len(got) != 0 {
			t.Errorf("expected no backend requests, got %v", got)
		}
	})

	t.Run("list reports backend failures", func(t *testing.T) {
		env := newTestEnv(t, 5)
		env.backend.FailWith("/songs", http.StatusInternalServerError, "db down")

		err := env.run("songs", "list")
		if !errors.Is(err, shared.ErrFetchSongs) {
			t.Errorf("expected ErrFetchSongs, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "db down") {
			t.Errorf("expected backend detail in error, got %v", err)
		}
	})

	t.Run("list --offline reads the cache", func(t *testing.T) {
		env := newTestEnv(t, 12)
		if err := env.run("cache", "sync"); err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		env.backend.FailWith("/songs", http.StatusInternalServerError, "db down")
		env.output.Reset()

		if err := env.run("songs", "list", "--offline", "--all"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), "12 songs") {
			t.Errorf("expected cached songs, got:\n%s", env.output.String())
		}
	})

	t.Run("search filters by title", func(t *testing.T) {
		env := newTestEnv(t, 25)

		if err := env.run("songs", "search", "song 1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := env.output.String()
		if !strings.Contains(out, "Page 1 of 1 · 10 songs") {
			t.Errorf("expected ten matches, got:\n%s", out)
		}
		if !strings.Contains(out, "Search: song 1") {
			t.Errorf("expected query in header, got:\n%s", out)
		}
		if got := env.requests("GET /songs/search"); len(got) != 1 {
			t.Errorf("expected one search request, got %v", env.backend.Requests())
		}
	})

	t.Run("search requires a title", func(t *testing.T) {
		env := newTestEnv(t, 5)

		err := env.run("songs", "search")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("rate submits, refreshes and records", func(t *testing.T) {
		env := newTestEnv(t, 6)

		if err := env.run("songs", "rate", "4", "5"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"POST /rate", "GET /songs?limit=1000&skip=0"}
		got := env.backend.Requests()
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("expected requests %v, got %v", want, got)
		}

		if rating := env.backend.Songs()[4].AvgRating; rating == nil || *rating != 5 {
			t.Errorf("expected backend rating 5, got %v", rating)
		}
		if !strings.Contains(env.output.String(), "Rated song 4 ★★★★★") {
			t.Errorf("expected confirmation, got %q", env.output.String())
		}

		records, err := repositories.NewRatingRepository(env.db).ListBySong(4)
		if err != nil {
			t.Fatalf("failed to list ratings: %v", err)
		}
		if len(records) != 1 || records[0].Stars() != 5 {
			t.Errorf("expected one 5 star record, got %v", records)
		}
	})

	t.Run("rate still records when the refresh fails", func(t *testing.T) {
		env := newTestEnv(t, 6)
		env.backend.FailWith("/songs", http.StatusInternalServerError, "boom")

		if err := env.run("songs", "rate", "2", "4"); err != nil {
			t.Fatalf("expected the accepted rating to succeed, got %v", err)
		}

		if got := env.requests("POST"); len(got) != 1 {
			t.Errorf("expected one rating request, got %v", got)
		}
		if rating := env.backend.Songs()[2].AvgRating; rating == nil || *rating != 4 {
			t.Errorf("expected backend rating 4, got %v", rating)
		}

		records, err := repositories.NewRatingRepository(env.db).ListBySong(2)
		if err != nil {
			t.Fatalf("failed to list ratings: %v", err)
		}
		if len(records) != 1 || records[0].Stars() != 4 {
			t.Errorf("expected one 4 star record, got %v", records)
		}

		out := env.output.String()
		if !strings.Contains(out, "Rated song 2") {
			t.Errorf("expected confirmation, got %q", out)
		}
		if !strings.Contains(out, "list not refreshed") || !strings.Contains(out, "boom") {
			t.Errorf("expected a refresh warning, got %q", out)
		}
	})

	t.Run("rate rejects stars outside 1..5 locally", func(t *testing.T) {
		env := newTestEnv(t, 6)

		err := env.run("songs", "rate", "4", "6")
		if !errors.Is(err, shared.ErrInvalidRating) {
			t.Errorf("expected ErrInvalidRating, got %v", err)
		}
		if got := env.backend.Requests(); len(got) != 0 {
			t.Errorf("expected no backend requests, got %v", got)
		}
	})

	t.Run("rate rejects a non-numeric id", func(t *testing.T) {
		env := newTestEnv(t, 6)

		err := env.run("songs", "rate", "abc", "3")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("rate reports a missing song", func(t *testing.T) {
		env := newTestEnv(t, 6)

		err := env.run("songs", "rate", "42", "3")
		if !errors.Is(err, shared.ErrUpdateRating) {
			t.Errorf("expected ErrUpdateRating, got %v", err)
		}
		if got := env.requests("GET"); len(got) != 0 {
			t.Errorf("expected no refresh after a failed rating, got %v", got)
		}
	})

	t.Run("export writes every page as CSV", func(t *testing.T) {
		env := newTestEnv(t, 25)
		path := filepath.Join(t.TempDir(), "out.csv")

		if err := env.run("songs", "export", "--output", path, "--sort", "title"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		lines := strings.Split(tu.MustReadFile(t, path), "\n")
		if len(lines) != 26 {
			t.Fatalf("expected header and 25 rows, got %d lines", len(lines))
		}
		if lines[0] != strings.Join(formatter.CSVHeaders, ",") {
			t.Errorf("expected CSV header, got %q", lines[0])
		}
	})

	t.Run("export a search as Markdown", func(t *testing.T) {
		env := newTestEnv(t, 25)
		path := filepath.Join(t.TempDir(), "out.md")

		if err := env.run("songs", "export", "--format", "markdown", "--title", "song 2", "--output", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "**Search**: song 2") || !strings.Contains(content, "**Songs**: 5") {
			t.Errorf("unexpected Markdown:\n%s", content)
		}
	})

	t.Run("export rejects unknown formats", func(t *testing.T) {
		env := newTestEnv(t, 3)

		err := env.run("songs", "export", "--format", "xlsx", "--output", filepath.Join(t.TempDir(), "x"))
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestChartsCommand(t *testing.T) {
	t.Run("JSON datasets", func(t *testing.T) {
		env := newTestEnv(t, 25)

		if err := env.run("charts", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var charts formatter.Charts
		if err := json.Unmarshal(env.output.Bytes(), &charts); err != nil {
			t.Fatalf("expected JSON output, got %v", err)
		}
		if len(charts.Scatter) != 25 {
			t.Errorf("expected 25 scatter points, got %d", len(charts.Scatter))
		}
		if len(charts.Histogram) != formatter.HistogramBins {
			t.Errorf("expected %d bins, got %d", formatter.HistogramBins, len(charts.Histogram))
		}
		if len(charts.Bars) != formatter.BarChartSongs {
			t.Errorf("expected %d bars, got %d", formatter.BarChartSongs, len(charts.Bars))
		}
	})

	t.Run("plain output has a section per chart", func(t *testing.T) {
		env := newTestEnv(t, 5)

		if err := env.run("charts"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := env.output.String()
		for _, header := range []string{"Danceability vs Tempo", "Duration (seconds)", "Acousticness and Tempo/100"} {
			if !strings.Contains(out, header) {
				t.Errorf("expected %q section, got:\n%s", header, out)
			}
		}
	})
}

func TestCacheCommands(t *testing.T) {
	t.Run("sync then list", func(t *testing.T) {
		env := newTestEnv(t, 9)

		if err := env.run("cache", "sync"); err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		if !strings.Contains(env.output.String(), "Cached 9 songs (3 rated)") {
			t.Errorf("expected sync summary, got:\n%s", env.output.String())
		}

		env.output.Reset()
		if err := env.run("cache", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		out := env.output.String()
		if !strings.Contains(out, "Cached songs") || !strings.Contains(out, "Synced") {
			t.Errorf("expected cached listing, got:\n%s", out)
		}
	})

	t.Run("list on an empty cache", func(t *testing.T) {
		env := newTestEnv(t, 3)

		err := env.run("cache", "list")
		if !errors.Is(err, shared.ErrCacheEmpty) {
			t.Errorf("expected ErrCacheEmpty, got %v", err)
		}
	})

	t.Run("sync failure keeps the cache", func(t *testing.T) {
		env := newTestEnv(t, 4)
		if err := env.run("cache", "sync"); err != nil {
			t.Fatalf("sync failed: %v", err)
		}
		env.backend.FailWith("/songs", http.StatusServiceUnavailable, "maintenance")

		err := env.run("cache", "sync")
		if !errors.Is(err, shared.ErrFetchSongs) {
			t.Errorf("expected ErrFetchSongs, got %v", err)
		}

		count, err := repositories.NewSongRepository(env.db).Count()
		if err != nil || count != 4 {
			t.Errorf("expected 4 cached songs, got %d (%v)", count, err)
		}
	})

	t.Run("ratings lists local records", func(t *testing.T) {
		env := newTestEnv(t, 6)
		if err := env.run("songs", "rate", "2", "3"); err != nil {
			t.Fatalf("rate failed: %v", err)
		}
		env.output.Reset()

		if err := env.run("cache", "ratings"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), "song 2") {
			t.Errorf("expected rating record, got:\n%s", env.output.String())
		}
	})

	t.Run("ratings with nothing recorded", func(t *testing.T) {
		env := newTestEnv(t, 2)

		if err := env.run("cache", "ratings", "--song", "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), "No ratings recorded") {
			t.Errorf("expected empty message, got %q", env.output.String())
		}
	})
}

func TestBatchCommand(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "ratings.csv")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write ratings file: %v", err)
		}
		return path
	}

	t.Run("rates every entry and refreshes once", func(t *testing.T) {
		env := newTestEnv(t, 6)
		path := writeFile(t, "song_id,stars\n1,4\n2,5\n")

		if err := env.run("batch", "rate", "--quiet", "--file", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := env.requests("POST /rate"); len(got) != 2 {
			t.Errorf("expected 2 ratings, got %v", got)
		}
		if got := env.requests("GET /songs"); len(got) != 1 {
			t.Errorf("expected one refresh, got %v", got)
		}
		if !strings.Contains(env.output.String(), "2 rated, 0 failed") {
			t.Errorf("expected summary, got %q", env.output.String())
		}

		count, err := repositories.NewSongRepository(env.db).Count()
		if err != nil || count != 6 {
			t.Errorf("expected the refreshed list cached, got %d (%v)", count, err)
		}
	})

	t.Run("continues past failures", func(t *testing.T) {
		env := newTestEnv(t, 6)
		path := writeFile(t, "1,4\n2,9\n42,3\n")

		err := env.run("batch", "rate", "--quiet", "--file", path)
		if !errors.Is(err, shared.ErrUpdateRating) {
			t.Errorf("expected ErrUpdateRating, got %v", err)
		}

		out := env.output.String()
		if !strings.Contains(out, "1 rated, 2 failed") {
			t.Errorf("expected summary, got %q", out)
		}
		if !strings.Contains(out, "✗ song 42") {
			t.Errorf("expected failed entry listed, got %q", out)
		}
		if got := env.requests("POST /rate"); len(got) != 2 {
			t.Errorf("expected invalid stars to skip the backend, got %v", got)
		}
	})

	t.Run("rejects malformed files", func(t *testing.T) {
		env := newTestEnv(t, 2)
		path := writeFile(t, "1,4\nx,5\n")

		err := env.run("batch", "rate", "--file", path)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		env := newTestEnv(t, 2)

		err := env.run("batch", "rate", "--file", filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestAPICommands(t *testing.T) {
	t.Run("get prints the body", func(t *testing.T) {
		env := newTestEnv(t, 3)

		if err := env.run("api", "get", "/songs?skip=0&limit=1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), `"title": "Song 00"`) {
			t.Errorf("expected pretty JSON, got %q", env.output.String())
		}
	})

	t.Run("get reports error statuses", func(t *testing.T) {
		env := newTestEnv(t, 3)
		env.backend.FailWith("/songs", http.StatusInternalServerError, "db down")

		err := env.run("api", "get", "/songs")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("post sends the body", func(t *testing.T) {
		env := newTestEnv(t, 3)

		if err := env.run("api", "post", "--data", `{"song_index":1,"rating":2}`, "/rate"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rating := env.backend.Songs()[1].AvgRating; rating == nil || *rating != 2 {
			t.Errorf("expected rating 2, got %v", rating)
		}
	})

	t.Run("post rejects invalid JSON", func(t *testing.T) {
		env := newTestEnv(t, 3)

		err := env.run("api", "post", "--data", "{nope", "/rate")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("probe", func(t *testing.T) {
		env := newTestEnv(t, 3)

		if err := env.run("api", "probe"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(env.output.String(), "✓ /songs?skip=0&limit=1 (200)") {
			t.Errorf("expected probe report, got %q", env.output.String())
		}
	})

	t.Run("probe with a failing endpoint", func(t *testing.T) {
		env := newTestEnv(t, 3)
		env.backend.FailWith("/songs/search", http.StatusInternalServerError, "boom")

		err := env.run("api", "probe")
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
		if !strings.Contains(env.output.String(), "✗ /songs/search?title=") {
			t.Errorf("expected failed endpoint, got %q", env.output.String())
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config writes the template once", func(t *testing.T) {
		env := newTestEnv(t, 0)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := env.run("setup", "config", "--config", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, path)

		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("expected template to load, got %v", err)
		}

		err := env.run("setup", "config", "--config", path)
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for existing file, got %v", err)
		}
	})

	t.Run("database migrates the configured path", func(t *testing.T) {
		env := newTestEnv(t, 0)
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "songs.db")
		configPath := filepath.Join(dir, "config.toml")

		conf := "[database]\npath = \"" + filepath.ToSlash(dbPath) + "\"\n"
		if err := os.WriteFile(configPath, []byte(conf), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if err := env.run("setup", "database", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, dbPath)
	})
}
