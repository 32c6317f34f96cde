package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/songdash/internal/shared"
	tu "github.com/desertthunder/songdash/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("defaults", func(t *testing.T) {
			srv := NewAPIService("", nil)
			if srv.baseURL != "http://localhost:8000" {
				t.Errorf("expected default baseURL, got %s", srv.baseURL)
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("custom client", func(t *testing.T) {
			client := &http.Client{}
			if srv := NewAPIService("http://songs.test", client); srv.httpClient != client {
				t.Error("expected custom client to be used")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		backend := tu.NewFakeBackend(tu.SampleSongs(5))
		srv := NewAPIService(backend.Start(t), nil)

		t.Run("decodes JSON listing", func(t *testing.T) {
			resp, err := srv.Get(context.Background(), "/songs?limit=2")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() || !resp.IsJSON {
				t.Fatalf("expected 200 JSON, got %d json=%v", resp.StatusCode, resp.IsJSON)
			}

			rows, ok := resp.JSONData.([]any)
			if !ok || len(rows) != 2 {
				t.Errorf("expected 2 rows, got %v", resp.JSONData)
			}
			if !strings.Contains(resp.Pretty(), "\n  {") {
				t.Errorf("expected indented output, got %s", resp.Pretty())
			}
		})

		t.Run("missing title is a 422", func(t *testing.T) {
			resp, err := srv.Get(context.Background(), "/songs/search")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Errorf("expected 422, got %d", resp.StatusCode)
			}
			if err := resp.Err(); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("non-JSON body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			resp, err := NewAPIService(server.URL, nil).Get(context.Background(), "/")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON || resp.JSONData != nil {
				t.Error("expected response to not be JSON")
			}
			if resp.Pretty() != "plain text response" {
				t.Errorf("unexpected body %q", resp.Pretty())
			}
		})

		t.Run("invalid path", func(t *testing.T) {
			_, err := srv.Get(context.Background(), "/songs\x00")
			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("transport failure", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed"))}
			_, err := NewAPIService("http://songs.test", client).Get(context.Background(), "/songs")
			if err == nil || !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("body read failure", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
				Header:     http.Header{},
			}, nil)}
			_, err := NewAPIService("http://songs.test", client).Get(context.Background(), "/songs")
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("canceled context", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if _, err := srv.Get(ctx, "/songs"); err == nil {
				t.Error("expected error for canceled context")
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("rates a song", func(t *testing.T) {
			backend := tu.NewFakeBackend(tu.SampleSongs(3))
			srv := NewAPIService(backend.Start(t), nil)

			resp, err := srv.Post(context.Background(), "/rate", []byte(`{"song_index":1,"rating":4}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := resp.Err(); err != nil {
				t.Fatalf("expected 2xx, got %v", err)
			}
			if got := backend.Songs()[1].AvgRating; got == nil || *got != 4 {
				t.Errorf("expected backend rating 4, got %v", got)
			}
		})

		t.Run("sends JSON content type", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
				}
				body, _ := io.ReadAll(r.Body)
				if len(body) != 0 {
					t.Errorf("expected empty body, got %q", body)
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer server.Close()

			resp, err := NewAPIService(server.URL, nil).Post(context.Background(), "/rate", []byte{})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected 201, got %d", resp.StatusCode)
			}
		})

		t.Run("detail surfaces in Err", func(t *testing.T) {
			backend := tu.NewFakeBackend(tu.SampleSongs(1))
			srv := NewAPIService(backend.Start(t), nil)

			resp, err := srv.Post(context.Background(), "/rate", []byte(`{"song_index":99,"rating":4}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := resp.Err(); err == nil || err.Error() != "Song not found" {
				t.Errorf("expected 'Song not found', got %v", err)
			}
		})
	})
}
