package testing

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/desertthunder/songdash/internal/models"
)

// FakeBackend is an in-memory songs dashboard API served by gin.
//
// Rows carry latest_rating like the real listing. Failures can be injected per
// path with [FakeBackend.FailWith].
type FakeBackend struct {
	mu       sync.Mutex
	songs    []models.Song
	requests []string
	failures map[string]failure
}

type failure struct {
	status int
	detail string
}

type rateBody struct {
	SongIndex *int `json:"song_index" binding:"required"`
	Rating    *int `json:"rating" binding:"required"`
}

// NewFakeBackend copies songs into a new backend.
func NewFakeBackend(songs []models.Song) *FakeBackend {
	return &FakeBackend{
		songs:    append([]models.Song(nil), songs...),
		failures: make(map[string]failure),
	}
}

// Start serves the backend on a test server closed at cleanup and returns its URL.
func (f *FakeBackend) Start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(f.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

// FailWith makes every request to path answer status with a FastAPI style detail.
func (f *FakeBackend) FailWith(path string, status int, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = failure{status: status, detail: detail}
}

// Requests returns "METHOD /path?query" for every request served, in order.
func (f *FakeBackend) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// Songs returns the current backend state.
func (f *FakeBackend) Songs() []models.Song {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Song(nil), f.songs...)
}

// Handler returns the gin engine.
func (f *FakeBackend) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(f.track, f.inject)

	r.GET("/songs", f.listSongs)
	r.GET("/songs/search", f.searchSongs)
	r.POST("/rate", f.rate)
	return r
}

func (f *FakeBackend) track(c *gin.Context) {
	entry := c.Request.Method + " " + c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		entry += "?" + q
	}
	f.mu.Lock()
	f.requests = append(f.requests, entry)
	f.mu.Unlock()
	c.Next()
}

func (f *FakeBackend) inject(c *gin.Context) {
	f.mu.Lock()
	fail, ok := f.failures[c.Request.URL.Path]
	f.mu.Unlock()
	if ok {
		c.AbortWithStatusJSON(fail.status, gin.H{"detail": fail.detail})
		return
	}
	c.Next()
}

func (f *FakeBackend) listSongs(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	f.mu.Lock()
	defer f.mu.Unlock()

	rows := []gin.H{}
	for i := skip; i < len(f.songs) && len(rows) < limit; i++ {
		rows = append(rows, row(f.songs[i]))
	}
	c.JSON(http.StatusOK, rows)
}

func (f *FakeBackend) searchSongs(c *gin.Context) {
	title, ok := c.GetQuery("title")
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{
			"loc":  []string{"query", "title"},
			"msg":  "field required",
			"type": "value_error.missing",
		}}})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	needle := strings.ToLower(title)
	rows := []gin.H{}
	for _, s := range f.songs {
		if strings.Contains(strings.ToLower(s.Title), needle) {
			rows = append(rows, row(s))
		}
	}
	c.JSON(http.StatusOK, rows)
}

func (f *FakeBackend) rate(c *gin.Context) {
	var body rateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	if *body.Rating < models.MinStars || *body.Rating > models.MaxStars {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Rating must be between 1 and 5"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.songs {
		if f.songs[i].ID == *body.SongIndex {
			f.songs[i].AvgRating = models.Rating(float64(*body.Rating))
			c.JSON(http.StatusOK, gin.H{"id": len(f.requests), "song_index": *body.SongIndex, "rating": *body.Rating})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Song not found"})
}

func row(s models.Song) gin.H {
	var rating any
	if s.AvgRating != nil {
		rating = *s.AvgRating
	}
	return gin.H{
		"id":            s.ID,
		"song_id":       s.SongID,
		"title":         s.Title,
		"danceability":  s.Danceability,
		"energy":        s.Energy,
		"mode":          s.Mode,
		"acousticness":  s.Acousticness,
		"tempo":         s.Tempo,
		"duration_ms":   s.DurationMS,
		"num_sections":  s.NumSections,
		"num_segments":  s.NumSegments,
		"latest_rating": rating,
	}
}
