package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

const songColumns = `id, song_id, title, danceability, energy, mode, acousticness, tempo,
	duration_ms, num_sections, num_segments, avg_rating`

// SongRepository stores the cached song snapshot.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// ReplaceAll swaps the snapshot for songs in one transaction.
func (r *SongRepository) ReplaceAll(songs []models.Song) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM songs"); err != nil {
		return fmt.Errorf("failed to clear songs: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO songs (` + songColumns + `, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, s := range songs {
		var rating sql.NullFloat64
		if s.AvgRating != nil {
			rating = sql.NullFloat64{Float64: *s.AvgRating, Valid: true}
		}

		if _, err := stmt.Exec(
			s.ID,
			s.SongID,
			s.Title,
			s.Danceability,
			s.Energy,
			s.Mode,
			s.Acousticness,
			s.Tempo,
			s.DurationMS,
			s.NumSections,
			s.NumSegments,
			rating,
			now,
		); err != nil {
			return fmt.Errorf("failed to insert song %d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// List returns the snapshot ordered by id.
//
// Returns [shared.ErrCacheEmpty] when nothing has been synced.
func (r *SongRepository) List() ([]models.Song, error) {
	songs, err := r.query("SELECT " + songColumns + " FROM songs ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, shared.ErrCacheEmpty
	}
	return songs, nil
}

// SearchByTitle returns cached songs whose title contains title, ignoring case.
func (r *SongRepository) SearchByTitle(title string) ([]models.Song, error) {
	pattern := "%" + escapeLike(title) + "%"
	return r.query("SELECT "+songColumns+` FROM songs
		WHERE title LIKE ? ESCAPE '\'
		ORDER BY id ASC`, pattern)
}

// Get returns the cached song with the given id.
func (r *SongRepository) Get(id int) (*models.Song, error) {
	row := r.db.QueryRow("SELECT "+songColumns+" FROM songs WHERE id = ?", id)
	s, err := scanSong(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	return s, nil
}

// Count returns the number of cached songs.
func (r *SongRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return n, nil
}

// SyncedAt returns when the snapshot was written. ok is false for an empty cache.
func (r *SongRepository) SyncedAt() (t time.Time, ok bool, err error) {
	var synced sql.NullTime
	err = r.db.QueryRow("SELECT synced_at FROM songs ORDER BY synced_at DESC LIMIT 1").Scan(&synced)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read sync time: %w", err)
	}
	return synced.Time, synced.Valid, nil
}

func (r *SongRepository) query(query string, args ...any) ([]models.Song, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}
	return songs, nil
}

func scanSong(row scanner) (*models.Song, error) {
	var (
		s      models.Song
		rating sql.NullFloat64
	)

	if err := row.Scan(
		&s.ID,
		&s.SongID,
		&s.Title,
		&s.Danceability,
		&s.Energy,
		&s.Mode,
		&s.Acousticness,
		&s.Tempo,
		&s.DurationMS,
		&s.NumSections,
		&s.NumSegments,
		&rating,
	); err != nil {
		return nil, err
	}

	if rating.Valid {
		s.AvgRating = models.Rating(rating.Float64)
	}
	return &s, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
