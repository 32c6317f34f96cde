package repositories

import (
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

// RatingRepository implements models.Repository[*models.RatingRecord] for the local rating log.
type RatingRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.RatingRecord] = (*RatingRepository)(nil)

// NewRatingRepository creates a new RatingRepository with the given database connection
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create validates the record, then stores it with a generated ID and sequence.
func (r *RatingRepository) Create(rating *models.RatingRecord) error {
	if err := rating.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "ratings")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	if _, err := r.db.Exec(
		`INSERT INTO ratings (id, sequence, song_id, stars, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, sequence, rating.SongID(), rating.Stars(), rating.CreatedAt().UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}

	rating.SetID(id)
	rating.SetSequence(sequence)
	return nil
}

// Get retrieves a rating by ID
func (r *RatingRepository) Get(id string) (*models.RatingRecord, error) {
	row := r.db.QueryRow(`SELECT id, sequence, song_id, stars, created_at FROM ratings WHERE id = ?`, id)
	rating, err := scanRating(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("rating not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan rating: %w", err)
	}
	return rating, nil
}

// List returns ratings in submission order.
//
// Supported criteria: "song_id" (int) and "limit" (int, most recent first when set).
func (r *RatingRepository) List(criteria map[string]any) ([]*models.RatingRecord, error) {
	query := `SELECT id, sequence, song_id, stars, created_at FROM ratings WHERE 1 = 1`
	args := []any{}

	if songID, ok := criteria["song_id"].(int); ok {
		query += " AND song_id = ?"
		args = append(args, songID)
	}

	limit, limited := criteria["limit"].(int)
	limited = limited && limit > 0
	if limited {
		query += " ORDER BY sequence DESC LIMIT ?"
		args = append(args, limit)
	} else {
		query += " ORDER BY sequence ASC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.RatingRecord
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	if limited {
		slices.Reverse(ratings)
	}
	return ratings, nil
}

// ListBySong returns every rating submitted for songID, oldest first.
func (r *RatingRepository) ListBySong(songID int) ([]*models.RatingRecord, error) {
	return r.List(map[string]any{"song_id": songID})
}

func scanRating(row scanner) (*models.RatingRecord, error) {
	var (
		id        string
		sequence  int
		songID    int
		stars     int
		createdAt time.Time
	)

	if err := row.Scan(&id, &sequence, &songID, &stars, &createdAt); err != nil {
		return nil, err
	}

	rating := models.NewRatingRecord(sequence, songID, stars)
	rating.SetID(id)
	rating.SetCreatedAt(createdAt)
	return rating, nil
}
