package models

import (
	"fmt"
	"time"
)

const (
	MinStars = 1
	MaxStars = 5
)

// RatingRecord is a rating submitted from this client, kept in the local cache.
type RatingRecord struct {
	id        string
	sequence  int
	songID    int
	stars     int
	createdAt time.Time
}

// NewRatingRecord creates an unsaved record for songID.
func NewRatingRecord(sequence, songID, stars int) *RatingRecord {
	return &RatingRecord{
		sequence:  sequence,
		songID:    songID,
		stars:     stars,
		createdAt: time.Now(),
	}
}

func (r *RatingRecord) ID() string           { return r.id }
func (r *RatingRecord) Sequence() int        { return r.sequence }
func (r *RatingRecord) SongID() int          { return r.songID }
func (r *RatingRecord) Stars() int           { return r.stars }
func (r *RatingRecord) CreatedAt() time.Time { return r.createdAt }

func (r *RatingRecord) SetID(id string)          { r.id = id }
func (r *RatingRecord) SetSequence(seq int)      { r.sequence = seq }
func (r *RatingRecord) SetCreatedAt(t time.Time) { r.createdAt = t }

// Validate checks the star count is within 1..5 and the song id is non-negative.
func (r *RatingRecord) Validate() error {
	if r.songID < 0 {
		return fmt.Errorf("song id must be non-negative, got %d", r.songID)
	}
	return ValidateStars(r.stars)
}

// ValidateStars reports whether stars is a valid rating value.
func ValidateStars(stars int) error {
	if stars < MinStars || stars > MaxStars {
		return fmt.Errorf("rating must be between %d and %d, got %d", MinStars, MaxStars, stars)
	}
	return nil
}
