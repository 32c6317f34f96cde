package dashboard

import (
	"fmt"

	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/shared"
)

// ValidateRating rejects star counts outside 1..5 before anything is sent.
func ValidateRating(stars int) error {
	if err := models.ValidateStars(stars); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidRating, err)
	}
	return nil
}

// StarFilled reports whether star k (1-based) is drawn filled for rating.
// No rounding: 3.5 fills three stars.
func StarFilled(rating *float64, k int) bool {
	return rating != nil && float64(k) <= *rating
}
