package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrFetchSongs         = fmt.Errorf("failed to fetch songs")
	ErrSearchSongs        = fmt.Errorf("failed to search songs")
	ErrUpdateRating       = fmt.Errorf("failed to update rating")
	ErrSongNotFound       = fmt.Errorf("song not found")

	// Cache errors
	ErrCacheEmpty = fmt.Errorf("song cache is empty")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidRating   = fmt.Errorf("invalid rating")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
