// Package repositories implements the SQLite song cache.
//
// Key Implementations:
//   - [SongRepository] : snapshot of the last successful GET /songs listing, replaced wholesale
//   - [RatingRepository] : log of ratings submitted from this client, implements [models.Repository]
//
// The snapshot lets `songs list --offline` and the charts work without the backend.
// Ratings get a UUID and a sequence number from [NextSequence].
package repositories
