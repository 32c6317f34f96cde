// Package services defines the [Service] interface for the songs dashboard backend
// and implements it over HTTP.
//
// # Service Interface
//
// [Service] is the whole backend surface the client pipeline needs: list, search, rate.
// The dashboard and tasks depend on the interface, tests swap in a scripted double.
//
// # SongsService
//
// [SongsService] calls the FastAPI backend:
//   - GET /songs?skip=0&limit=1000
//   - GET /songs/search?title=<query>
//   - POST /rate {"song_index": <Song.id>, "rating": 1..5}
//
// Listing rows carry latest_rating while the schema names it avg_rating; decoding
// accepts both (see [models.Song]).
//
// # APIService
//
// [APIService] sends raw GET/POST requests for the `songdash api` commands and
// returns the body with JSON detection.
//
// # Error Handling
//
// Non-2xx responses become [*APIError], carrying FastAPI's detail message.
// Every request failure wraps [shared.ErrAPIRequest]; 404s also wrap
// [shared.ErrSongNotFound]. Nothing is retried.
package services
