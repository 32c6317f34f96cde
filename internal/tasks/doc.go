// Package tasks runs the multi-step operations behind the CLI: syncing the song
// cache, rating many songs from a file and probing the backend's endpoints.
//
// [SongEngine] holds the backend [services.Service] and the cache repositories.
// Every operation reports [ProgressUpdate] values on an optional channel. Sends
// never block: when the channel is full the update is dropped, so a slow
// consumer cannot stall an operation.
//
// Batch rating is sequential and throttled with [rate.Limiter]; each entry gets
// its own [RatingResult] and a failed entry does not stop the batch. The list is
// re-fetched once at the end rather than after every rating.
package tasks
