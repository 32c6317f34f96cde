// Package models defines domain entities and persistence interfaces for the songs dashboard client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs mirroring the backend's JSON
//   - [Song] : one track's metadata, audio features and current rating
//   - [RatingRequest] : body of POST /rate
//
// 2. Persistent Entities: rows in the local sqlite cache
//   - [RatingRecord] : a rating submitted from this client
//
// [SortField], [SortDirection] and [SortDescriptor] describe how the dashboard orders songs.
// Every Song attribute is a sort field, named by its wire name.
package models
