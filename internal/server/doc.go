// Package server provides HTTP routing, middleware and the export handlers behind `songdash serve`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so a wrong method gets 405.
//
// # Export Endpoints
//
//	GET /songs.csv  → processed list as CSV (query: sort, dir, title), served as an attachment
//	GET /charts     → scatter, duration histogram and bar datasets as JSON
//	GET /health     → {"status":"ok"}
//
// Backend failures answer 502 with a {"detail": ...} body carrying the dashboard's error message.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
