// Package dashboard owns the client-side state of the songs dashboard: the song
// list, the search override, the sort descriptor, the current page and the one
// user-visible error message.
//
// # Components
//
// [SongStore] holds the authoritative list from GET /songs. [SearchFilter] holds
// an optional override list from GET /songs/search. The active list is the
// override when one is set and the store list otherwise; [view.Sort] and
// [view.Paginate] derive the table from it.
//
// # Requests and tickets
//
// Each store fetch and each search is split into Begin, which hands out a
// [Ticket], and Apply, which takes the result. Only the result of the latest
// ticket is applied, so a slow response can never overwrite a newer one.
// Clearing the search also retires its outstanding ticket. The synchronous
// methods on [Dashboard] (Load, Search, Rate) are Begin, call, Apply in a row;
// the terminal UI runs the call in a command and applies the result when its
// message arrives.
//
// # Rating
//
// [Dashboard.Rate] posts the rating, then re-fetches the full list and only after
// that re-runs the last search when a filter is active. Nothing is updated
// optimistically; a failed rating changes nothing but the error message.
package dashboard
