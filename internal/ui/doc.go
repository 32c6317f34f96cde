// Package ui implements the interactive songs dashboard using bubbletea's Elm architecture.
//
// The TUI has four views:
//  1. [TableView] : The current page of the processed list with a star column
//  2. [SearchView] : The table with a focused title search input
//  3. [ChartsView] : Scatter, duration histogram and acousticness/tempo bars from the full list
//  4. [SyncView] : Progress of a cache sync run by [tasks.SongEngine]
//
// The (view) [Model] owns a [dashboard.Dashboard] and is the only code that mutates it.
// Network and file I/O run as [tea.Cmd]s and report back through the Msg union type;
// every fetch and search carries a [dashboard.Ticket] so a late response cannot overwrite
// a newer one. A rating chains rate, list, then search, one message at a time.
//
// Keys: / search, enter submit, esc clear, 1-9 0 - = sort, ←/→ page, ↑/↓ row,
// !@#$% rate 1-5, e export, c charts, s sync, r reload, q quit.
package ui
