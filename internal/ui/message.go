package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songdash/internal/dashboard"
	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsFetched MsgKind = iota
	MsgSearchResult
	MsgRated
	MsgExported
	MsgProgressUpdate
	MsgSynced
)

type songsFetched struct {
	ticket  dashboard.Ticket
	songs   []models.Song
	err     error
	refresh bool // part of a rating refresh; re-run the active search next
}

type searchResult struct {
	ticket dashboard.Ticket
	query  string
	songs  []models.Song
	err    error
}

type rated struct {
	songID int
	stars  int
	err    error
}

type exported struct {
	path  string
	count int
	err   error
}

type synced struct {
	ticket dashboard.Ticket
	result *tasks.SyncResult
	err    error
}

// songsFetchedMsg is the constructor for [MsgSongsFetched]
func songsFetchedMsg(t dashboard.Ticket, songs []models.Song, err error, refresh bool) Msg {
	return Msg{kind: MsgSongsFetched, data: songsFetched{t, songs, err, refresh}}
}

// searchResultMsg is the constructor for [MsgSearchResult]
func searchResultMsg(t dashboard.Ticket, query string, songs []models.Song, err error) Msg {
	return Msg{kind: MsgSearchResult, data: searchResult{t, query, songs, err}}
}

// ratedMsg is the constructor for [MsgRated]
func ratedMsg(songID, stars int, err error) Msg {
	return Msg{kind: MsgRated, data: rated{songID, stars, err}}
}

// exportedMsg is the constructor for [MsgExported]
func exportedMsg(path string, count int, err error) Msg {
	return Msg{kind: MsgExported, data: exported{path, count, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// syncedMsg is the constructor for [MsgSynced]
func syncedMsg(t dashboard.Ticket, result *tasks.SyncResult, err error) Msg {
	return Msg{kind: MsgSynced, data: synced{t, result, err}}
}
