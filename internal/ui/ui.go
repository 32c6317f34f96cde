package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/desertthunder/songdash/internal/dashboard"
	"github.com/desertthunder/songdash/internal/errmsg"
	"github.com/desertthunder/songdash/internal/formatter"
	"github.com/desertthunder/songdash/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	TableView ViewState = iota
	SearchView
	ChartsView
	SyncView
)

// Options configures the optional parts of a [Model].
type Options struct {
	Engine     *tasks.SongEngine // Enables cache sync from the table
	ExportPath string            // Defaults to [formatter.CSVFilename]
}

// Model represents the TUI application state.
//
// Only Update mutates the dashboard; commands perform network and file I/O and
// report back through messages.
type Model struct {
	ctx        context.Context
	view       ViewState
	dash       *dashboard.Dashboard
	engine     *tasks.SongEngine
	exportPath string
	input      textinput.Model
	cursor     int
	status     string
	width      int
	height     int
	progress   tasks.ProgressUpdate
	updates    chan tasks.ProgressUpdate
	done       chan synced
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model over dash.
func NewModel(ctx context.Context, dash *dashboard.Dashboard, opts Options) *Model {
	input := textinput.New()
	input.Placeholder = "Search by title"
	input.Prompt = "/ "
	input.CharLimit = 200

	path := opts.ExportPath
	if path == "" {
		path = formatter.CSVFilename
	}

	return &Model{
		ctx:        ctx,
		view:       TableView,
		dash:       dash,
		engine:     opts.Engine,
		exportPath: path,
		input:      input,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init fetches the song list once at startup.
func (m *Model) Init() tea.Cmd {
	return m.fetchSongs(false)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ChartsView:
			return m.handleChartsKeys(msg)
		case SyncView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		default:
			return m.handleTableKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsFetched:
		data := msg.data.(songsFetched)
		m.dash.ApplyLoad(data.ticket, data.songs, data.err)
		m.clampCursor()
		if !data.refresh {
			return m, nil
		}
		query, again := m.dash.RefreshQuery()
		if !again {
			return m, nil
		}
		return m, m.searchSongs(query)

	case MsgSearchResult:
		data := msg.data.(searchResult)
		if m.dash.ApplySearch(data.ticket, data.query, data.songs, data.err) && data.err == nil {
			m.cursor = 0
		}
		return m, nil

	case MsgRated:
		data := msg.data.(rated)
		if !m.dash.ApplyRate(data.songID, data.stars, data.err) {
			return m, nil
		}
		m.status = fmt.Sprintf("Rated song %d %s", data.songID, strings.Repeat("★", data.stars))
		return m, m.fetchSongs(true)

	case MsgExported:
		data := msg.data.(exported)
		if data.err != nil {
			m.dash.SetError(errmsg.OpExportCSV, data.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Exported %s songs to %s", humanize.Comma(int64(data.count)), data.path)
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForSync()

	case MsgSynced:
		data := msg.data.(synced)
		m.view = TableView
		m.updates, m.done = nil, nil
		if data.err != nil {
			m.dash.ApplyLoad(data.ticket, nil, data.err)
			m.dash.SetError(errmsg.OpSyncCache, data.err)
			return m, nil
		}
		m.dash.ApplyLoad(data.ticket, data.result.Songs, nil)
		m.clampCursor()
		m.status = fmt.Sprintf("Cached %s songs", humanize.Comma(int64(data.result.Count)))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.input.SetValue(m.dash.Filter().Query())
		m.input.CursorEnd()
		m.input.Focus()
		return m, nil
	case key.Matches(msg, m.keys.clear):
		m.dash.ClearSearch()
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.sort):
		if f, ok := sortField(msg.String()); ok {
			m.dash.SelectSort(f)
		}
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.dash.PrevPage()
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.dash.NextPage()
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.cursor++
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.rate):
		n, _ := stars(msg.String())
		return m, m.rateSelected(n)
	case key.Matches(msg, m.keys.export):
		return m, m.exportCSV()
	case key.Matches(msg, m.keys.charts):
		m.view = ChartsView
		return m, nil
	case key.Matches(msg, m.keys.sync):
		return m, m.startSync()
	case key.Matches(msg, m.keys.reload):
		return m, m.fetchSongs(false)
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.view = TableView
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.view = TableView
		m.input.Blur()
		query := m.input.Value()
		if strings.TrimSpace(query) == "" {
			m.dash.BeginSearch(query)
			m.cursor = 0
			return m, nil
		}
		return m, m.searchSongs(query)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleChartsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.charts), key.Matches(msg, m.keys.clear):
		m.view = TableView
	case key.Matches(msg, m.keys.reload):
		return m, m.fetchSongs(false)
	}
	return m, nil
}

// clampCursor keeps the selected row on the current page.
func (m *Model) clampCursor() {
	n := len(m.dash.View().Items)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// fetchSongs starts a store fetch; refresh marks the fetch that follows a rating.
func (m *Model) fetchSongs(refresh bool) tea.Cmd {
	t := m.dash.BeginLoad()
	svc, ctx, limit := m.dash.Service(), m.ctx, m.dash.ListLimit()
	return func() tea.Msg {
		songs, err := svc.ListSongs(ctx, 0, limit)
		return songsFetchedMsg(t, songs, err, refresh)
	}
}

func (m *Model) searchSongs(query string) tea.Cmd {
	t, ok := m.dash.BeginSearch(query)
	if !ok {
		return nil
	}
	svc, ctx := m.dash.Service(), m.ctx
	return func() tea.Msg {
		songs, err := svc.SearchSongs(ctx, query)
		return searchResultMsg(t, query, songs, err)
	}
}

func (m *Model) rateSelected(n int) tea.Cmd {
	items := m.dash.View().Items
	if m.cursor >= len(items) {
		return nil
	}
	songID := items[m.cursor].ID
	if err := m.dash.BeginRate(songID, n); err != nil {
		return nil
	}

	svc, ctx := m.dash.Service(), m.ctx
	return func() tea.Msg {
		return ratedMsg(songID, n, svc.RateSong(ctx, songID, n))
	}
}

func (m *Model) exportCSV() tea.Cmd {
	songs, path := m.dash.Processed(), m.exportPath
	return func() tea.Msg {
		written, err := formatter.WriteCSVExport(songs, path)
		return exportedMsg(written, len(songs), err)
	}
}

func (m *Model) startSync() tea.Cmd {
	if m.engine == nil || m.updates != nil {
		return nil
	}

	t := m.dash.BeginLoad()
	m.view = SyncView
	m.progress = tasks.ProgressUpdate{Message: "Starting sync..."}
	m.updates = make(chan tasks.ProgressUpdate, 16)
	m.done = make(chan synced, 1)

	engine, ctx, updates, done := m.engine, m.ctx, m.updates, m.done
	go func() {
		result, err := engine.Sync(ctx, updates)
		done <- synced{ticket: t, result: result, err: err}
		close(updates)
	}()

	return m.waitForSync()
}

func (m *Model) waitForSync() tea.Cmd {
	updates, done := m.updates, m.done
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-updates
		if ok {
			return progressUpdateMsg(update)
		}
		out := <-done
		return syncedMsg(out.ticket, out.result, out.err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ChartsView:
		return m.renderCharts()
	case SyncView:
		return m.renderSync()
	default:
		return m.renderTable()
	}
}

func (m *Model) renderTable() string {
	var b strings.Builder

	title := "Songs"
	if m.dash.Filter().Active() {
		title = fmt.Sprintf("Songs matching %q", m.dash.Filter().Query())
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	if m.view == SearchView {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(styles.header.Render(headerRow(m.dash.Sort())))
	b.WriteString("\n")

	page := m.dash.View()
	switch {
	case m.dash.Loading() && len(m.dash.Store().Songs()) == 0:
		b.WriteString(styles.help.Render("Loading..."))
		b.WriteString("\n")
	case len(page.Items) == 0:
		b.WriteString(styles.help.Render("No songs"))
		b.WriteString("\n")
	}
	for i, s := range page.Items {
		row := songRow(s)
		if i == m.cursor {
			row = styles.selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nPage %d of %d · %s songs", page.Page, max(page.TotalPages, 1), humanize.Comma(int64(page.Total)))
	if m.dash.Searching() {
		b.WriteString(" · searching...")
	} else if m.dash.Loading() {
		b.WriteString(" · loading...")
	}
	b.WriteString("\n")

	if e := m.dash.Error(); e != "" {
		b.WriteString(styles.err.Render(e))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(styles.ok.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderCharts() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.charts, m.keys.reload, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", styles.title.Render("Charts"), renderCharts(m.dash.Charts()), helpView)
}

func (m *Model) renderSync() string {
	title := styles.title.Render("Syncing Song Cache")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchSongs:
		phase = "Fetching songs..."
	case tasks.CacheSongs:
		phase = fmt.Sprintf("Caching (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}
