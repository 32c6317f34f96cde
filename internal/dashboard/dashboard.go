package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songdash/internal/errmsg"
	"github.com/desertthunder/songdash/internal/formatter"
	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/services"
	"github.com/desertthunder/songdash/internal/shared"
	"github.com/desertthunder/songdash/internal/view"
)

const (
	DefaultPageSize  = 10
	DefaultListLimit = 1000
)

// Options configures a [Dashboard]. Zero values take the defaults.
type Options struct {
	PageSize  int
	ListLimit int
	Logger    *log.Logger
}

// Dashboard is the single owner of list, filter, sort, page and error state.
//
// It is not safe for concurrent use; the owner applies every result.
type Dashboard struct {
	svc       services.Service
	store     *SongStore
	filter    *SearchFilter
	sort      models.SortDescriptor
	page      int
	pageSize  int
	listLimit int
	message   string
	logger    *log.Logger
}

// New creates a dashboard over svc with an empty store, no filter, id ascending, page 1.
func New(svc services.Service, opts Options) *Dashboard {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = DefaultListLimit
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Dashboard{
		svc:       svc,
		store:     NewSongStore(),
		filter:    NewSearchFilter(),
		sort:      models.DefaultSort(),
		page:      1,
		pageSize:  opts.PageSize,
		listLimit: opts.ListLimit,
		logger:    opts.Logger,
	}
}

// Service returns the backend the dashboard talks to.
func (d *Dashboard) Service() services.Service { return d.svc }

// Store returns the primary song list.
func (d *Dashboard) Store() *SongStore { return d.store }

// Filter returns the title search state.
func (d *Dashboard) Filter() *SearchFilter { return d.filter }

// Sort returns the active sort descriptor.
func (d *Dashboard) Sort() models.SortDescriptor { return d.sort }

// CurrentPage returns the 1-based page index.
func (d *Dashboard) CurrentPage() int { return d.page }

// PageSize returns the number of rows per page.
func (d *Dashboard) PageSize() int { return d.pageSize }

// ListLimit returns the limit sent with each list request.
func (d *Dashboard) ListLimit() int { return d.listLimit }

// Loading reports whether a list fetch is in flight.
func (d *Dashboard) Loading() bool { return d.store.Loading() }

// Searching reports whether a title search is in flight.
func (d *Dashboard) Searching() bool { return d.filter.Loading() }

// Error returns the last user-facing error message, or "" when cleared.
func (d *Dashboard) Error() string { return d.message }

// SetError records err as the user-facing message for op.
func (d *Dashboard) SetError(op errmsg.Op, err error) { d.message = errmsg.Format(op, err) }

// Load fetches the full list. The error message is cleared when the fetch starts.
func (d *Dashboard) Load(ctx context.Context) error {
	t := d.BeginLoad()
	songs, err := d.svc.ListSongs(ctx, 0, d.listLimit)
	d.ApplyLoad(t, songs, err)
	return wrap(shared.ErrFetchSongs, err)
}

// BeginLoad starts a store fetch.
func (d *Dashboard) BeginLoad() Ticket {
	d.message = ""
	return d.store.Begin()
}

// ApplyLoad applies a store fetch result, reporting whether it was current.
func (d *Dashboard) ApplyLoad(t Ticket, songs []models.Song, err error) bool {
	if !d.store.Apply(t, songs, err) {
		d.logger.Debug("dropped stale listing", "ticket", t)
		return false
	}
	if err != nil {
		d.logger.Error("fetch failed", "error", err)
		d.message = errmsg.Format(errmsg.OpFetchSongs, err)
		return true
	}
	d.logger.Info("fetched songs", "count", len(songs))
	return true
}

// Search sets the title filter. A blank query clears it without a request.
func (d *Dashboard) Search(ctx context.Context, query string) error {
	t, ok := d.BeginSearch(query)
	if !ok {
		return nil
	}
	songs, err := d.svc.SearchSongs(ctx, query)
	d.ApplySearch(t, query, songs, err)
	return wrap(shared.ErrSearchSongs, err)
}

// BeginSearch starts a search, or clears the filter and reports false for a blank query.
func (d *Dashboard) BeginSearch(query string) (Ticket, bool) {
	t, ok := d.filter.Begin(query)
	if !ok {
		d.page = 1
	}
	return t, ok
}

// ApplySearch applies a search result. A success resets the page to 1; a failure
// keeps whatever filter was active before.
func (d *Dashboard) ApplySearch(t Ticket, query string, songs []models.Song, err error) bool {
	if !d.filter.Apply(t, query, songs, err) {
		d.logger.Debug("dropped stale search", "query", query, "ticket", t)
		return false
	}
	if err != nil {
		d.logger.Error("search failed", "query", query, "error", err)
		d.message = errmsg.Format(errmsg.OpSearchSongs, err)
		return true
	}
	d.logger.Info("searched songs", "query", query, "count", len(songs))
	d.page = 1
	return true
}

// ClearSearch drops the filter and returns to page 1.
func (d *Dashboard) ClearSearch() {
	d.filter.Clear()
	d.page = 1
}

// Rate submits stars for songID, then re-fetches the list and, once that
// finishes, re-runs the active search.
//
// A failed or invalid rating sets the error message and changes nothing else.
// Once the backend accepts the rating, list and search failures are joined and
// never carry [shared.ErrUpdateRating].
func (d *Dashboard) Rate(ctx context.Context, songID, stars int) error {
	if err := d.BeginRate(songID, stars); err != nil {
		return err
	}

	if err := d.svc.RateSong(ctx, songID, stars); err != nil {
		d.ApplyRate(songID, stars, err)
		return wrap(shared.ErrUpdateRating, err)
	}
	d.ApplyRate(songID, stars, nil)

	loadErr := d.Load(ctx)

	query, again := d.RefreshQuery()
	if !again {
		return loadErr
	}
	return errors.Join(loadErr, d.Search(ctx, query))
}

// BeginRate validates stars locally.
func (d *Dashboard) BeginRate(songID, stars int) error {
	if err := ValidateRating(stars); err != nil {
		d.message = errmsg.Format(errmsg.OpUpdateRating, err)
		return err
	}
	return nil
}

// ApplyRate records the outcome of POST /rate and reports whether a refresh should follow.
func (d *Dashboard) ApplyRate(songID, stars int, err error) bool {
	if err != nil {
		d.logger.Error("rating failed", "song", songID, "stars", stars, "error", err)
		d.message = errmsg.Format(errmsg.OpUpdateRating, err)
		return false
	}
	d.logger.Info("rated song", "song", songID, "stars", stars)
	return true
}

// RefreshQuery returns the query to re-run after a rating, if a filter is active.
func (d *Dashboard) RefreshQuery() (string, bool) {
	if !d.filter.Active() {
		return "", false
	}
	return d.filter.Query(), true
}

// SelectSort applies a column pick: the same field toggles direction, another starts ascending.
func (d *Dashboard) SelectSort(f models.SortField) {
	d.sort = d.sort.Select(f)
}

// SetSort replaces the descriptor.
func (d *Dashboard) SetSort(s models.SortDescriptor) {
	d.sort = s
}

// Active returns the search override when set, the store list otherwise.
func (d *Dashboard) Active() []models.Song {
	if d.filter.Active() {
		return d.filter.Results()
	}
	return d.store.Songs()
}

// Processed returns the full sorted active list, every page.
func (d *Dashboard) Processed() []models.Song {
	return view.Sort(d.Active(), d.sort)
}

// View returns the current page of the processed list.
func (d *Dashboard) View() view.Page {
	return view.Paginate(d.Processed(), d.page, d.pageSize)
}

// TotalPages returns the page count of the processed list.
func (d *Dashboard) TotalPages() int {
	return view.TotalPages(len(d.Active()), d.pageSize)
}

// SetPage moves to page n, clamped to 1..TotalPages.
func (d *Dashboard) SetPage(n int) {
	d.page = view.ClampPage(n, d.TotalPages())
}

// NextPage advances one page unless on the last.
func (d *Dashboard) NextPage() {
	d.SetPage(d.page + 1)
}

// PrevPage goes back one page unless on the first.
func (d *Dashboard) PrevPage() {
	d.SetPage(d.page - 1)
}

// CSV exports the processed list, all pages, in the current sort order.
func (d *Dashboard) CSV() string {
	return formatter.ToCSV(d.Processed())
}

// Charts builds the chart datasets from the store list, ignoring any search override.
func (d *Dashboard) Charts() formatter.Charts {
	return formatter.BuildCharts(d.store.Songs())
}

func wrap(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
