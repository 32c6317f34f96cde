package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/songdash/internal/dashboard"
	"github.com/desertthunder/songdash/internal/formatter"
	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/repositories"
	"github.com/desertthunder/songdash/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongsList fetches the full list and prints one page, or every page with --all.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	svc, closeSvc, err := r.service(cmd.Bool("offline"))
	if err != nil {
		return err
	}
	defer closeSvc()

	d := r.newDashboard(svc)
	if err := applySort(d, cmd.String("sort"), cmd.Bool("desc")); err != nil {
		return err
	}
	if err := d.Load(ctx); err != nil {
		return err
	}

	return r.printSongs(cmd, d, "Songs")
}

// SongsSearch replaces the list with the songs whose title contains the argument.
func (r *Runner) SongsSearch(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.StringArg("title"))
	if title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrMissingArgument)
	}

	d := r.newDashboard(r.songs)
	if err := applySort(d, cmd.String("sort"), cmd.Bool("desc")); err != nil {
		return err
	}
	if err := d.Search(ctx, title); err != nil {
		return err
	}

	return r.printSongs(cmd, d, "Search results")
}

// SongsRate submits a rating, then shows the refreshed rating of the song. A
// refresh failure after the backend accepted the rating is only a warning.
func (r *Runner) SongsRate(ctx context.Context, cmd *cli.Command) error {
	id, err := intArg(cmd, "id")
	if err != nil {
		return err
	}
	stars, err := intArg(cmd, "stars")
	if err != nil {
		return err
	}

	d := r.newDashboard(r.songs)
	refreshErr := d.Rate(ctx, id, stars)
	if errors.Is(refreshErr, shared.ErrInvalidRating) || errors.Is(refreshErr, shared.ErrUpdateRating) {
		return refreshErr
	}

	r.recordRating(id, stars)

	r.writePlain("✓ Rated song %d %s\n", id, shared.Stars(models.Rating(float64(stars))))
	if refreshErr != nil {
		r.logger.Warn("rating saved but the list was not refreshed", "song", id, "error", refreshErr)
		r.writePlain("  ! list not refreshed: %v\n", refreshErr)
		return nil
	}
	for _, s := range d.Store().Songs() {
		if s.ID == id {
			r.writePlain("  %s now averages %s\n", s.Title, shared.FormatRating(s.AvgRating))
			break
		}
	}
	return nil
}

// recordRating appends the rating to the local log. Failures are logged only.
func (r *Runner) recordRating(id, stars int) {
	db, closeDB, err := r.openDatabase()
	if err != nil {
		r.logger.Warn("rating not recorded locally", "error", err)
		return
	}
	defer closeDB()

	if err := repositories.NewRatingRepository(db).Create(models.NewRatingRecord(0, id, stars)); err != nil {
		r.logger.Warn("rating not recorded locally", "song", id, "error", err)
	}
}

// SongsExport writes every page of the sorted list, or of a search, to a file.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	output := cmd.String("output")
	title := strings.TrimSpace(cmd.String("title"))

	d := r.newDashboard(r.songs)
	if err := applySort(d, cmd.String("sort"), cmd.Bool("desc")); err != nil {
		return err
	}

	var err error
	if title != "" {
		err = d.Search(ctx, title)
	} else {
		err = d.Load(ctx)
	}
	if err != nil {
		return err
	}

	songs := d.Processed()
	meta := formatter.ReportMeta{Title: "Songs", Sort: d.Sort(), Query: title}

	var path string
	switch format {
	case "csv":
		path, err = formatter.WriteCSVExport(songs, output)
	case "markdown", "md":
		path, err = formatter.WriteMarkdownExport(songs, meta, output)
	case "txt", "text":
		path, err = formatter.WriteTextExport(songs, meta, output)
	default:
		return fmt.Errorf("%w: unknown format %q (csv, markdown, txt)", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return err
	}

	r.logger.Info("exported songs", "format", format, "path", path, "count", len(songs))
	r.writePlain("✓ Exported %d songs to %s\n", len(songs), path)
	return nil
}

// printSongs writes the current page (or all pages) as JSON or an aligned table.
func (r *Runner) printSongs(cmd *cli.Command, d *dashboard.Dashboard, title string) error {
	var songs []models.Song
	if cmd.Bool("all") {
		songs = d.Processed()
	} else {
		d.SetPage(int(cmd.Int("page")))
		songs = d.View().Items
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	meta := formatter.ReportMeta{Title: title, Sort: d.Sort(), Query: d.Filter().Query()}
	if _, err := r.output.Write(formatter.ExportToText(songs, meta)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if cmd.Bool("all") {
		return r.writePlainln("%d songs", len(d.Processed()))
	}
	page := d.View()
	return r.writePlainln("Page %d of %d · %d songs", page.Page, page.TotalPages, page.Total)
}

// applySort sets the dashboard sort from --sort and --desc.
func applySort(d *dashboard.Dashboard, field string, desc bool) error {
	f, err := models.ParseSortField(field)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	dir := models.Ascending
	if desc {
		dir = models.Descending
	}
	d.SetSort(models.SortDescriptor{Field: f, Direction: dir})
	return nil
}

func intArg(cmd *cli.Command, name string) (int, error) {
	raw := strings.TrimSpace(cmd.StringArg(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, name)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", shared.ErrInvalidArgument, name, raw)
	}
	return n, nil
}
