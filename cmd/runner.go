package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songdash/internal/dashboard"
	"github.com/desertthunder/songdash/internal/repositories"
	"github.com/desertthunder/songdash/internal/services"
	"github.com/desertthunder/songdash/internal/shared"
	"github.com/desertthunder/songdash/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	songs      services.Service
	api        *services.APIService
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Songs      services.Service
	API        *services.APIService
	DB         *sql.DB // Opened from Config.Database on demand when nil
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.API.Timeout()}
	}
	if opts.Songs == nil {
		svc := services.NewSongsService(opts.Config.API.BaseURL, opts.HTTPClient)
		svc.SetLogger(opts.Logger)
		opts.Songs = svc
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.API.BaseURL, opts.HTTPClient)
	}

	return &Runner{
		config:     opts.Config,
		songs:      opts.Songs,
		api:        opts.API,
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	if svc, ok := r.songs.(*services.SongsService); ok {
		svc.SetLogger(l)
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, songsCommand, chartsCommand, cacheCommand, batchCommand, apiCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// newDashboard creates a dashboard over svc with the configured page size and list limit.
func (r *Runner) newDashboard(svc services.Service) *dashboard.Dashboard {
	return dashboard.New(svc, dashboard.Options{
		PageSize:  r.config.Dashboard.PageSize,
		ListLimit: r.config.Dashboard.ListLimit,
		Logger:    r.logger,
	})
}

// openDatabase returns the injected database or opens and migrates the configured one.
// The returned func closes only a database opened here.
func (r *Runner) openDatabase() (*sql.DB, func(), error) {
	if r.db != nil {
		return r.db, func() {}, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, func() { db.Close() }, nil
}

// service returns the backend, or the cached snapshot when offline is set.
func (r *Runner) service(offline bool) (services.Service, func(), error) {
	if !offline {
		return r.songs, func() {}, nil
	}

	db, closeDB, err := r.openDatabase()
	if err != nil {
		return nil, nil, err
	}
	return services.NewCachedService(repositories.NewSongRepository(db)), closeDB, nil
}

// newEngine creates a task engine; db may be nil when no cache is available.
func (r *Runner) newEngine(db *sql.DB) *tasks.SongEngine {
	opts := tasks.EngineOpts{
		API:       r.api,
		ListLimit: r.config.Dashboard.ListLimit,
		Logger:    r.logger,
	}
	if db != nil {
		opts.Songs = repositories.NewSongRepository(db)
		opts.Ratings = repositories.NewRatingRepository(db)
	}
	return tasks.NewSongEngine(r.songs, opts)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
