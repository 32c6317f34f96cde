// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// viewFlags are the sort and output flags shared by the listing commands.
func viewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "Sort column (id, title, tempo, duration_ms, rating, ...)",
			Value:   "id",
		},
		&cli.BoolFlag{
			Name:  "desc",
			Usage: "Sort descending",
		},
		&cli.IntFlag{
			Name:    "page",
			Aliases: []string{"p"},
			Usage:   "Page to show",
			Value:   1,
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "Show every page",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// songsCommand handles listing, searching, rating and exporting songs
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Browse, rate and export songs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs, sorted and paginated",
				Flags: append(viewFlags(), &cli.BoolFlag{
					Name:  "offline",
					Usage: "Read from the local cache instead of the backend",
				}),
				Action: r.SongsList,
			},
			{
				Name:  "search",
				Usage: "Search songs by title (case-insensitive substring)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Flags:  viewFlags(),
				Action: r.SongsSearch,
			},
			{
				Name:  "rate",
				Usage: "Rate a song from 1 to 5 stars",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "stars"},
				},
				Action: r.SongsRate,
			},
			{
				Name:  "export",
				Usage: "Export the sorted list, every page, to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default songs.csv, songs.md or songs.txt)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown or txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Export only songs whose title matches",
					},
					&cli.StringFlag{
						Name:    "sort",
						Aliases: []string{"s"},
						Usage:   "Sort column",
						Value:   "id",
					},
					&cli.BoolFlag{
						Name:  "desc",
						Usage: "Sort descending",
					},
				},
				Action: r.SongsExport,
			},
		},
	}
}

// chartsCommand prints the chart datasets
func chartsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "charts",
		Usage: "Show scatter, duration histogram and acousticness/tempo datasets",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Charts,
	}
}

// cacheCommand handles the local song snapshot
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Cache songs locally for offline use",
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Fetch every song and replace the cached snapshot",
				Action: r.CacheSync,
			},
			{
				Name:  "list",
				Usage: "Show the cached snapshot",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "ratings",
				Usage: "Show ratings submitted from this machine",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "song",
						Usage: "Only ratings for this song id",
						Value: -1,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of ratings to show",
						Value: 20,
					},
				},
				Action: r.CacheRatings,
			},
		},
	}
}

// batchCommand handles bulk operations
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Bulk operations",
		Commands: []*cli.Command{
			{
				Name:  "rate",
				Usage: "Rate songs from a CSV file of song_id,stars lines",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Ratings CSV file",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "rate-limit",
						Usage: "Submissions per second (0 uses the configured batch.rate_limit)",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Hide the progress bar",
					},
				},
				Action: r.BatchRate,
			},
		},
	}
}

// apiCommand handles direct backend API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the songs backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the response body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "probe",
				Usage: "Check that the backend's read endpoints answer",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.APIProbe,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the latest migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// serveCommand runs the CSV and charts HTTP endpoint
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve songs.csv and chart data over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default from config)",
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Serve the local cache instead of the backend",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for the interactive dashboard.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive songs dashboard",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Browse the local cache (rating is disabled)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the dashboard is open",
				Value: "./tmp/songdash-tui.log",
			},
		},
		Action: r.TUI,
	}
}
