package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songdash/internal/shared"
	"github.com/desertthunder/songdash/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive songs dashboard.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	offline := cmd.Bool("offline")
	svc, closeSvc, err := r.service(offline)
	if err != nil {
		return err
	}
	defer closeSvc()

	opts := ui.Options{}
	if !offline {
		if db, closeDB, err := r.openDatabase(); err != nil {
			r.logger.Warn("cache sync disabled", "error", err)
		} else {
			defer closeDB()
			opts.Engine = r.newEngine(db)
		}
	}

	model := ui.NewModel(ctx, r.newDashboard(svc), opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
