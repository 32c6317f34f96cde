package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/songdash/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve exposes GET /songs.csv and GET /charts until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port > 0 {
		cfg.Port = port
	}

	svc, closeSvc, err := r.service(cmd.Bool("offline"))
	if err != nil {
		return err
	}
	defer closeSvc()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := server.NewExportRouter(svc, r.config.Dashboard.ListLimit, r.logger)
	r.writePlain("Serving songs.csv on http://%s/songs.csv\n", cfg.Addr())

	if err := server.ListenAndServe(ctx, cfg.Addr(), router, r.logger); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
