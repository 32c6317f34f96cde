package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"
)

// Charts fetches the full list and prints the three chart datasets.
func (r *Runner) Charts(ctx context.Context, cmd *cli.Command) error {
	d := r.newDashboard(r.songs)
	if err := d.Load(ctx); err != nil {
		return err
	}

	charts := d.Charts()
	if cmd.Bool("json") {
		return r.writeJSON(charts, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Danceability vs Tempo")
	for _, p := range charts.Scatter {
		r.writePlain("%-32.32s  %5.3f  %7.2f BPM\n", p.Title, p.X, p.Y)
	}

	r.writePlainln("")
	r.writePlainHeader("Duration (seconds)")
	peak := 0
	for _, b := range charts.Histogram {
		peak = max(peak, b.Count)
	}
	for _, b := range charts.Histogram {
		r.writePlain("%-14s %4d %s\n", b.Label, b.Count, bar(b.Count, peak, 30))
	}

	r.writePlainln("")
	r.writePlainHeader("Acousticness and Tempo/100")
	for _, b := range charts.Bars {
		r.writePlain("%-24.24s  %5.3f  %5.2f\n", b.Title, b.Acousticness, b.Tempo)
	}
	return nil
}

// bar draws n scaled against peak into at most width cells.
func bar(n, peak, width int) string {
	if peak <= 0 || n <= 0 {
		return ""
	}
	return strings.Repeat("█", max(1, n*width/peak))
}
