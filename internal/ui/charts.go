package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/songdash/internal/formatter"
)

const (
	barWidth     = 30
	plotWidth    = 48
	plotHeight   = 12
	labelColumns = 20
)

// renderCharts draws the three chart datasets as text.
func renderCharts(c formatter.Charts) string {
	var b strings.Builder

	b.WriteString(styles.header.Render("Danceability vs Tempo"))
	b.WriteString("\n")
	b.WriteString(scatterPlot(c.Scatter))

	b.WriteString("\n")
	b.WriteString(styles.header.Render("Duration (seconds)"))
	b.WriteString("\n")
	b.WriteString(histogram(c.Histogram))

	b.WriteString("\n")
	b.WriteString(styles.header.Render("Acousticness and Tempo/100"))
	b.WriteString("\n")
	b.WriteString(barChart(c.Bars))
	return b.String()
}

// scatterPlot places each point on a fixed grid, scaled to the data's range.
func scatterPlot(points []formatter.ScatterPoint) string {
	if len(points) == 0 {
		return styles.help.Render("no songs") + "\n"
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	grid := make([][]rune, plotHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}
	for _, p := range points {
		col := scale(p.X, minX, maxX, plotWidth-1)
		row := plotHeight - 1 - scale(p.Y, minY, maxY, plotHeight-1)
		grid[row][col] = '•'
	}

	var b strings.Builder
	for i, line := range grid {
		axis := "      "
		switch i {
		case 0:
			axis = fmt.Sprintf("%6.1f", maxY)
		case plotHeight - 1:
			axis = fmt.Sprintf("%6.1f", minY)
		}
		fmt.Fprintf(&b, "%s │%s\n", axis, styles.bar.Render(string(line)))
	}
	fmt.Fprintf(&b, "       └%s\n", strings.Repeat("─", plotWidth))
	fmt.Fprintf(&b, "        %-*.2f%*.2f\n", plotWidth/2, minX, plotWidth/2, maxX)
	return b.String()
}

// scale maps v in [lo, hi] to 0..n.
func scale(v, lo, hi float64, n int) int {
	if hi <= lo {
		return 0
	}
	i := int((v - lo) / (hi - lo) * float64(n))
	return max(0, min(n, i))
}

func histogram(bins []formatter.HistogramBin) string {
	if len(bins) == 0 {
		return styles.help.Render("no songs") + "\n"
	}

	peak := 0
	for _, bin := range bins {
		peak = max(peak, bin.Count)
	}

	var b strings.Builder
	for _, bin := range bins {
		w := 0
		if peak > 0 {
			w = bin.Count * barWidth / peak
		}
		fmt.Fprintf(&b, "%s %s %d\n", pad(bin.Label, 11), styles.bar.Render(strings.Repeat("█", w)), bin.Count)
	}
	return b.String()
}

func barChart(bars []formatter.Bar) string {
	if len(bars) == 0 {
		return styles.help.Render("no songs") + "\n"
	}

	peak := 0.0
	for _, bar := range bars {
		peak = max(peak, bar.Acousticness, bar.Tempo)
	}

	var b strings.Builder
	for _, bar := range bars {
		fmt.Fprintf(&b, "%s %s %.2f\n", pad(bar.Title, labelColumns), styles.bar.Render(strings.Repeat("█", width(bar.Acousticness, peak))), bar.Acousticness)
		fmt.Fprintf(&b, "%s %s %.2f\n", pad("", labelColumns), styles.warn.Render(strings.Repeat("▒", width(bar.Tempo, peak))), bar.Tempo)
	}
	return b.String()
}

func width(v, peak float64) int {
	if peak <= 0 {
		return 0
	}
	return max(0, int(v/peak*barWidth))
}
