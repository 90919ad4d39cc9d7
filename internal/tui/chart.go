package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/ctrack/internal/engine"
	"github.com/dm/ctrack/internal/format"
	"github.com/dm/ctrack/internal/model"
)

// defaultChartRows is the plot height in terminal rows.
const defaultChartRows = 8

// renderChart renders the daily-delta area chart for the active metric.
// Returns "" before the first snapshot.
func renderChart(app *App, width int) string {
	if app.current == nil {
		return ""
	}

	title := StyleTitle.Render(fmt.Sprintf("%s new %s", app.selection.Label(), app.metric))
	body := plotDeltas(app.chart, width-4, defaultChartRows, metricColor(app.metric))

	parts := []string{title, body}
	if app.current.SeriesErr != nil {
		parts = append(parts, StyleDim.Render(truncateName("history unavailable: "+classifyError(app.current.SeriesErr), width-4)))
	} else if n := countMissing(app.chartErr); n > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d day(s) without %s data skipped", n, app.metric)))
	} else if app.chartErr != nil {
		parts = append(parts, StyleError.Render(truncateName(app.chartErr.Error(), width-4)))
	}

	return StylePanel.Width(width - 2).Render(strings.Join(parts, "\n"))
}

// plotDeltas draws points as a filled area chart of rows lines within width
// cells, including the y-axis labels, the date range and the latest delta.
// When there are more points than columns the most recent ones are shown.
func plotDeltas(points []model.ChartPoint, width, rows int, color lipgloss.Color) string {
	if len(points) == 0 {
		return StyleDim.Render("not enough history to chart")
	}
	if rows <= 0 {
		rows = 1
	}

	values := engine.DeltaValues(points)
	lo := min(slices.Min(values), 0)
	hi := max(slices.Max(values), 0)

	hiLabel := format.FormatCompact(int64(hi))
	loLabel := format.FormatCompact(int64(lo))
	axisW := max(lipgloss.Width(hiLabel), lipgloss.Width(loLabel))

	plotW := max(width-axisW-1, 1)
	if len(values) > plotW {
		values = values[len(values)-plotW:]
		points = points[len(points)-plotW:]
	}

	span := hi - lo
	levels := make([]int, len(values)) // height of each column in eighths
	for i, v := range values {
		if span > 0 {
			levels[i] = int((v - lo) / span * float64(rows*8))
		}
	}

	style := lipgloss.NewStyle().Foreground(color)
	lines := make([]string, 0, rows+2)
	for r := 0; r < rows; r++ {
		label := strings.Repeat(" ", axisW)
		switch r {
		case 0:
			label = padLeft(hiLabel, axisW)
		case rows - 1:
			label = padLeft(loLabel, axisW)
		}

		floor := (rows - 1 - r) * 8
		var sb strings.Builder
		for _, lvl := range levels {
			fill := lvl - floor
			switch {
			case fill >= 8:
				sb.WriteRune('█')
			case fill <= 0:
				if r == rows-1 {
					sb.WriteRune('▁')
				} else {
					sb.WriteRune(' ')
				}
			default:
				sb.WriteRune(sparkBlocks[fill-1])
			}
		}
		lines = append(lines, StyleDim.Render(label)+"│"+style.Render(sb.String()))
	}

	first, last := points[0], points[len(points)-1]
	gap := max(len(points)-lipgloss.Width(first.X)-lipgloss.Width(last.X), 1)
	lines = append(lines, strings.Repeat(" ", axisW+1)+StyleDim.Render(first.X+strings.Repeat(" ", gap)+last.X))
	lines = append(lines, fmt.Sprintf("%s %s", StyleDim.Render("latest "+last.X), style.Bold(true).Render(format.FormatSigned(last.Y))))

	return strings.Join(lines, "\n")
}

// countMissing counts the MissingDataPointErrors in a (possibly joined) error.
func countMissing(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		n := 0
		for _, e := range joined.Unwrap() {
			n += countMissing(e)
		}
		return n
	}
	var mp *model.MissingDataPointError
	if errors.As(err, &mp) {
		return 1
	}
	return 0
}

// padLeft right-aligns s within width display cells.
func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
