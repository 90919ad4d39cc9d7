package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/ctrack/internal/format"
	"github.com/dm/ctrack/internal/model"
)

// renderOverview renders one info box per metric for the current selection.
// Wide terminals (>= 72 cols): boxes side by side. Narrow: stacked.
// Returns empty string if no snapshot is available yet.
func renderOverview(app *App) string {
	if app.current == nil {
		return ""
	}

	width := app.width
	if width <= 0 {
		width = 80
	}
	narrowMode := width < 72

	boxWidth := width/len(model.Metrics) - 2
	if narrowMode {
		boxWidth = width - 2
	}
	boxWidth = max(boxWidth, 16)

	boxes := make([]string, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		boxes = append(boxes, renderInfoBox(app, m, boxWidth))
	}

	var row string
	if narrowMode {
		row = lipgloss.JoinVertical(lipgloss.Left, boxes...)
	} else {
		row = lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	}
	if d := renderDetail(app); d != "" {
		return lipgloss.JoinVertical(lipgloss.Left, row, d)
	}
	return row
}

// renderDetail describes the selected country: name, ISO code and the
// coordinates the API centers it on. Worldwide has no detail line.
func renderDetail(app *App) string {
	sel := app.current.Selection
	if sel.IsWorldwide() {
		return ""
	}
	sum := app.current.Summary
	name := sanitize(sum.Name)
	if sel.ISOCode != "" {
		name += " (" + sanitize(sel.ISOCode) + ")"
	}
	return StyleDim.Render(fmt.Sprintf("%s  lat %.2f  long %.2f", name, sum.Lat, sum.Long))
}

// renderInfoBox renders today's and the cumulative count of m, with a
// sparkline of today's count across polls. The active metric is highlighted.
func renderInfoBox(app *App, m model.Metric, width int) string {
	sum := app.current.Summary
	color := metricColor(m)

	title := metricTitle(m)
	style := StyleInfoBox.Width(width - 2)
	if m == app.metric {
		style = style.BorderForeground(color)
		title = lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
	} else {
		title = StyleDim.Render(title)
	}

	today := lipgloss.NewStyle().Bold(true).Foreground(color).Render("+" + format.FormatStat(sum.Today(m)))
	total := StyleDim.Render(fmt.Sprintf("%s Total", format.FormatStat(sum.Total(m))))
	spark := RenderSparkline(app.history.Values(m), max(width-4, 1), color)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, today, total, spark))
}
