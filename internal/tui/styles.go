package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/ctrack/internal/model"
)

// Color constants.
var (
	colorGreen = lipgloss.Color("#10b981")
	colorRed   = lipgloss.Color("#ef4444")
	colorGray  = lipgloss.Color("#6b7280")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorCyan  = lipgloss.Color("#06b6d4")
	colorWhite = lipgloss.Color("#f8fafc")
	colorDark  = lipgloss.Color("#1e293b")
	colorAlt   = lipgloss.Color("#0f172a")
	colorRowFg = lipgloss.Color("#cbd5e1")
)

// StyleHeader is the full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleInfoBox is the card for one metric; the active metric gets a colored border.
var StyleInfoBox = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorGray).
	Padding(0, 1)

// StylePanel frames the chart and the country table.
var StylePanel = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorGray).
	Padding(0, 1)

// Table styles.
var (
	StyleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(colorGray)

	StyleTableRow = lipgloss.NewStyle().
			Foreground(colorWhite)

	StyleTableRowAlt = lipgloss.NewStyle().
				Foreground(colorRowFg)

	StyleTableCursor = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorDark).
				Background(colorCyan)
)

// Utility styles.
var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	StyleOK    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

// metricColor returns the accent color of m: green for recovered, red otherwise.
func metricColor(m model.Metric) lipgloss.Color {
	if m == model.MetricRecovered {
		return colorGreen
	}
	return colorRed
}

// metricTitle returns the info-box title of m.
func metricTitle(m model.Metric) string {
	switch m {
	case model.MetricCases:
		return "Coronavirus Cases"
	case model.MetricRecovered:
		return "Recovered"
	case model.MetricDeaths:
		return "Deaths"
	}
	return string(m)
}
