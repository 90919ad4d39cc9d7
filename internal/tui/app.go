package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/dm/ctrack/internal/client"
	"github.com/dm/ctrack/internal/engine"
	"github.com/dm/ctrack/internal/model"
)

type connState int

const (
	stateConnected    connState = iota
	stateDisconnected connState = iota
)

type focusArea int

const (
	focusTable focusArea = iota
	focusPicker
)

// sideBySideWidth is the terminal width from which chart and table share a row.
const sideBySideWidth = 110

// App is the root Bubble Tea model for ctrack.
type App struct {
	client       client.StatsClient
	pollInterval time.Duration
	lastDays     int
	log          zerolog.Logger

	// What is being viewed
	selection model.Selection
	metric    model.Metric

	// Poll state. seq is the sequence number of the latest issued request;
	// only results carrying it are applied.
	seq         uint64
	fetching    bool
	cancelFetch context.CancelFunc
	current     *model.Snapshot
	chart       []model.ChartPoint
	chartErr    error
	history     *model.DeltaHistory

	// Connection state
	connState        connState
	consecutiveFails int
	lastError        error
	lastUpdated      time.Time
	nextRetryAt      time.Time
	countdownGen     uint64

	// Layout
	width, height int

	// UI state
	table    CountryTableModel
	picker   pickerModel
	focus    focusArea
	showHelp bool
}

// NewApp creates a new App polling c every interval for the last lastDays
// days of history. The initial view is worldwide cases.
func NewApp(c client.StatsClient, interval time.Duration, lastDays int, log zerolog.Logger) *App {
	table := NewCountryTable()
	table.focused = true
	return &App{
		client:       c,
		pollInterval: interval,
		lastDays:     lastDays,
		log:          log,
		selection:    model.Worldwide,
		metric:       model.MetricCases,
		history:      model.NewDeltaHistory(0),
		connState:    stateDisconnected,
		table:        table,
		picker:       newPicker(),
	}
}

// Init implements tea.Model. Starts the first fetch immediately on launch.
func (app *App) Init() tea.Cmd {
	return app.startFetch()
}

// Update implements tea.Model. It is the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case SnapshotMsg:
		if msg.Seq != app.seq {
			app.log.Debug().Uint64("seq", msg.Seq).Uint64("latest", app.seq).Msg("discarding stale snapshot")
			return app, nil
		}
		app.applySnapshot(msg.Snapshot)
		return app, tickCmd(app.pollInterval, app.seq)

	case FetchErrorMsg:
		if msg.Seq != app.seq {
			app.log.Debug().Uint64("seq", msg.Seq).Uint64("latest", app.seq).Err(msg.Err).Msg("discarding stale fetch error")
			return app, nil
		}
		app.fetching = false
		app.consecutiveFails++
		app.lastError = msg.Err
		app.connState = stateDisconnected
		backoff := backoffDuration(app.consecutiveFails)
		app.nextRetryAt = time.Now().Add(backoff)
		app.countdownGen++
		app.log.Error().Err(msg.Err).
			Str("country", app.selection.Query()).
			Int("fails", app.consecutiveFails).
			Dur("backoff", backoff).
			Msg("fetch failed")
		return app, tea.Batch(tickCmd(backoff, app.seq), countdownCmd(app.countdownGen))

	case CountdownTickMsg:
		if msg.Gen != app.countdownGen || app.connState != stateDisconnected {
			return app, nil
		}
		return app, countdownCmd(msg.Gen)

	case TickMsg:
		if msg.Seq != app.seq || app.fetching {
			return app, nil
		}
		return app, app.startFetch()

	case tea.KeyMsg:
		return app.handleKey(msg)
	}

	return app, nil
}

// handleKey routes a key press. The picker and an active table search
// capture typed characters before global bindings apply.
func (app *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return app, tea.Quit
	}

	if app.focus == focusPicker {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyTab:
			app.focusTable()
			return app, nil
		}
		var cmd tea.Cmd
		var chosen *model.SelectOption
		app.picker, cmd, chosen = app.picker.Update(msg)
		if chosen == nil {
			return app, cmd
		}
		app.focusTable()
		if chosen.ID == worldwideOptionID {
			return app, app.selectRegion(model.Worldwide)
		}
		return app, app.selectRegion(model.Selection{ISOCode: chosen.ISOCode, Name: chosen.Name})
	}

	if app.table.searching {
		var cmd tea.Cmd
		app.table, cmd = app.table.Update(msg)
		return app, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return app, tea.Quit
	case key.Matches(msg, keys.Refresh):
		if app.fetching {
			return app, nil
		}
		return app, app.startFetch()
	case key.Matches(msg, keys.Help):
		app.showHelp = !app.showHelp
		return app, nil
	case key.Matches(msg, keys.Tab):
		app.focus = focusPicker
		app.table.focused = false
		return app, app.picker.Focus()
	case key.Matches(msg, keys.Worldwide):
		return app, app.selectRegion(model.Worldwide)
	case key.Matches(msg, keys.MetricCases):
		app.setMetric(model.MetricCases)
		return app, nil
	case key.Matches(msg, keys.MetricRecovered):
		app.setMetric(model.MetricRecovered)
		return app, nil
	case key.Matches(msg, keys.MetricDeaths):
		app.setMetric(model.MetricDeaths)
		return app, nil
	case key.Matches(msg, keys.NextMetric):
		app.setMetric(nextMetric(app.metric))
		return app, nil
	case key.Matches(msg, keys.Select):
		row, ok := app.table.SelectedRow()
		if !ok {
			return app, nil
		}
		return app, app.selectRegion(model.Selection{ISOCode: row.ISOCode, Name: row.CountryName})
	}

	var cmd tea.Cmd
	app.table, cmd = app.table.Update(msg)
	return app, cmd
}

func (app *App) focusTable() {
	app.focus = focusTable
	app.picker.Blur()
	app.table.focused = true
}

// applySnapshot installs the latest poll result and derives chart and table.
func (app *App) applySnapshot(snap *model.Snapshot) {
	app.fetching = false
	app.cancelFetch = nil

	if app.current == nil || app.current.Selection != snap.Selection {
		app.history.Clear()
	}
	app.history.Push(model.PointFromSummary(snap.Summary, snap.FetchedAt))

	app.current = snap
	if snap.SeriesErr != nil {
		app.log.Warn().Err(snap.SeriesErr).
			Str("country", snap.Selection.Query()).
			Uint64("seq", app.seq).
			Msg("history unavailable")
	}
	app.rebuildChart()
	app.table.SetData(engine.Rank(snap.Countries))
	app.picker.SetOptions(engine.ToSelectOptions(snap.Countries))

	app.consecutiveFails = 0
	app.lastError = nil
	app.nextRetryAt = time.Time{}
	app.connState = stateConnected
	app.lastUpdated = snap.FetchedAt
}

// setMetric switches the charted metric, recomputing deltas from the series
// already held. No fetch is issued.
func (app *App) setMetric(m model.Metric) {
	if m == app.metric {
		return
	}
	app.metric = m
	app.rebuildChart()
}

func (app *App) rebuildChart() {
	if app.current == nil {
		app.chart, app.chartErr = nil, nil
		return
	}
	if app.current.SeriesErr != nil {
		app.chart, app.chartErr = nil, app.current.SeriesErr
		return
	}
	app.chart, app.chartErr = engine.BuildDeltas(app.current.Series, app.metric)
	if app.chartErr != nil {
		app.log.Warn().Err(app.chartErr).
			Str("country", app.current.Selection.Query()).
			Str("metric", string(app.metric)).
			Msg("chart points dropped")
	}
}

// selectRegion changes the viewed region and fetches it immediately, even if
// a fetch is in flight. The in-flight result becomes stale.
func (app *App) selectRegion(sel model.Selection) tea.Cmd {
	if sel == app.selection {
		return nil
	}
	app.log.Info().Str("country", sel.Query()).Str("name", sel.Label()).Msg("selection changed")
	app.selection = sel
	return app.startFetch()
}

// startFetch issues a new request under the next sequence number and cancels
// the one it supersedes.
func (app *App) startFetch() tea.Cmd {
	if app.cancelFetch != nil {
		app.cancelFetch()
	}
	app.seq++
	app.fetching = true

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout(app.pollInterval))
	app.cancelFetch = cancel
	app.log.Debug().Uint64("seq", app.seq).Str("country", app.selection.Query()).Msg("fetch issued")
	return fetchCmd(ctx, cancel, app.client, app.selection, app.lastDays, app.seq)
}

// View implements tea.Model. Renders the full TUI.
func (app *App) View() string {
	var parts []string

	if h := renderHeader(app); h != "" {
		parts = append(parts, h)
	}
	if o := renderOverview(app); o != "" {
		parts = append(parts, o)
	}
	if b := renderBody(app); b != "" {
		parts = append(parts, b)
	}
	parts = append(parts, renderFooter(app))

	return strings.Join(parts, "\n")
}

// renderBody lays out the chart and the table (or the picker when it has
// focus): side by side on wide terminals, stacked otherwise.
func renderBody(app *App) string {
	if app.current == nil {
		return ""
	}
	width := app.width
	if width <= 0 {
		width = 80
	}

	if width >= sideBySideWidth {
		half := width / 2
		return lipgloss.JoinHorizontal(lipgloss.Top, renderSidePanel(app, half), renderChart(app, width-half))
	}
	return lipgloss.JoinVertical(lipgloss.Left, renderChart(app, width), renderSidePanel(app, width))
}

func renderSidePanel(app *App, width int) string {
	if app.focus == focusPicker {
		return app.picker.View(width)
	}
	return app.table.View(width)
}

// nextMetric cycles through model.Metrics in display order.
func nextMetric(m model.Metric) model.Metric {
	for i, x := range model.Metrics {
		if x == m {
			return model.Metrics[(i+1)%len(model.Metrics)]
		}
	}
	return model.MetricCases
}

// tickCmd schedules the next poll after duration d for request seq.
func tickCmd(d time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{Seq: seq}
	})
}

// countdownCmd schedules the next one-second countdown refresh.
func countdownCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return CountdownTickMsg{Gen: gen}
	})
}

// fetchTimeout bounds one poll to just under the poll interval.
func fetchTimeout(interval time.Duration) time.Duration {
	timeout := interval - 500*time.Millisecond
	if timeout < 500*time.Millisecond {
		timeout = 500 * time.Millisecond
	}
	return timeout
}

// fetchCmd is a Bubble Tea command that fetches the dashboard for sel and
// returns a SnapshotMsg or FetchErrorMsg tagged with seq.
func fetchCmd(ctx context.Context, cancel context.CancelFunc, c client.StatsClient, sel model.Selection, lastDays int, seq uint64) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		snap, err := engine.FetchDashboard(ctx, c, sel, lastDays)
		if err != nil {
			return FetchErrorMsg{Seq: seq, Err: err}
		}
		return SnapshotMsg{Seq: seq, Snapshot: snap}
	}
}

// backoffDuration returns min(2^fails * time.Second, 60*time.Second).
// At fails=1: 2s, fails=2: 4s, fails=3: 8s, ..., fails>=6: 60s.
func backoffDuration(fails int) time.Duration {
	const maxBackoff = 60 * time.Second
	if fails <= 0 {
		return time.Second
	}
	if fails >= 6 {
		return maxBackoff
	}
	return time.Duration(1<<fails) * time.Second
}
