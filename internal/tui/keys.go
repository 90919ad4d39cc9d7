package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all key bindings for the TUI.
type keyMap struct {
	Quit            key.Binding
	Refresh         key.Binding
	Tab             key.Binding
	Search          key.Binding
	Escape          key.Binding
	Help            key.Binding
	Up              key.Binding
	Down            key.Binding
	Select          key.Binding
	Worldwide       key.Binding
	MetricCases     key.Binding
	MetricRecovered key.Binding
	MetricDeaths    key.Binding
	NextMetric      key.Binding
	PrevPage        key.Binding
	NextPage        key.Binding
}

// keys is the global key map.
var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh now"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "table/picker"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select country"),
	),
	Worldwide: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "worldwide"),
	),
	MetricCases: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cases"),
	),
	MetricRecovered: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "recovered"),
	),
	MetricDeaths: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "deaths"),
	),
	NextMetric: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "next metric"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next page"),
	),
}

// helpText is the full help string displayed in the footer when help is toggled on.
const helpText = "q: quit  r: refresh  c/v/d/m: metric  w: worldwide  enter: select  tab: table/picker  /: search  ←/→: page  ?: help"
