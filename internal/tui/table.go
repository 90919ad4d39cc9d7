package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// minColWidth is the narrowest a column is allowed to shrink to.
const minColWidth = 4

// columnDef describes a single column in a table.
type columnDef struct {
	Title string
	Width int
	Align string // "left", "right"
}

// tableModel is the generic base for paginated, searchable tables with a
// row cursor.
type tableModel struct {
	columns   []columnDef
	page      int // 0-indexed
	pageSize  int // default 10
	cursor    int // row index within the current page
	search    string
	searching bool
	input     textinput.Model
	focused   bool
}

// newTableModel initialises a tableModel with sensible defaults.
func newTableModel(cols []columnDef) tableModel {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 80
	return tableModel{
		columns:  cols,
		pageSize: 10,
		input:    ti,
	}
}

// Update handles keyboard input for cursor movement, pagination, and search.
func (t tableModel) Update(msg tea.Msg) (tableModel, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.searching {
			switch {
			case key.Matches(msg, keys.Escape):
				t.searching = false
				t.input.Blur()
				if t.input.Value() == "" {
					t.search = ""
				}
				return t, nil
			case msg.Type == tea.KeyEnter:
				t.search = t.input.Value()
				t.searching = false
				t.input.Blur()
				t.page = 0
				t.cursor = 0
				return t, nil
			default:
				var cmd tea.Cmd
				t.input, cmd = t.input.Update(msg)
				return t, cmd
			}
		}

		switch {
		case key.Matches(msg, keys.Search):
			t.searching = true
			t.input.SetValue(t.search)
			t.input.Focus()
			return t, textinput.Blink
		case key.Matches(msg, keys.Escape):
			t.search = ""
			t.input.SetValue("")
			t.page = 0
			t.cursor = 0
			return t, nil
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
			return t, nil
		case key.Matches(msg, keys.Down):
			t.cursor++ // clamped by the owner, which knows the row count
			return t, nil
		case key.Matches(msg, keys.PrevPage):
			if t.page > 0 {
				t.page--
			}
			t.cursor = 0
			return t, nil
		case key.Matches(msg, keys.NextPage):
			t.page++
			t.cursor = 0
			return t, nil
		}
	}
	return t, nil
}

// pageCount returns the total number of pages for totalRows rows at pageSize rows per page.
// Always at least 1.
func pageCount(totalRows, pageSize int) int {
	if totalRows == 0 || pageSize <= 0 {
		return 1
	}
	c := totalRows / pageSize
	if totalRows%pageSize != 0 {
		c++
	}
	return c
}

// currentPageIndices returns the slice of row indices visible on the current page.
func currentPageIndices(allIndices []int, page, pageSize int) []int {
	if pageSize <= 0 || len(allIndices) == 0 {
		return allIndices
	}
	start := page * pageSize
	if start >= len(allIndices) {
		start = 0
	}
	end := start + pageSize
	if end > len(allIndices) {
		end = len(allIndices)
	}
	return allIndices[start:end]
}

// clampPage ensures the page index stays within valid bounds given the total
// number of rows and the configured pageSize.
func (t *tableModel) clampPage(totalRows int) {
	pc := pageCount(totalRows, t.pageSize)
	if t.page >= pc {
		t.page = pc - 1
	}
	if t.page < 0 {
		t.page = 0
	}
}

// clampCursor keeps the cursor within [0, pageRows-1].
func (t *tableModel) clampCursor(pageRows int) {
	if pageRows <= 0 || t.cursor < 0 {
		t.cursor = 0
		return
	}
	if t.cursor >= pageRows {
		t.cursor = pageRows - 1
	}
}

// currentPageRowCount returns how many rows the current page shows.
func (t *tableModel) currentPageRowCount(totalRows int) int {
	if totalRows == 0 {
		return 0
	}
	if t.pageSize <= 0 {
		return totalRows
	}
	start := t.page * t.pageSize
	if start >= totalRows {
		return 0
	}
	return min(t.pageSize, totalRows-start)
}

// columnWidths distributes available width across columns in proportion to
// their preferred widths. The last column takes the remainder. Non-positive
// available returns the preferred widths unchanged.
func columnWidths(available int, defs []columnDef) []int {
	out := make([]int, len(defs))
	if len(defs) == 0 {
		return out
	}
	if available <= 0 {
		for i, d := range defs {
			out[i] = d.Width
		}
		return out
	}

	total := 0
	for _, d := range defs {
		total += d.Width
	}
	if total <= 0 {
		total = len(defs)
	}

	used := 0
	for i, d := range defs {
		var w int
		if i == len(defs)-1 {
			w = available - used
		} else {
			w = available * d.Width / total
		}
		if w < minColWidth {
			w = minColWidth
		}
		out[i] = w
		used += w
	}
	return out
}

// truncateName shortens s to at most maxWidth terminal cells, ending in "..."
// when there is room for it.
func truncateName(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// sanitize strips terminal escape sequences and control characters so
// upstream strings cannot move the cursor or restyle the screen.
func sanitize(s string) string {
	var sb strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == 0x1b {
			i = skipEscape(rs, i)
			continue
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// skipEscape returns the index of the last rune of the escape sequence
// starting at rs[i] (an ESC).
func skipEscape(rs []rune, i int) int {
	if i+1 >= len(rs) {
		return i
	}
	switch rs[i+1] {
	case '[': // CSI: parameters up to a final byte in 0x40-0x7E
		for j := i + 2; j < len(rs); j++ {
			if rs[j] >= 0x40 && rs[j] <= 0x7e {
				return j
			}
		}
		return len(rs) - 1
	case ']': // OSC: terminated by BEL or ESC \
		for j := i + 2; j < len(rs); j++ {
			if rs[j] == 0x07 {
				return j
			}
			if rs[j] == 0x1b && j+1 < len(rs) && rs[j+1] == '\\' {
				return j + 1
			}
		}
		return len(rs) - 1
	default:
		return i + 1
	}
}
