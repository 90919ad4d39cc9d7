package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dm/ctrack/internal/format"
	"github.com/dm/ctrack/internal/model"
)

// countryColumns defines the columns of the ranked country table.
var countryColumns = []columnDef{
	{Title: "#", Width: 4, Align: "right"},
	{Title: "Country", Width: 24, Align: "left"},
	{Title: "Cases", Width: 14, Align: "right"},
}

// CountryTableModel is the ranked, searchable, paginated country table.
// Rows keep the rank order they were given; search only filters.
type CountryTableModel struct {
	tableModel
	rows []model.RankedCountryRow
}

// NewCountryTable creates an empty country table.
func NewCountryTable() CountryTableModel {
	return CountryTableModel{tableModel: newTableModel(countryColumns)}
}

// SetData replaces the rows, keeping the cursor on the same country when it
// is still present on the current page.
func (m *CountryTableModel) SetData(rows []model.RankedCountryRow) {
	prev, hadPrev := m.SelectedRow()
	m.rows = rows

	visible := m.visibleIndices()
	m.clampPage(len(visible))
	if hadPrev {
		for i, idx := range currentPageIndices(visible, m.page, m.pageSize) {
			if rows[idx].CountryName == prev.CountryName {
				m.cursor = i
				break
			}
		}
	}
	m.clampCursor(m.currentPageRowCount(len(visible)))
}

// Update handles keys for the table and keeps page and cursor in range.
func (m CountryTableModel) Update(msg tea.Msg) (CountryTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.tableModel, cmd = m.tableModel.Update(msg)
	total := len(m.visibleIndices())
	m.clampPage(total)
	m.clampCursor(m.currentPageRowCount(total))
	return m, cmd
}

// SelectedRow returns the row under the cursor.
func (m CountryTableModel) SelectedRow() (model.RankedCountryRow, bool) {
	page := currentPageIndices(m.visibleIndices(), m.page, m.pageSize)
	if m.cursor < 0 || m.cursor >= len(page) {
		return model.RankedCountryRow{}, false
	}
	return m.rows[page[m.cursor]], true
}

// visibleIndices returns indices into m.rows matching the search filter, in rank order.
func (m CountryTableModel) visibleIndices() []int {
	return filterCountryRows(m.rows, m.search)
}

// filterCountryRows returns the indices of rows whose name or ISO code
// contains search, case-insensitively. An empty search matches every row.
func filterCountryRows(rows []model.RankedCountryRow, search string) []int {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]int, 0, len(rows))
	for i, r := range rows {
		if needle == "" ||
			strings.Contains(strings.ToLower(r.CountryName), needle) ||
			strings.Contains(strings.ToLower(r.ISOCode), needle) {
			out = append(out, i)
		}
	}
	return out
}

// View renders the table at the given width.
func (m CountryTableModel) View(width int) string {
	visible := m.visibleIndices()
	page := currentPageIndices(visible, m.page, m.pageSize)

	inner := width - 4 // panel border and padding
	if inner < 20 {
		inner = 20
	}
	widths := columnWidths(inner-len(m.columns)-1, m.columns)

	headers := make([]string, len(m.columns))
	for i, c := range m.columns {
		headers[i] = c.Title
	}

	// Rank is the position in the full ranking, not in the filtered view.
	cells := make([][]string, 0, len(page))
	for _, idx := range page {
		r := m.rows[idx]
		cells = append(cells, []string{
			strconv.Itoa(idx + 1),
			truncateName(sanitize(r.CountryName), widths[1]),
			format.FormatNumber(r.Cases),
		})
	}

	t := table.New().
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = StyleTableHeader
			case m.focused && row == m.cursor:
				s = StyleTableCursor
			case row%2 == 1:
				s = StyleTableRowAlt
			default:
				s = StyleTableRow
			}
			s = s.Width(widths[col])
			if m.columns[col].Align == "right" {
				s = s.Align(lipgloss.Right)
			}
			return s
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	var sb strings.Builder
	title := "Live Cases by Country"
	if m.focused {
		title = StyleTitle.Render(title)
	} else {
		title = StyleDim.Render(title)
	}
	sb.WriteString(title + "\n")

	switch {
	case m.searching:
		sb.WriteString("/" + m.input.View() + "\n")
	case m.search != "":
		sb.WriteString(StyleDim.Render(fmt.Sprintf("filter: %q (esc to clear)", m.search)) + "\n")
	}

	if len(m.rows) == 0 {
		sb.WriteString(StyleDim.Render("no countries"))
	} else if len(visible) == 0 {
		sb.WriteString(StyleDim.Render("no countries match"))
	} else {
		sb.WriteString(t.Render())
		sb.WriteString("\n" + StyleDim.Render(fmt.Sprintf("page %d/%d  %d countries",
			m.page+1, pageCount(len(visible), m.pageSize), len(visible))))
	}

	return StylePanel.Width(width - 2).Render(sb.String())
}
