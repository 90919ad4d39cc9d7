package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/ctrack/internal/model"
)

// worldwideOptionID identifies the synthetic "Worldwide" entry at the top of
// the picker.
const worldwideOptionID = "worldwide"

// pickerModel is a type-to-filter country list. The cursor is tracked by
// option ID so it stays on the same entry while the filter narrows.
type pickerModel struct {
	options  []model.SelectOption
	input    textinput.Model
	cursorID string
	focused  bool
	height   int
}

func newPicker() pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type a country..."
	ti.CharLimit = 60
	return pickerModel{
		options:  []model.SelectOption{worldwideOption()},
		input:    ti,
		cursorID: worldwideOptionID,
		height:   8,
	}
}

func worldwideOption() model.SelectOption {
	return model.SelectOption{ID: worldwideOptionID, Name: model.Worldwide.Label()}
}

// SetOptions replaces the country options. IDs are regenerated every poll, so
// the cursor is carried over by country name.
func (p *pickerModel) SetOptions(opts []model.SelectOption) {
	var prevName string
	for _, o := range p.options {
		if o.ID == p.cursorID {
			prevName = o.Name
			break
		}
	}

	p.options = append([]model.SelectOption{worldwideOption()}, opts...)
	p.cursorID = worldwideOptionID
	for _, o := range p.options {
		if o.Name == prevName {
			p.cursorID = o.ID
			break
		}
	}
}

// Focus activates the text input.
func (p *pickerModel) Focus() tea.Cmd {
	p.focused = true
	return p.input.Focus()
}

// Blur deactivates the picker and clears the filter.
func (p *pickerModel) Blur() {
	p.focused = false
	p.input.Blur()
	p.input.SetValue("")
}

// filtered returns the options whose name or ISO code contains the typed filter.
func (p pickerModel) filtered() []model.SelectOption {
	needle := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if needle == "" {
		return p.options
	}
	out := make([]model.SelectOption, 0, len(p.options))
	for _, o := range p.options {
		if strings.Contains(strings.ToLower(o.Name), needle) ||
			strings.Contains(strings.ToLower(o.ISOCode), needle) {
			out = append(out, o)
		}
	}
	return out
}

// cursorIndex returns the position of the cursor in list, or 0 when the
// cursor entry was filtered out.
func (p pickerModel) cursorIndex(list []model.SelectOption) int {
	for i, o := range list {
		if o.ID == p.cursorID {
			return i
		}
	}
	return 0
}

// Update handles navigation and typing. The returned option is non-nil when
// the user confirmed a choice with enter.
func (p pickerModel) Update(msg tea.Msg) (pickerModel, tea.Cmd, *model.SelectOption) {
	if !p.focused {
		return p, nil, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, nil
	}

	list := p.filtered()
	idx := p.cursorIndex(list)

	switch km.Type {
	case tea.KeyUp:
		if idx > 0 {
			p.cursorID = list[idx-1].ID
		}
		return p, nil, nil
	case tea.KeyDown:
		if idx < len(list)-1 {
			p.cursorID = list[idx+1].ID
		}
		return p, nil, nil
	case tea.KeyEnter:
		if len(list) == 0 {
			return p, nil, nil
		}
		chosen := list[idx]
		return p, nil, &chosen
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	list = p.filtered()
	if len(list) > 0 {
		p.cursorID = list[p.cursorIndex(list)].ID
	}
	return p, cmd, nil
}

// View renders the filter input and a window of matching options around the cursor.
func (p pickerModel) View(width int) string {
	list := p.filtered()
	idx := p.cursorIndex(list)

	var sb strings.Builder
	sb.WriteString(StyleTitle.Foreground(colorBlue).Render("Select region") + "\n")
	sb.WriteString(p.input.View() + "\n")

	if len(list) == 0 {
		sb.WriteString(StyleDim.Render("no match"))
		return StylePanel.Width(width - 2).Render(sb.String())
	}

	start := 0
	if idx >= p.height {
		start = idx - p.height + 1
	}
	end := min(start+p.height, len(list))

	nameWidth := max(width-12, 8)
	for i := start; i < end; i++ {
		o := list[i]
		line := truncateName(sanitize(o.Name), nameWidth)
		if o.ISOCode != "" {
			line += StyleDim.Render(" " + o.ISOCode)
		}
		if i == idx {
			sb.WriteString(StyleTableCursor.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	sb.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d", idx+1, len(list))))

	return StylePanel.Width(width - 2).Render(sb.String())
}
