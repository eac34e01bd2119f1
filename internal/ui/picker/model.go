package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/flavono123/nestform/internal/schema"
	"github.com/flavono123/nestform/internal/ui/event"
	"github.com/flavono123/nestform/internal/ui/theme"
)

const PICKER_WIDTH = 30

// Model is a popup that picks a field type by fuzzy search.
type Model struct {
	keys    keyMap
	visible bool
	style   lipgloss.Style
	items   items
	input   textinput.Model
	cursor  int
}

func NewModel() *Model {
	var all items
	for _, t := range schema.FieldTypes {
		all = append(all, item{t})
	}

	ti := textinput.New()
	ti.Placeholder = "Select type..."
	ti.Prompt = "> "
	ti.Width = PICKER_WIDTH - 4

	return &Model{
		keys:  newKeyMap(),
		style: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(theme.Blue()),
		items: all,
		input: ti,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ShowMsg:
		m.visible = true
		m.reset()
		cmds = append(cmds, m.input.Focus())
	case HideMsg:
		m.visible = false
		m.reset()
		m.input.Blur()
	case tea.KeyMsg:
		if !m.visible {
			break
		}
		filtered := m.filtered()
		switch {
		case key.Matches(msg, m.keys.up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.down):
			if m.cursor < len(filtered)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.pick):
			if len(filtered) == 0 {
				break
			}
			picked := filtered[m.cursor].FieldType
			cmds = append(cmds,
				func() tea.Msg { return event.PickTypeMsg{Type: picked} },
				Hide,
			)
		case key.Matches(msg, m.keys.hide):
			cmds = append(cmds, Hide)
		default:
			prev := m.input.Value()
			im, iCmd := m.input.Update(msg)
			m.input = im
			cmds = append(cmds, iCmd)
			if prev != m.input.Value() {
				m.cursor = 0
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	inputStyle := lipgloss.NewStyle().Margin(0, 0, 1, 0)
	return m.style.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			inputStyle.Render(m.input.View()),
			m.renderItems(),
		),
	)
}

func (m *Model) Visible() bool {
	return m.visible
}

// Cursored returns the type under the cursor, if any matches the query.
func (m *Model) Cursored() (schema.FieldType, bool) {
	filtered := m.filtered()
	if len(filtered) == 0 {
		return schema.TypeUnset, false
	}
	return filtered[m.cursor].FieldType, true
}

func (m *Model) reset() {
	m.input.Reset()
	m.cursor = 0
}

func (m *Model) filtered() items {
	return m.items.filter(m.input.Value())
}

func (m *Model) renderItems() string {
	filtered := m.filtered()
	if len(filtered) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Overlay0()).Render("No matching type.")
	}

	var rows []string
	for i, it := range filtered {
		rows = append(rows, it.render(PICKER_WIDTH-2, i == m.cursor))
	}
	return strings.Join(rows, "\n")
}

// subcomponents(not model)
type item struct {
	schema.FieldType
}

type items []item

func (i item) render(width int, hovered bool) string {
	style := lipgloss.NewStyle().
		Width(width).
		Padding(0, 0, 0, 1).
		Foreground(theme.TypeColor(i.String()))
	if hovered {
		style = style.Background(theme.Surface1())
	}
	return style.Render(i.String())
}

func (is items) filter(query string) items {
	if query == "" {
		return is
	}

	var names []string
	for _, it := range is {
		names = append(names, it.String())
	}

	var result items
	for _, match := range fuzzy.Find(query, names) {
		result = append(result, is[match.Index])
	}
	return result
}

func (m *Model) KeyMap() help.KeyMap {
	return m.keys
}
