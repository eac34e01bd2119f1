package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/flavono123/nestform/internal/schema"
	"github.com/flavono123/nestform/internal/ui/event"
	"github.com/flavono123/nestform/internal/ui/picker"
	"github.com/flavono123/nestform/internal/ui/theme"
)

const (
	EDITOR_CURSOR_TOP = 0

	EDITOR_WIDTH_RATIO          = 0.5
	EDITOR_HEIGHT_BOTTOM_MARGIN = 5 // topbar 1 + border top, down 2 + help, status 2
)

// Model renders the tree as a list of lines and turns key presses into tree
// operations. It never edits fields directly: every change goes through the
// tree and the lines are rebuilt from a fresh snapshot.
type Model struct {
	focus bool
	tree  *schema.Tree

	// fold state survives index shifts because it is keyed by field id
	collapsed map[string]bool

	vp     viewport.Model
	style  lipgloss.Style
	cursor int
	lines  []*Line

	editing  bool
	input    textinput.Model
	original string

	retypeTarget string

	// counters taken together with lines
	total int
	kept  int

	keys keyMap
}

func NewModel(tree *schema.Tree) *Model {
	input := textinput.New()
	input.Placeholder = "field name"
	input.Prompt = ""
	input.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Blue())
	input.TextStyle = lipgloss.NewStyle().Foreground(theme.Green()).Underline(true)

	m := &Model{
		focus:     true,
		tree:      tree,
		collapsed: map[string]bool{},
		vp:        viewport.New(0, 0),
		style: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Blue()),
		cursor: EDITOR_CURSOR_TOP,
		input:  input,
		keys:   newKeyMap(),
	}
	m.rebuild()

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var retCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = max(int(float64(msg.Width)*EDITOR_WIDTH_RATIO)-2, 1)
		m.vp.Height = max(msg.Height-EDITOR_HEIGHT_BOTTOM_MARGIN, 1)
		m.sync()
	case event.PickTypeMsg:
		retCmd = m.retype(msg.Type)
	case tea.KeyMsg:
		if !m.focus {
			break
		}
		if m.editing {
			retCmd = m.updateInput(msg)
			break
		}

		line := m.curLine()
		switch {
		case key.Matches(msg, m.keys.up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.edit):
			if line.kind == addLine {
				retCmd = m.append(line.container())
			} else {
				retCmd = m.startEditing()
			}
		case key.Matches(msg, m.keys.retype):
			if line.kind != fieldLine {
				break
			}
			m.retypeTarget = line.field.ID
			retCmd = picker.Show
		case key.Matches(msg, m.keys.add):
			retCmd = m.append(line.container())
		case key.Matches(msg, m.keys.remove):
			retCmd = m.remove(line)
		case key.Matches(msg, m.keys.fold):
			m.toggleFold(line)
		}
	}

	return m, retCmd
}

func (m *Model) View() string {
	m.vp.SetContent(m.renderLines())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTopBar(),
		m.style.Render(m.vp.View()),
	)
}

// operations

func (m *Model) append(container schema.Path) tea.Cmd {
	p, err := m.tree.AppendField(container)
	if err == nil {
		m.rebuild()
		m.setCursorByPath(p)
	}
	return m.applied("append", container, err)
}

func (m *Model) remove(l *Line) tea.Cmd {
	if l.kind != fieldLine {
		return event.SetStatus(event.Warn, "nothing to delete on this line")
	}
	err := m.tree.RemoveField(l.path)
	if err == nil {
		// the cursor stays put and lands on the next sibling or the add line
		m.rebuild()
	}
	return m.applied("remove", l.path, err)
}

func (m *Model) retype(t schema.FieldType) tea.Cmd {
	id := m.retypeTarget
	m.retypeTarget = ""

	l := m.lineByID(id)
	if l == nil {
		return event.SetStatus(event.Warn, "field is no longer in the schema")
	}
	err := m.tree.SetFieldType(l.path, t)
	if err == nil {
		m.rebuild()
		m.setCursorByID(id)
	}
	return m.applied("retype", l.path, err)
}

func (m *Model) toggleFold(l *Line) {
	if l.kind != fieldLine || !l.field.Container() {
		return
	}
	m.collapsed[l.field.ID] = !m.collapsed[l.field.ID]
	m.rebuild()
	m.setCursorByID(l.field.ID)
}

func (m *Model) startEditing() tea.Cmd {
	l := m.curLine()
	m.editing = true
	m.original = l.field.Name
	m.input.SetValue(l.field.Name)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.original = ""
	m.input.Blur()
	m.input.Reset()
}

// updateInput renames the field on every keystroke so the preview follows
// along; esc restores the name the edit started from.
func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	l := m.curLine()

	switch {
	case key.Matches(msg, m.keys.commit):
		m.stopEditing()
		return nil
	case key.Matches(msg, m.keys.cancel):
		err := m.tree.SetFieldName(l.path, m.original)
		m.stopEditing()
		m.rebuild()
		return m.applied("rename", l.path, err)
	}

	prev := m.input.Value()
	im, cmd := m.input.Update(msg)
	m.input = im
	if m.input.Value() == prev {
		return cmd
	}

	err := m.tree.SetFieldName(l.path, m.input.Value())
	m.rebuild()
	return tea.Batch(cmd, m.applied("rename", l.path, err))
}

func (m *Model) applied(op string, p schema.Path, err error) tea.Cmd {
	entry := logrus.WithFields(logrus.Fields{"op": op, "path": p.String()})
	if err != nil {
		entry.WithError(err).Warn("operation rejected")
		return event.SetStatus(event.Error, err.Error())
	}
	entry.Debug("operation applied")
	return event.TreeChanged(op, p)
}

// lines

func (m *Model) rebuild() {
	snap := m.tree.Snapshot()
	m.lines = m.buildLines(nil, snap.Fields, schema.Root(), 0)
	m.total, m.kept = m.count()
	m.pruneCollapsed(snap.Fields)
	m.sync()
}

// pruneCollapsed forgets fold state of fields that left the tree. Stale
// children still count as present.
func (m *Model) pruneCollapsed(fields []*schema.Field) {
	live := map[string]bool{}
	var mark func(fields []*schema.Field)
	mark = func(fields []*schema.Field) {
		for _, f := range fields {
			live[f.ID] = true
			mark(f.Children)
		}
	}
	mark(fields)

	for id := range m.collapsed {
		if !live[id] {
			delete(m.collapsed, id)
		}
	}
}

func (m *Model) buildLines(lines []*Line, fields []*schema.Field, parent schema.Path, depth int) []*Line {
	for i, f := range fields {
		p := parent.Child(i)
		expanded := f.Container() && !m.collapsed[f.ID]
		lines = append(lines, newFieldLine(f, p, depth, len(lines), expanded))
		if expanded {
			lines = m.buildLines(lines, f.Children, p, depth+1)
		}
	}
	return append(lines, newAddLine(parent, depth, len(lines)))
}

func (m *Model) renderLines() string {
	var result strings.Builder
	leftPadding := len(strconv.Itoa(len(m.lines)))

	for _, line := range m.lines {
		input := ""
		if m.editing && line.index == m.cursor {
			input = m.input.View()
		}
		result.WriteString(line.render(leftPadding, line.index == m.cursor, m.vp.Width, !m.focus, input) + "\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}

func (m *Model) renderTopBar() string {
	total, kept := m.Counts()
	title := lipgloss.NewStyle().Margin(0, 1).Foreground(theme.Blue()).Bold(true).Render("schema")
	counts := lipgloss.NewStyle().Foreground(theme.Subtext1()).
		Render(fmt.Sprintf("%d fields, %d complete", total, kept))
	return lipgloss.JoinHorizontal(lipgloss.Left, title, counts)
}

// cursor

func (m *Model) curLine() *Line {
	return m.lines[m.cursor]
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.sync()
}

func (m *Model) setCursorByPath(p schema.Path) {
	for _, line := range m.lines {
		if line.kind == fieldLine && line.path.Equal(p) {
			m.cursor = line.index
			break
		}
	}
	m.sync()
}

func (m *Model) setCursorByID(id string) {
	if l := m.lineByID(id); l != nil {
		m.cursor = l.index
	}
	m.sync()
}

func (m *Model) lineByID(id string) *Line {
	if id == "" {
		return nil
	}
	for _, line := range m.lines {
		if line.kind == fieldLine && line.field.ID == id {
			return line
		}
	}
	return nil
}

// sync clamps the cursor and scrolls the viewport so it stays visible.
func (m *Model) sync() {
	m.cursor = min(max(m.cursor, EDITOR_CURSOR_TOP), len(m.lines)-1)

	m.vp.SetContent(m.renderLines())
	if m.vp.Height <= 0 {
		return
	}
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

// accessors

// Counts returns the number of visible fields and how many of them would be
// kept in the submitted document, as of the last rebuild of the lines.
func (m *Model) Counts() (total int, kept int) {
	return m.total, m.kept
}

func (m *Model) count() (total int, kept int) {
	m.tree.Walk(func(p schema.Path, depth int, f *schema.Field) bool {
		total++
		return true
	})
	// an incomplete field takes its whole subtree out of the document
	m.tree.Walk(func(p schema.Path, depth int, f *schema.Field) bool {
		if !f.Complete() {
			return false
		}
		kept++
		return true
	})
	return total, kept
}

// CursorPath returns the path of the field under the cursor, or the container
// path and false when the cursor is on an add line.
func (m *Model) CursorPath() (schema.Path, bool) {
	l := m.curLine()
	return l.path, l.kind == fieldLine
}

func (m *Model) Editing() bool {
	return m.editing
}

func (m *Model) KeyMap() help.KeyMap {
	return m.keys
}

func (m *Model) Focus() tea.Cmd {
	m.focus = true
	m.style = m.style.Border(lipgloss.ThickBorder()).BorderForeground(theme.Blue())
	m.sync()
	return nil
}

func (m *Model) Blur() {
	m.focus = false
	m.style = m.style.Border(lipgloss.NormalBorder()).BorderForeground(theme.Overlay0())
	m.sync()
}
