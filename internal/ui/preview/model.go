package preview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/flavono123/nestform/internal/export"
	"github.com/flavono123/nestform/internal/schema"
	"github.com/flavono123/nestform/internal/ui/event"
	"github.com/flavono123/nestform/internal/ui/theme"
)

const (
	PREVIEW_WIDTH_RATIO          = 0.5
	PREVIEW_HEIGHT_BOTTOM_MARGIN = 5
)

type Mode uint

const (
	// SnapshotMode shows the raw draft, incomplete rows and stale children
	// included.
	SnapshotMode Mode = iota
	// DocumentMode shows what submit would emit.
	DocumentMode
)

func (m Mode) String() string {
	if m == DocumentMode {
		return "document"
	}
	return "draft"
}

// Model is a read-only view of the tree.
type Model struct {
	tree   *schema.Tree
	format export.Format
	mode   Mode

	vp      viewport.Model
	style   lipgloss.Style
	content string
}

func NewModel(tree *schema.Tree, format export.Format) *Model {
	m := &Model{
		tree:   tree,
		format: format,
		mode:   SnapshotMode,
		vp:     viewport.New(0, 0),
		style: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Overlay0()),
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = max(int(float64(msg.Width)*PREVIEW_WIDTH_RATIO)-2, 1)
		m.vp.Height = max(msg.Height-PREVIEW_HEIGHT_BOTTOM_MARGIN, 1)
		m.vp.SetContent(m.content)
	case event.TreeChangedMsg:
		m.refresh()
	case event.SubmittedMsg:
		m.mode = DocumentMode
		m.refresh()
	case tea.KeyMsg:
		// only paging keys reach the preview
		m.vp, cmd = m.vp.Update(msg)
	}

	return m, cmd
}

func (m *Model) View() string {
	title := lipgloss.NewStyle().Margin(0, 1).Foreground(theme.Yellow()).Bold(true).Render(m.mode.String())
	format := lipgloss.NewStyle().Foreground(theme.Subtext1()).Render(m.formatLabel())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Left, title, format),
		m.style.Render(m.vp.View()),
	)
}

func (m *Model) Toggle() {
	if m.mode == SnapshotMode {
		m.mode = DocumentMode
	} else {
		m.mode = SnapshotMode
	}
	m.refresh()
}

func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) Content() string {
	return m.content
}

func (m *Model) formatLabel() string {
	if m.mode == SnapshotMode {
		return string(export.FormatJSON)
	}
	return string(m.format)
}

func (m *Model) refresh() {
	var (
		b   []byte
		err error
	)
	if m.mode == SnapshotMode {
		b, err = export.MarshalSnapshot(m.tree.Snapshot())
	} else {
		b, err = export.Marshal(m.tree.BuildCleanedDocument(), m.format)
	}
	if err != nil {
		logrus.WithError(err).WithField("mode", m.mode.String()).Error("failed to render preview")
		m.content = lipgloss.NewStyle().Foreground(theme.Red()).Render(err.Error())
	} else {
		m.content = strings.TrimSuffix(string(b), "\n")
	}
	m.vp.SetContent(m.content)
}
