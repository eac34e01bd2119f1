package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/flavono123/nestform/internal/export"
	"github.com/flavono123/nestform/internal/schema"
	"github.com/flavono123/nestform/internal/ui/editor"
	"github.com/flavono123/nestform/internal/ui/event"
	"github.com/flavono123/nestform/internal/ui/picker"
	"github.com/flavono123/nestform/internal/ui/preview"
	"github.com/flavono123/nestform/internal/ui/theme"
)

// SubmitFunc receives the cleaned document each time the user submits.
type SubmitFunc func(doc schema.Document) error

type Options struct {
	Format export.Format
	Submit SubmitFunc
}

type mainModel struct {
	tree *schema.Tree
	opts Options
	keys keyMap
	help help.Model

	editor  *editor.Model
	picker  *picker.Model
	preview *preview.Model

	width  int
	height int

	status     string
	statusKind event.Status
	submitted  int
}

func InitModel(tree *schema.Tree, opts Options) *mainModel {
	if opts.Format == "" {
		opts.Format = export.FormatJSON
	}

	return &mainModel{
		tree:    tree,
		opts:    opts,
		keys:    newKeyMap(),
		help:    help.New(),
		editor:  editor.NewModel(tree),
		picker:  picker.NewModel(),
		preview: preview.NewModel(tree, opts.Format),
	}
}

func (m *mainModel) Init() tea.Cmd {
	return nil
}

func (m *mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m, m.handleKey(keyMsg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case event.SetStatusMsg:
		m.status = msg.Message
		m.statusKind = msg.Status
		cmds = append(cmds, event.ShowStatus())
	case event.HideStatusMsg:
		m.status = ""
	case picker.ShowMsg:
		m.editor.Blur()
	case picker.HideMsg:
		cmds = append(cmds, m.editor.Focus())
	}

	em, eCmd := m.editor.Update(msg)
	m.editor = em.(*editor.Model)
	cmds = append(cmds, eCmd)

	pm, pCmd := m.picker.Update(msg)
	m.picker = pm.(*picker.Model)
	cmds = append(cmds, pCmd)

	vm, vCmd := m.preview.Update(msg)
	m.preview = vm.(*preview.Model)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

// handleKey routes a key press to exactly one receiver: the picker while it
// is open, the name input while editing, otherwise main bindings then editor.
func (m *mainModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.quit) {
		return tea.Quit
	}

	switch {
	case m.picker.Visible():
		pm, cmd := m.picker.Update(msg)
		m.picker = pm.(*picker.Model)
		return cmd
	case m.editor.Editing():
		em, cmd := m.editor.Update(msg)
		m.editor = em.(*editor.Model)
		return cmd
	case key.Matches(msg, m.keys.submit):
		return m.submit()
	case key.Matches(msg, m.keys.toggle):
		m.preview.Toggle()
		return nil
	case key.Matches(msg, m.keys.scroll):
		vm, cmd := m.preview.Update(msg)
		m.preview = vm.(*preview.Model)
		return cmd
	}

	em, cmd := m.editor.Update(msg)
	m.editor = em.(*editor.Model)
	return cmd
}

func (m *mainModel) submit() tea.Cmd {
	doc := m.tree.BuildCleanedDocument()

	if m.opts.Submit != nil {
		if err := m.opts.Submit(doc); err != nil {
			logrus.WithError(err).Error("failed to submit document")
			return event.SetStatus(event.Error, fmt.Sprintf("submit failed: %v", err))
		}
	}
	m.submitted++
	logrus.WithFields(logrus.Fields{
		"fields": len(doc.Fields),
		"format": m.opts.Format.String(),
		"count":  m.submitted,
	}).Info("document submitted")

	return tea.Batch(
		event.SetStatus(event.Info, fmt.Sprintf("submitted %d top-level fields as %s", len(doc.Fields), m.opts.Format)),
		func() tea.Msg { return event.SubmittedMsg{Document: doc} },
	)
}

func (m *mainModel) View() string {
	if m.picker.Visible() {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			UPPER_20,
			lipgloss.JoinVertical(lipgloss.Left, m.picker.View(), m.help.View(m.picker.KeyMap())),
			lipgloss.WithWhitespaceBackground(theme.Mantle()),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.editor.View(), m.preview.View()),
		m.renderStatus(),
		m.help.View(m.helpKeys()),
	)
}

func (m *mainModel) helpKeys() help.KeyMap {
	return helpKeys{sub: m.editor.KeyMap().ShortHelp(), main: m.keys}
}

func (m *mainModel) renderStatus() string {
	if m.status == "" {
		return ""
	}

	color := theme.Blue()
	switch m.statusKind {
	case event.Error:
		color = theme.Red()
	case event.Warn:
		color = theme.Yellow()
	}
	return lipgloss.NewStyle().Foreground(color).MaxWidth(m.width).Render(m.status)
}
