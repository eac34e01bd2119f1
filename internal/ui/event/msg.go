package event

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flavono123/nestform/internal/schema"
)

// picker -> editor
type PickTypeMsg struct {
	Type schema.FieldType
}

// editor -> root, preview
type TreeChangedMsg struct {
	Op   string
	Path schema.Path
}

func TreeChanged(op string, p schema.Path) tea.Cmd {
	return func() tea.Msg {
		return TreeChangedMsg{Op: op, Path: p}
	}
}

// root -> preview
type SubmittedMsg struct {
	Document schema.Document
}

// -> root

type Status uint

const (
	Error Status = iota
	Warn
	Info
)

type SetStatusMsg struct {
	Message string
	Status  Status
}

func SetStatus(status Status, message string) tea.Cmd {
	return func() tea.Msg {
		return SetStatusMsg{Message: message, Status: status}
	}
}

const statusDuration = time.Millisecond * 1060

func ShowStatus() tea.Cmd {
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return HideStatusMsg{}
	})
}

type HideStatusMsg struct{}
