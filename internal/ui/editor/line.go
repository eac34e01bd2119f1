package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flavono123/nestform/internal/schema"
	"github.com/flavono123/nestform/internal/ui/theme"
)

type lineKind uint

const (
	fieldLine lineKind = iota
	addLine
)

const (
	PLACEHOLDER_NAME = "<unnamed>"
	ADD_LABEL        = "+ add field"
)

// Line is one rendered row. A field line points at a field; an add line
// points at the container that receives appended fields.
type Line struct {
	kind     lineKind
	path     schema.Path
	field    *schema.Field
	depth    int
	index    int
	expanded bool
}

func newFieldLine(f *schema.Field, p schema.Path, depth int, index int, expanded bool) *Line {
	return &Line{kind: fieldLine, path: p, field: f, depth: depth, index: index, expanded: expanded}
}

func newAddLine(container schema.Path, depth int, index int) *Line {
	return &Line{kind: addLine, path: container, depth: depth, index: index}
}

// container is the path new siblings of this line are appended to.
func (l *Line) container() schema.Path {
	if l.kind == addLine {
		return l.path
	}
	parent, _ := l.path.Parent()
	return parent
}

func (l *Line) render(leftPadding int, cursored bool, maxWidth int, blurred bool, input string) string {
	line := lipgloss.JoinHorizontal(
		lipgloss.Left,
		l.number(leftPadding),
		l.indent(),
		l.cursor(cursored, blurred),
		l.action(),
		l.renderBody(input),
	)

	return lipgloss.NewStyle().MaxWidth(maxWidth).Render(line)
}

// renderBody shows the field, or input in place of the name while it is
// being edited.
func (l *Line) renderBody(input string) string {
	if l.kind == addLine {
		return lipgloss.NewStyle().Foreground(theme.Overlay0()).Render(ADD_LABEL)
	}

	name := lipgloss.NewStyle().Foreground(theme.Green())
	label := l.field.Name
	if input != "" {
		label = input
	} else if label == "" {
		name = name.Foreground(theme.Overlay0()).Italic(true)
		label = PLACEHOLDER_NAME
	}

	typ := string(l.field.Type)
	if typ == "" {
		typ = "?"
	}
	displayType := lipgloss.NewStyle().Foreground(theme.TypeColor(string(l.field.Type)))

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		name.Render(label),
		displayType.Render(fmt.Sprintf("<%s>", typ)),
	)
}

func (l *Line) number(leftPadding int) string {
	number := lipgloss.NewStyle().Foreground(theme.Overlay0())
	fmtStr := fmt.Sprintf("%%%dd ", leftPadding)
	return number.Render(fmt.Sprintf(fmtStr, l.index+1))
}

func (l *Line) indent() string {
	return strings.Repeat(" ", l.depth*2)
}

func (l *Line) cursor(cursored bool, blurred bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Blue()).Bold(true)
	if blurred {
		style = style.Foreground(theme.Overlay0()).Bold(false)
	}
	if cursored {
		return style.Render(">")
	}
	return style.Render(" ")
}

func (l *Line) action() string {
	action := lipgloss.NewStyle().Foreground(theme.Subtext1())
	if l.kind == fieldLine && l.field.Container() {
		if l.expanded {
			return action.Render("-")
		}
		return action.Render("+")
	}
	return action.Render(" ")
}
