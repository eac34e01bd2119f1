package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

var flavour = catppuccin.Mocha

func Red() lipgloss.Color      { return lipgloss.Color(flavour.Red().Hex) }
func Peach() lipgloss.Color    { return lipgloss.Color(flavour.Peach().Hex) }
func Yellow() lipgloss.Color   { return lipgloss.Color(flavour.Yellow().Hex) }
func Green() lipgloss.Color    { return lipgloss.Color(flavour.Green().Hex) }
func Teal() lipgloss.Color     { return lipgloss.Color(flavour.Teal().Hex) }
func Blue() lipgloss.Color     { return lipgloss.Color(flavour.Blue().Hex) }
func Mauve() lipgloss.Color    { return lipgloss.Color(flavour.Mauve().Hex) }
func Text() lipgloss.Color     { return lipgloss.Color(flavour.Text().Hex) }
func Subtext1() lipgloss.Color { return lipgloss.Color(flavour.Subtext1().Hex) }
func Overlay0() lipgloss.Color { return lipgloss.Color(flavour.Overlay0().Hex) }
func Surface1() lipgloss.Color { return lipgloss.Color(flavour.Surface1().Hex) }
func Mantle() lipgloss.Color   { return lipgloss.Color(flavour.Mantle().Hex) }

// TypeColor colors a field type label. Unset types are dimmed.
func TypeColor(t string) lipgloss.Color {
	switch t {
	case "string":
		return Peach()
	case "number":
		return Teal()
	case "nested":
		return Mauve()
	}
	return Overlay0()
}
