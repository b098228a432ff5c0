package ui

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

// Theme is the palette shared by the bubbletea and tview front ends.
type Theme struct {
	Name      string
	Accent    string
	Border    string
	Text      string
	Muted     string
	Highlight string
	Match     string
}

// ThemeFor maps a catppuccin flavor name to a Theme; unknown names get mocha.
func ThemeFor(name string) Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	var flavor catppuccin.Flavor
	switch name {
	case "latte":
		flavor = catppuccin.Latte
	case "frappe":
		flavor = catppuccin.Frappe
	case "macchiato":
		flavor = catppuccin.Macchiato
	default:
		name = "mocha"
		flavor = catppuccin.Mocha
	}
	return Theme{
		Name:      name,
		Accent:    flavor.Mauve().Hex,
		Border:    flavor.Blue().Hex,
		Text:      flavor.Text().Hex,
		Muted:     flavor.Overlay1().Hex,
		Highlight: flavor.Surface1().Hex,
		Match:     flavor.Teal().Hex,
	}
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	search   lipgloss.Style
	list     lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
	empty    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)),
		subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		search: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Match)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		list: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),
		item: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Highlight)),
		status: lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color(t.Muted)),
		empty: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(t.Muted)),
	}
}

func tcellColor(hex string) tcell.Color {
	return tcell.GetColor(hex)
}
