// Package theme holds the light and dark palettes and the styles derived
// from them.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/model"
)

// Name identifies a palette.
type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// Default is the theme used when none is configured.
const Default = Dark

// Palette is the fixed set of colours of a theme.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	ButtonBG   lipgloss.Color
	ButtonFG   lipgloss.Color
	Correct    lipgloss.Color
	Incorrect  lipgloss.Color
}

var palettes = map[Name]Palette{
	Light: {
		Background: "#ffffff",
		Foreground: "#000000",
		ButtonBG:   "#f0f0f0",
		ButtonFG:   "#000000",
		Correct:    "#008800",
		Incorrect:  "#ff0000",
	},
	Dark: {
		Background: "#1e1e1e",
		Foreground: "#ffffff",
		ButtonBG:   "#2a2a2a",
		ButtonFG:   "#ffffff",
		Correct:    "#00cc00",
		Incorrect:  "#ff4444",
	},
}

// Parse resolves a theme name. An empty name selects Default.
func Parse(name string) (Name, error) {
	switch n := Name(strings.ToLower(strings.TrimSpace(name))); n {
	case "":
		return Default, nil
	case Light, Dark:
		return n, nil
	default:
		return "", fmt.Errorf("%w %q (want light or dark)", model.ErrUnknownTheme, name)
	}
}

// Toggle returns the other theme.
func (n Name) Toggle() Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// Palette returns the colours of n, falling back to Default.
func (n Name) Palette() Palette {
	if p, ok := palettes[n]; ok {
		return p
	}
	return palettes[Default]
}

// Styles are the lipgloss styles used by the terminal UI.
type Styles struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Text       lipgloss.Style
	Pending    lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
	Cursor     lipgloss.Style
	Button     lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	Card       lipgloss.Style
	CardLabel  lipgloss.Style
	CardValue  lipgloss.Style
	StatusLine lipgloss.Style
}

// Styles derives the UI styles for n.
func (n Name) Styles() Styles {
	p := n.Palette()
	base := lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Background)
	return Styles{
		App:       base.Padding(1, 2),
		Title:     base.Bold(true),
		Text:      base,
		Pending:   base.Faint(true),
		Correct:   base.Foreground(p.Correct),
		Incorrect: base.Foreground(p.Incorrect).Underline(true),
		Cursor:    base.Reverse(true),
		Button:    lipgloss.NewStyle().Foreground(p.ButtonFG).Background(p.ButtonBG).Padding(0, 2),
		Selected: lipgloss.NewStyle().Foreground(p.ButtonBG).Background(p.ButtonFG).
			Bold(true).Padding(0, 2),
		Muted: base.Faint(true),
		Error: base.Foreground(p.Incorrect),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.ButtonFG).
			Padding(0, 1),
		CardLabel:  lipgloss.NewStyle().Foreground(p.Foreground).Faint(true),
		CardValue:  lipgloss.NewStyle().Foreground(p.Foreground).Bold(true),
		StatusLine: base.Faint(true),
	}
}
