package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the terminal colour scheme. Object colours always follow
// weight and are not themed.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Warning lipgloss.Color
	Bar     string
	Pivot   string
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Title:   lipgloss.Color("86"),
		Text:    lipgloss.Color("255"),
		Muted:   lipgloss.Color("242"),
		Border:  lipgloss.Color("238"),
		Warning: lipgloss.Color("220"),
		Bar:     "#8b4513",
		Pivot:   "#555555",
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Title:   lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#00aa00"),
		Border:  lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Bar:     "#00cc00",
		Pivot:   "#005500",
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Title:   lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#0077be"),
		Warning: lipgloss.Color("#ffd700"),
		Bar:     "#ffd700",
		Pivot:   "#4488aa",
	}
)

var themes = map[string]Theme{
	ThemeClassic.Name: ThemeClassic,
	ThemeRetro.Name:   ThemeRetro,
	ThemeOcean.Name:   ThemeOcean,
}

// GetTheme falls back to classic for unknown names.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return ThemeClassic
}

func ListThemes() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type styles struct {
	title, text, muted, dim, warning lipgloss.Style
	box                              lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		title:   lipgloss.NewStyle().Foreground(t.Title),
		text:    lipgloss.NewStyle().Foreground(t.Text),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		dim:     lipgloss.NewStyle().Foreground(t.Border),
		warning: lipgloss.NewStyle().Foreground(t.Warning),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(16),
	}
}
