package ui

import "github.com/charmbracelet/lipgloss"

var (
	brand   = lipgloss.Color("#F25D94")
	accent  = lipgloss.Color("#8BC34A")
	muted   = lipgloss.Color("#7D8590")
	danger  = lipgloss.Color("#E53935")
	surface = lipgloss.Color("#1E2A3D")
)

type Styles struct {
	Header   lipgloss.Style
	Logo     lipgloss.Style
	Widget   lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Added    lipgloss.Style
	Price    lipgloss.Style
	Total    lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Footer   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Padding(0, 1).
			Background(surface).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(brand),
		Logo:     lipgloss.NewStyle().Bold(true).Foreground(brand),
		Widget:   lipgloss.NewStyle().Bold(true).Foreground(accent).PaddingLeft(2),
		Title:    lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Item:     lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().PaddingLeft(1).Foreground(brand).Bold(true),
		Added:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		Price:    lipgloss.NewStyle().Foreground(accent),
		Total:    lipgloss.NewStyle().Bold(true).MarginTop(1),
		Error:    lipgloss.NewStyle().Foreground(danger).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Footer:   lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
