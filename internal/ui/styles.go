package ui

import "github.com/charmbracelet/lipgloss"

// Styles collects the lipgloss styles shared by all screens.
type Styles struct {
	Header       lipgloss.Style
	HeaderAccent lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	Faint        lipgloss.Style
	Weekday      lipgloss.Style
	DayOutMonth  lipgloss.Style
	DayInMonth   lipgloss.Style
	DayToday     lipgloss.Style
	DaySelected  lipgloss.Style
	DotIncome    lipgloss.Style
	DotNeutral   lipgloss.Style
	Income       lipgloss.Style
	Expense      lipgloss.Style
	Net          lipgloss.Style
	GroupHeader  lipgloss.Style
	UserTag      lipgloss.Style
	Error        lipgloss.Style
	Hint         lipgloss.Style
	Selected     lipgloss.Style
	Banner       lipgloss.Style
	Summary      lipgloss.Style
	Bar          lipgloss.Style
}

const accentColor = lipgloss.Color("#f97316") // the app's orange

func defaultStyles() Styles {
	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(accentColor).Padding(0, 1),
		HeaderAccent: lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		Tab:          lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Padding(0, 2),
		TabActive:    lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 2),
		Faint:        lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Weekday:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		DayOutMonth:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563")),
		DayInMonth:   lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb")),
		DayToday:     lipgloss.NewStyle().Foreground(accentColor).Bold(true),
		DaySelected:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(accentColor).Bold(true),
		DotIncome:    lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		DotNeutral:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Income:       lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")),
		Expense:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		Net:          lipgloss.NewStyle().Bold(true),
		GroupHeader:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Bold(true),
		UserTag:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),
		Hint:         lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Selected:     lipgloss.NewStyle().Foreground(accentColor).Bold(true),
		Banner:       lipgloss.NewStyle().Foreground(lipgloss.Color("#c2410c")),
		Summary:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
		Bar:          lipgloss.NewStyle().Foreground(accentColor),
	}
}
