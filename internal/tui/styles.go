package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rezcal/rezcal/internal/calendar"
	"github.com/rezcal/rezcal/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title bar
	TitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Event block styles by tag
	EventStyle   lipgloss.Style
	OwnedStyle   lipgloss.Style
	CreatedStyle lipgloss.Style

	// Empty grid cell
	EmptyCellStyle lipgloss.Style
	HourRuleStyle  lipgloss.Style

	// Month view
	MonthDayStyle      lipgloss.Style
	MonthDayMutedStyle lipgloss.Style
	MonthTodayStyle    lipgloss.Style

	// Footer
	LegendStyle    lipgloss.Style
	StatusStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	HelpStyle      lipgloss.Style
	LoadingStyle   lipgloss.Style
	PromptBoxStyle lipgloss.Style

	// Prompt input
	PromptLabelStyle       lipgloss.Style
	PromptTextStyle        lipgloss.Style
	PromptPlaceholderStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		TitleStyle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		DayHeaderStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Bold(true).
			Align(lipgloss.Center),
		DayHeaderTodayStyle: lipgloss.NewStyle().
			Foreground(p.Today).
			Bold(true).
			Align(lipgloss.Center),

		TimeColumnStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),

		EventStyle: lipgloss.NewStyle().
			Foreground(p.TextOnEvent).
			Background(p.EventBg),
		OwnedStyle: lipgloss.NewStyle().
			Foreground(p.TextOnOwned).
			Background(p.OwnedBg),
		CreatedStyle: lipgloss.NewStyle().
			Foreground(p.TextOnCreated).
			Background(p.CreatedBg).
			Bold(true),

		EmptyCellStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		HourRuleStyle: lipgloss.NewStyle().
			Foreground(p.BgSelection),

		MonthDayStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		MonthDayMutedStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		MonthTodayStyle: lipgloss.NewStyle().
			Foreground(p.Today).
			Bold(true),

		LegendStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		ErrorStyle: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		HelpStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		LoadingStyle: lipgloss.NewStyle().
			Foreground(p.Accent),
		PromptBoxStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),

		PromptLabelStyle: lipgloss.NewStyle().
			Foreground(p.Accent),
		PromptTextStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		PromptPlaceholderStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
	}
}

// EventTagStyle returns the block style for a display event tag.
func (s *Styles) EventTagStyle(tag calendar.ColorTag) lipgloss.Style {
	switch tag {
	case calendar.TagOwned:
		return s.OwnedStyle
	case calendar.TagCreated:
		return s.CreatedStyle
	default:
		return s.EventStyle
	}
}
