package tuistyles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/moovely/greener/internal/domain"
)

// Palette
var (
	ColorPrimary   = lipgloss.Color("#2E7D32")
	ColorSecondary = lipgloss.Color("#81C784")
	ColorAccent    = lipgloss.Color("#FFB300")
	ColorSuccess   = lipgloss.Color("#43A047")
	ColorDanger    = lipgloss.Color("#E53935")
	ColorInfo      = lipgloss.Color("#1E88E5")

	ColorForeground = lipgloss.Color("#ECEFF1")
	ColorMuted      = lipgloss.Color("#90A4AE")
	ColorBorder     = lipgloss.Color("#546E7A")

	// Spending bar segments, in SpendingBreakdown field order
	ColorRent       = lipgloss.Color("#8E24AA")
	ColorCouncilTax = lipgloss.Color("#5E35B1")
	ColorCommute    = lipgloss.Color("#1E88E5")
	ColorGroceries  = lipgloss.Color("#00897B")
	ColorEnergy     = lipgloss.Color("#FDD835")
	ColorChildcare  = lipgloss.Color("#FB8C00")
	ColorLifestyle  = lipgloss.Color("#F4511E")
	ColorDisposable = lipgloss.Color("#43A047")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	MetricNeutralStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#000000")).
				Background(ColorSecondary)
)

// VerdictIndicator returns the marker for a move's verdict
func VerdictIndicator(v domain.Verdict) string {
	switch v {
	case domain.VerdictGreener:
		return "▲"
	case domain.VerdictNotGreener:
		return "▼"
	}
	return "≈"
}

// VerdictStyle colours a figure by the verdict it supports
func VerdictStyle(v domain.Verdict) lipgloss.Style {
	switch v {
	case domain.VerdictGreener:
		return MetricPositiveStyle
	case domain.VerdictNotGreener:
		return MetricNegativeStyle
	}
	return MetricNeutralStyle
}

// MetricTrendStyle picks the style for a change in the given direction
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}
