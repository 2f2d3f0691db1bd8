package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/output"
	"github.com/moovely/greener/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard is one headline figure of a comparison, optionally marked
// with the verdict it points towards
type MetricCard struct {
	Label   string
	Value   string
	Verdict domain.Verdict // empty for figures that carry no verdict
	Change  string         // shown next to the verdict marker, e.g. "+£708/mo"
	Note    string
	Width   int
}

// NewMetricCard creates a card for a plain figure
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 26}
}

// NewDiffCard shows an annual difference, classified with the same
// threshold as the comparison verdict. A zero difference carries no marker.
func NewDiffCard(label string, annual decimal.Decimal) *MetricCard {
	card := NewMetricCard(label, output.FormatCurrency(annual, true))
	if annual.IsZero() {
		return card
	}
	monthly := output.FormatCurrency(annual.Div(decimal.NewFromInt(12)), true) + "/mo"
	return card.WithVerdict(compare.ClassifyVerdict(annual), monthly)
}

// WithVerdict marks the card with a verdict and the change behind it
func (m *MetricCard) WithVerdict(v domain.Verdict, change string) *MetricCard {
	m.Verdict = v
	m.Change = change
	return m
}

// WithNote adds a muted line under the value
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) marker() string {
	if m.Verdict == "" {
		return ""
	}
	return tuistyles.VerdictStyle(m.Verdict).Render(tuistyles.VerdictIndicator(m.Verdict) + " " + m.Change)
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if mk := m.marker(); mk != "" {
		lines = append(lines, mk)
	}
	if m.Note != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Note))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderCompact returns a single unbordered line
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if mk := m.marker(); mk != "" {
		out += " " + mk
	}
	return out
}

// MetricGrid lays cards out in rows of the given width
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		row := make([]string, 0, end-start)
		for _, card := range cards[start:end] {
			row = append(row, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
