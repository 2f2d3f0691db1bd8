package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/output"
	"github.com/moovely/greener/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Segment is one slice of a spending bar
type Segment struct {
	Label  string
	Amount decimal.Decimal
	Color  lipgloss.Color
}

// SpendingBar draws a monthly budget as a single proportional bar
type SpendingBar struct {
	Title    string
	Segments []Segment
	Width    int
}

// NewSpendingBar builds a bar from a spending breakdown. Negative
// disposable income is drawn as an empty segment.
func NewSpendingBar(title string, s domain.SpendingBreakdown) *SpendingBar {
	return &SpendingBar{
		Title: title,
		Width: 50,
		Segments: []Segment{
			{"Rent", s.Rent, tuistyles.ColorRent},
			{"Council tax", s.CouncilTax, tuistyles.ColorCouncilTax},
			{"Commute", s.Commute, tuistyles.ColorCommute},
			{"Groceries", s.Groceries, tuistyles.ColorGroceries},
			{"Energy", s.Energy, tuistyles.ColorEnergy},
			{"Childcare", s.Childcare, tuistyles.ColorChildcare},
			{"Lifestyle", s.Lifestyle, tuistyles.ColorLifestyle},
			{"Left over", s.Disposable, tuistyles.ColorDisposable},
		},
	}
}

// WithWidth sets the bar width in cells
func (b *SpendingBar) WithWidth(width int) *SpendingBar {
	b.Width = width
	return b
}

// Total is the sum of the positive segments
func (b *SpendingBar) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Segments {
		if s.Amount.IsPositive() {
			total = total.Add(s.Amount)
		}
	}
	return total
}

// Cells returns the number of cells each segment occupies. Rounding
// remainders go to the largest segment so the cells fill the width.
func (b *SpendingBar) Cells() []int {
	cells := make([]int, len(b.Segments))
	total := b.Total()
	if !total.IsPositive() || b.Width <= 0 {
		return cells
	}

	width := decimal.NewFromInt(int64(b.Width))
	used, largest := 0, -1
	for i, s := range b.Segments {
		if !s.Amount.IsPositive() {
			continue
		}
		cells[i] = int(s.Amount.Mul(width).Div(total).Round(0).IntPart())
		used += cells[i]
		if largest < 0 || s.Amount.GreaterThan(b.Segments[largest].Amount) {
			largest = i
		}
	}
	if largest >= 0 {
		cells[largest] += b.Width - used
		if cells[largest] < 0 {
			cells[largest] = 0
		}
	}
	return cells
}

// Render returns the title, bar, and legend
func (b *SpendingBar) Render() string {
	var sb strings.Builder

	if b.Title != "" {
		sb.WriteString(tuistyles.MetricLabelStyle.Render(b.Title))
		sb.WriteString("\n")
	}

	cells := b.Cells()
	for i, s := range b.Segments {
		if cells[i] > 0 {
			sb.WriteString(lipgloss.NewStyle().Foreground(s.Color).Render(strings.Repeat("█", cells[i])))
		}
	}
	sb.WriteString("\n")

	legend := make([]string, 0, len(b.Segments))
	for _, s := range b.Segments {
		if s.Amount.IsZero() {
			continue
		}
		swatch := lipgloss.NewStyle().Foreground(s.Color).Render("■")
		legend = append(legend, fmt.Sprintf("%s %s %s", swatch, s.Label, output.FormatCurrency(s.Amount, false)))
	}
	sb.WriteString(tuistyles.SubtitleStyle.Render(strings.Join(legend, "  ")))

	return sb.String()
}
