package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moovely/greener/internal/breakeven"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/output"
	"github.com/moovely/greener/internal/tui/components"
	"github.com/moovely/greener/internal/tui/tuimsg"
	"github.com/moovely/greener/internal/tui/tuistyles"
)

var keyBack = key.NewBinding(key.WithKeys("esc", "backspace"))

// DetailModel shows one home-to-destination comparison in full
type DetailModel struct {
	report   *compare.Report
	required *breakeven.Result
	width    int
	height   int
}

// NewDetailModel creates the detail scene
func NewDetailModel() *DetailModel {
	return &DetailModel{}
}

// SetReport sets the comparison and, when available, the required salary
func (m *DetailModel) SetReport(report *compare.Report, required *breakeven.Result) {
	m.report = report
	m.required = required
}

// Report returns the comparison on display
func (m *DetailModel) Report() *compare.Report { return m.report }

// SetSize updates the model dimensions
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the detail scene
func (m *DetailModel) Update(msg tea.Msg) (*DetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keyBack) {
		return m, func() tea.Msg { return tuimsg.BackMsg{} }
	}
	return m, nil
}

// View renders the detail scene
func (m *DetailModel) View() string {
	if m.report == nil {
		return "No comparison selected.\n\nPress ESC to go back."
	}
	r := m.report

	barWidth := 50
	if m.width > 20 && m.width-10 < barWidth {
		barWidth = m.width - 10
	}

	sections := []string{
		renderDetailHeader(r),
		"",
		renderHeadlineCards(r, m.width),
		"",
		renderCategoryDiffs(r.CategoryDiffs()),
		"",
		components.NewSpendingBar(r.From.Name+" a month", r.SpendingFrom).WithWidth(barWidth).Render(),
		"",
		components.NewSpendingBar(r.To.Name+" a month", r.SpendingTo).WithWidth(barWidth).Render(),
	}

	if m.required != nil {
		sections = append(sections, "", renderRequiredSalary(m.required, r.To.Name))
	}
	if quality := renderQuality(r); quality != "" {
		sections = append(sections, "", quality)
	}
	sections = append(sections, "", tuistyles.HelpDescStyle.Render("ESC back • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderDetailHeader(r *compare.Report) string {
	title := tuistyles.TitleStyle.Render(fmt.Sprintf("%s → %s", r.From.Name, r.To.Name))

	basis := "local median salaries"
	if r.IsPersonalised {
		basis = "your salary of " + output.FormatCurrency(r.SalaryFrom, false)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		tuistyles.VerdictStyle(r.Verdict).Bold(true).Render(r.Verdict.Label())+tuistyles.SubtitleStyle.Render("  using "+basis),
	)
}

func renderHeadlineCards(r *compare.Report, width int) string {
	cards := []*components.MetricCard{
		components.NewDiffCard("Per year", r.TotalAnnualDiff),
		components.NewMetricCard("Over five years", output.FormatCurrency(r.FiveYearDiff, true)),
		components.NewMetricCard("Left over a month", output.FormatCurrency(r.MonthlyDisposableTo, false)).
			WithNote(fmt.Sprintf("%s now, %s", output.FormatCurrency(r.MonthlyDisposableFrom, false), r.AffordabilityTo)),
	}

	columns := 3
	if width > 0 && width < 90 {
		columns = 2
	}
	return components.MetricGrid(cards, columns)
}

func renderCategoryDiffs(diffs []domain.CategoryDiff) string {
	var sb strings.Builder
	sb.WriteString(tuistyles.MetricLabelStyle.Render("Where the difference comes from"))
	for _, d := range diffs {
		if d.Amount.IsZero() {
			continue
		}
		amount := output.FormatCurrency(d.Amount, true)
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %-16s %s", d.Name, tuistyles.MetricTrendStyle(d.Amount.IsPositive()).Render(amount)))
	}
	return sb.String()
}

func renderRequiredSalary(res *breakeven.Result, toName string) string {
	label := tuistyles.MetricLabelStyle.Render(fmt.Sprintf("To stay level in %s you need ", toName))
	value := tuistyles.MetricValueStyle.Render(output.FormatCurrency(res.RequiredSalary, false))
	median := tuistyles.SubtitleStyle.Render(fmt.Sprintf(" (%s the local median)", output.FormatCurrency(res.MedianDiff, true)))
	return label + value + median
}

func renderQuality(r *compare.Report) string {
	var lines []string
	if r.Schools != nil {
		lines = append(lines, fmt.Sprintf("  Good or outstanding schools  %.0f%% → %.0f%%", r.Schools.FromCombinedPct, r.Schools.ToCombinedPct))
	}
	if r.Crime != nil {
		lines = append(lines, fmt.Sprintf("  Crime per 1,000              %.1f → %.1f", r.Crime.FromRate, r.Crime.ToRate))
	}
	if !r.PintSavings.IsZero() {
		lines = append(lines, fmt.Sprintf("  Two pints a week             %s a year", output.FormatCurrency(r.PintSavings, true)))
	}
	if len(lines) == 0 {
		return ""
	}
	return tuistyles.MetricLabelStyle.Render("Quality of life") + "\n" + strings.Join(lines, "\n")
}
