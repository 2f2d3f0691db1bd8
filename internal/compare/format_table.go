package compare

import (
	"fmt"
	"strings"

	"github.com/moovely/greener/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a comparison report as a console table
type TableFormatter struct{}

const (
	labelWidth = 26
	colWidth   = 18
	lineWidth  = 80
)

// Format generates a side-by-side table with the annual breakdown
func (tf *TableFormatter) Format(r *Report) (string, error) {
	var sb strings.Builder

	// Header
	sb.WriteString("IS THE GRASS GREENER?\n")
	sb.WriteString(strings.Repeat("=", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Moving from %s to %s\n", r.From.Name, r.To.Name))
	sb.WriteString(fmt.Sprintf("Salary basis: %s\n", tf.salaryBasis(r)))
	sb.WriteString(fmt.Sprintf("Household: %s-bed, %s, childcare %s, lifestyle x%s\n",
		r.Options.BedSize, r.Options.CommuteType, yesNo(r.Options.IncludeChildcare),
		r.Options.LifestyleMultiplier.String()))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "", colWidth, tf.truncate(r.From.Name, colWidth), colWidth, tf.truncate(r.To.Name, colWidth)))
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	tf.row(&sb, "Salary", r.SalaryFrom, r.SalaryTo)
	tf.row(&sb, "Income tax", r.TakeHomeFrom.IncomeTax, r.TakeHomeTo.IncomeTax)
	tf.row(&sb, "National Insurance", r.TakeHomeFrom.NationalInsurance, r.TakeHomeTo.NationalInsurance)
	tf.row(&sb, "Take-home (annual)", r.TakeHomeFrom.TakeHome, r.TakeHomeTo.TakeHome)
	tf.row(&sb, "Take-home (monthly)", r.TakeHomeFrom.MonthlyTakeHome, r.TakeHomeTo.MonthlyTakeHome)
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "Effective rate",
		colWidth, output.FormatPercentage(r.TakeHomeFrom.EffectiveRate),
		colWidth, output.FormatPercentage(r.TakeHomeTo.EffectiveRate)))
	tf.row(&sb, "Monthly disposable", r.MonthlyDisposableFrom, r.MonthlyDisposableTo)
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "Affordability",
		colWidth, string(r.AffordabilityFrom), colWidth, string(r.AffordabilityTo)))
	sb.WriteString(strings.Repeat("=", lineWidth) + "\n")

	// Annual deltas
	sb.WriteString("\nANNUAL DIFFERENCE (positive means better off after moving)\n")
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	for _, c := range r.CategoryDiffs() {
		sb.WriteString(fmt.Sprintf("  %-*s %*s\n", labelWidth-2, c.Name, colWidth, output.FormatCurrency(c.Amount, true)))
	}
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("  %-*s %*s\n", labelWidth-2, "Total", colWidth, output.FormatCurrency(r.TotalAnnualDiff, true)))
	sb.WriteString(fmt.Sprintf("  %-*s %*s\n", labelWidth-2, "Over 5 years (4% growth)", colWidth, output.FormatCurrency(r.FiveYearDiff, true)))
	sb.WriteString(fmt.Sprintf("\nVerdict: %s\n", r.Verdict.Label()))

	// Quality of life
	if r.Schools != nil || r.Crime != nil || !r.PintSavings.IsZero() {
		sb.WriteString("\nQUALITY OF LIFE\n")
		sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
		if r.Schools != nil {
			sb.WriteString(fmt.Sprintf("  Good or outstanding schools: %.0f%% vs %.0f%% (%s)\n",
				r.Schools.FromCombinedPct, r.Schools.ToCombinedPct, tf.favours(r.Schools.Better, r)))
		}
		if r.Crime != nil {
			sb.WriteString(fmt.Sprintf("  Crime per 1,000: %.1f vs %.1f (%s)\n",
				r.Crime.FromRate, r.Crime.ToRate, tf.favours(r.Crime.Safer, r)))
		}
		if !r.PintSavings.IsZero() {
			sb.WriteString(fmt.Sprintf("  Two pints a week: %s a year\n", output.FormatCurrency(r.PintSavings, true)))
		}
	}

	return sb.String(), nil
}

func (tf *TableFormatter) row(sb *strings.Builder, label string, from, to decimal.Decimal) {
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, label,
		colWidth, output.FormatCurrency(from, false),
		colWidth, output.FormatCurrency(to, false)))
}

func (tf *TableFormatter) salaryBasis(r *Report) string {
	if r.IsPersonalised {
		return "your salary of " + output.FormatCurrency(r.SalaryFrom, false) + " in both places"
	}
	return "local median salaries"
}

func (tf *TableFormatter) favours(side Side, r *Report) string {
	switch side {
	case SideFrom:
		return r.From.Name + " better"
	case SideTo:
		return r.To.Name + " better"
	default:
		return "no difference"
	}
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(r *Report) string {
	return fmt.Sprintf("%s -> %s: %s a year (%s)",
		r.From.Name, r.To.Name, output.FormatCurrency(r.TotalAnnualDiff, true), r.Verdict.Label())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
