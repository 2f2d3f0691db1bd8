package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats a comparison report as CSV, one row per category
type CSVFormatter struct{}

// Format generates CSV output for a comparison report
func (cf *CSVFormatter) Format(r *Report) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"From", "To", "Category", "Annual Difference"}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, c := range r.CategoryDiffs() {
		if err := writer.Write([]string{r.From.ID, r.To.ID, c.Name, c.Amount.StringFixed(2)}); err != nil {
			return "", err
		}
	}

	summary := [][]string{
		{r.From.ID, r.To.ID, "Total", r.TotalAnnualDiff.StringFixed(2)},
		{r.From.ID, r.To.ID, "Five year projection", r.FiveYearDiff.StringFixed(2)},
		{r.From.ID, r.To.ID, "Monthly disposable (from)", r.MonthlyDisposableFrom.StringFixed(2)},
		{r.From.ID, r.To.ID, "Monthly disposable (to)", r.MonthlyDisposableTo.StringFixed(2)},
		{r.From.ID, r.To.ID, "Verdict", string(r.Verdict)},
	}
	if err := writer.WriteAll(summary); err != nil {
		return "", err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
