package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/moovely/greener/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a required-salary result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("REQUIRED SALARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Moving from:          %s\n", result.FromID))
	sb.WriteString(fmt.Sprintf("Moving to:            %s\n", result.ToID))
	sb.WriteString(fmt.Sprintf("Current salary:       %s\n", output.FormatCurrency(result.CurrentSalary, false)))
	sb.WriteString(fmt.Sprintf("Monthly disposable:   %s\n", output.FormatCurrency(result.TargetMonthlyDisposable, false)))
	sb.WriteString("\n")

	sb.WriteString("TO STAY LEVEL\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Required salary:      %s (%s)\n",
		output.FormatCurrency(result.RequiredSalary, false),
		output.FormatCurrency(result.SalaryChange(), true)))
	sb.WriteString(fmt.Sprintf("Required take-home:   %s a year\n", output.FormatCurrency(result.RequiredTakeHome, false)))
	sb.WriteString(fmt.Sprintf("Local median:         %s\n", output.FormatCurrency(result.ToMedianSalary, false)))
	sb.WriteString(fmt.Sprintf("Against the median:   %s (%s)\n",
		output.FormatCurrency(result.MedianDiff, true), tf.describeSide(result.Side)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti formats results across several destinations
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("REQUIRED SALARIES FROM %s\n", strings.ToUpper(result.FromID)))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %15s %15s %15s\n", "Destination", "Required", "Change", "vs Median"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i := range result.Results {
		r := &result.Results[i]
		sb.WriteString(fmt.Sprintf("%-20s %15s %15s %15s\n",
			tf.truncate(r.ToID, 20),
			output.FormatCurrencyShort(r.RequiredSalary),
			tf.signedShort(r.SalaryChange()),
			tf.signedShort(r.MedianDiff)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("SUMMARY\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti formats multi-destination results as JSON
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) describeSide(side MedianSide) string {
	switch side {
	case SideAbove:
		return "above the local median"
	case SideBelow:
		return "below the local median"
	default:
		return "exactly the local median"
	}
}

func (tf *TableFormatter) signedShort(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatCurrencyShort(d)
	}
	return output.FormatCurrencyShort(d)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
