package ranking

import (
	"fmt"
	"strings"

	"github.com/moovely/greener/internal/domain"
	"github.com/moovely/greener/internal/output"
)

// FormatTable renders a league table for the given home location
func FormatTable(home domain.Location, entries []Entry, sortBy SortField) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("WHERE IS GREENER THAN %s?\n", strings.ToUpper(home.Name)))
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Sorted by %s\n\n", strings.ToLower(sortBy.Label())))

	if len(entries) == 0 {
		sb.WriteString("No locations match the current filters.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("%-4s %-20s %-24s %12s %12s %14s\n",
		"#", "Location", "Region", "Per year", "Rent", "Verdict"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf("%-4d %-20s %-24s %12s %12s %14s\n",
			i+1,
			truncate(e.Location.Name, 20),
			truncate(string(e.Location.Region), 24),
			output.FormatCurrency(e.AnnualDiff, true),
			output.FormatCurrency(e.Location.RentTwoBed, false),
			e.Verdict.Label()))
	}

	greener := 0
	for _, e := range entries {
		if e.Verdict == domain.VerdictGreener {
			greener++
		}
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d of %d locations are greener than %s\n", greener, len(entries), home.Name))

	return sb.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
