package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
)

// Report bundles a comparison with its quality-of-life extras for display
type Report struct {
	domain.ComparisonResult

	AffordabilityFrom AffordabilityBand  `json:"affordabilityFrom"`
	AffordabilityTo   AffordabilityBand  `json:"affordabilityTo"`
	Schools           *SchoolsComparison `json:"schools,omitempty"`
	Crime             *CrimeComparison   `json:"crime,omitempty"`
	PintSavings       decimal.Decimal    `json:"pintSavings"`
	Slug              string             `json:"slug"`
}

// BuildReport runs the comparison and gathers the extras
func (e *Engine) BuildReport(from, to domain.Location, opts domain.PersonalisationOptions) *Report {
	result := e.CompareLocations(from, to, opts)
	return &Report{
		ComparisonResult:  result,
		AffordabilityFrom: Affordability(result.MonthlyDisposableFrom),
		AffordabilityTo:   Affordability(result.MonthlyDisposableTo),
		Schools:           CompareSchools(from, to),
		Crime:             CompareCrime(from, to),
		PintSavings:       PintSavings(from, to),
		Slug:              ComparisonSlug(from.ID, to.ID),
	}
}

// Formatter renders a comparison report
type Formatter interface {
	Format(report *Report) (string, error)
}

var formatters = map[string]func() Formatter{
	"table": func() Formatter { return &TableFormatter{} },
	"json":  func() Formatter { return &JSONFormatter{Pretty: true} },
	"csv":   func() Formatter { return &CSVFormatter{} },
	"html":  func() Formatter { return &HTMLFormatter{} },
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string) (Formatter, error) {
	f, ok := formatters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f(), nil
}

// FormatNames lists the registered formatter names
func FormatNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
