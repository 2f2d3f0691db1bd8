package compare

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/moovely/greener/internal/output"
	"github.com/shopspring/decimal"
)

// Assumptions lists the fixed modelling assumptions shown in detailed reports
var Assumptions = []string{
	"Tax and National Insurance use the 2025/26 employee rates unless a rules file replaces them",
	"Groceries are a weekly basket over 4.33 weeks a month",
	"Lifestyle is eight pints, two cinema trips and a gym membership a month, times the multiplier",
	"Council tax is Band D",
	fmt.Sprintf("Moves within £%s a year either way are about the same", VerdictThreshold.String()),
	"The five-year figure compounds the annual difference at 4% a year",
}

// HTMLFormatter produces a standalone HTML page for a comparison
type HTMLFormatter struct{}

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   func(d decimal.Decimal) string { return output.FormatCurrency(d, false) },
	// html/template escapes '+', and the formatted amount holds no markup
	"signed": func(d decimal.Decimal) template.HTML { return template.HTML(output.FormatCurrency(d, true)) },
	"pct":    output.FormatPercentage,
	"sign": func(d decimal.Decimal) string {
		switch {
		case d.IsPositive():
			return "up"
		case d.IsNegative():
			return "down"
		}
		return "flat"
	},
}).Parse(htmlTemplateSource))

// Format renders the report through the embedded template
func (hf *HTMLFormatter) Format(r *Report) (string, error) {
	var buf bytes.Buffer
	data := struct {
		*Report
		Basis       string
		Assumptions []string
	}{r, (&TableFormatter{}).salaryBasis(r), Assumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
