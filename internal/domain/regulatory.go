package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxRules contains the point-in-time income tax and National Insurance
// figures. The defaults are the 2025/26 tax year; a YAML file can replace
// them wholesale for another year.
type TaxRules struct {
	Metadata          TaxRulesMetadata  `yaml:"metadata" json:"metadata"`
	PersonalAllowance PersonalAllowance `yaml:"personal_allowance" json:"personal_allowance"`
	RestOfUK          []TaxBand         `yaml:"rest_of_uk_bands" json:"rest_of_uk_bands"`
	Scotland          []TaxBand         `yaml:"scottish_bands" json:"scottish_bands"`
	NationalInsurance NIRules           `yaml:"national_insurance" json:"national_insurance"`
}

// TaxRulesMetadata describes where the figures came from
type TaxRulesMetadata struct {
	TaxYear     string `yaml:"tax_year" json:"tax_year"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// PersonalAllowance is the tax-free amount and its high-income taper
type PersonalAllowance struct {
	Amount         decimal.Decimal `yaml:"amount" json:"amount"`
	TaperThreshold decimal.Decimal `yaml:"taper_threshold" json:"taper_threshold"`
	TaperRate      decimal.Decimal `yaml:"taper_rate" json:"taper_rate"` // allowance lost per pound above threshold
}

// TaxBand is one marginal band expressed as a gross-income upper limit.
// A zero UpperLimit means the band is unbounded. TaperedOffset marks bands
// whose taxable-income limit moves with the tapered allowance instead of the
// standard one.
type TaxBand struct {
	Name          string          `yaml:"name" json:"name"`
	UpperLimit    decimal.Decimal `yaml:"upper_limit" json:"upper_limit"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	TaperedOffset bool            `yaml:"tapered_offset,omitempty" json:"tapered_offset,omitempty"`
}

// Unbounded reports whether the band has no upper limit
func (b TaxBand) Unbounded() bool {
	return b.UpperLimit.IsZero()
}

// NIRules holds the employee Class 1 thresholds and rates
type NIRules struct {
	PrimaryThreshold   decimal.Decimal `yaml:"primary_threshold" json:"primary_threshold"`
	UpperEarningsLimit decimal.Decimal `yaml:"upper_earnings_limit" json:"upper_earnings_limit"`
	MainRate           decimal.Decimal `yaml:"main_rate" json:"main_rate"`
	UpperRate          decimal.Decimal `yaml:"upper_rate" json:"upper_rate"`
}

// DefaultTaxRules returns the 2025/26 figures for England, Wales, Northern
// Ireland and Scotland
func DefaultTaxRules() TaxRules {
	return TaxRules{
		Metadata: TaxRulesMetadata{TaxYear: "2025/26", Description: "HMRC rates and thresholds 2025/26"},
		PersonalAllowance: PersonalAllowance{
			Amount:         decimal.NewFromInt(12570),
			TaperThreshold: decimal.NewFromInt(100000),
			TaperRate:      decimal.NewFromFloat(0.5),
		},
		RestOfUK: []TaxBand{
			{Name: "basic", UpperLimit: decimal.NewFromInt(50270), Rate: decimal.NewFromFloat(0.20)},
			{Name: "higher", UpperLimit: decimal.NewFromInt(125140), Rate: decimal.NewFromFloat(0.40), TaperedOffset: true},
			{Name: "additional", Rate: decimal.NewFromFloat(0.45)},
		},
		Scotland: []TaxBand{
			{Name: "starter", UpperLimit: decimal.NewFromInt(14876), Rate: decimal.NewFromFloat(0.19)},
			{Name: "basic", UpperLimit: decimal.NewFromInt(26561), Rate: decimal.NewFromFloat(0.20)},
			{Name: "intermediate", UpperLimit: decimal.NewFromInt(43662), Rate: decimal.NewFromFloat(0.21)},
			{Name: "higher", UpperLimit: decimal.NewFromInt(75000), Rate: decimal.NewFromFloat(0.42)},
			{Name: "advanced", UpperLimit: decimal.NewFromInt(125140), Rate: decimal.NewFromFloat(0.45)},
			{Name: "top", Rate: decimal.NewFromFloat(0.48)},
		},
		NationalInsurance: NIRules{
			PrimaryThreshold:   decimal.NewFromInt(12570),
			UpperEarningsLimit: decimal.NewFromInt(50270),
			MainRate:           decimal.NewFromFloat(0.08),
			UpperRate:          decimal.NewFromFloat(0.02),
		},
	}
}

// Validate checks that the band tables are ordered and terminate in an
// unbounded band
func (r TaxRules) Validate() error {
	if r.PersonalAllowance.Amount.IsNegative() {
		return fmt.Errorf("personal allowance cannot be negative")
	}
	if r.PersonalAllowance.TaperRate.IsNegative() {
		return fmt.Errorf("taper rate cannot be negative")
	}
	if err := validateBands("rest_of_uk_bands", r.RestOfUK, r.PersonalAllowance.Amount); err != nil {
		return err
	}
	if err := validateBands("scottish_bands", r.Scotland, r.PersonalAllowance.Amount); err != nil {
		return err
	}
	ni := r.NationalInsurance
	if ni.UpperEarningsLimit.LessThan(ni.PrimaryThreshold) {
		return fmt.Errorf("national insurance upper earnings limit must not be below the primary threshold")
	}
	if ni.MainRate.IsNegative() || ni.UpperRate.IsNegative() {
		return fmt.Errorf("national insurance rates cannot be negative")
	}
	return nil
}

func validateBands(name string, bands []TaxBand, allowance decimal.Decimal) error {
	if len(bands) == 0 {
		return fmt.Errorf("%s: at least one band is required", name)
	}
	prev := allowance
	for i, b := range bands {
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s[%d]: rate must be in [0, 1), got %s", name, i, b.Rate.String())
		}
		last := i == len(bands)-1
		if b.Unbounded() != last {
			return fmt.Errorf("%s[%d]: only the final band may be unbounded", name, i)
		}
		if !last {
			if b.UpperLimit.LessThanOrEqual(prev) {
				return fmt.Errorf("%s[%d]: upper limit %s must exceed %s", name, i, b.UpperLimit.String(), prev.String())
			}
			prev = b.UpperLimit
		}
	}
	return nil
}
