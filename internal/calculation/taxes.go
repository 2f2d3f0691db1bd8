package calculation

import (
	"sort"

	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Figures are point-in-time constants for one tax year (2025/26 by
//    default). No indexing is applied.
//
// 2. Personal allowance tapers by £1 for every £2 above £100,000 and
//    reaches zero at £125,140.
//
// 3. England, Wales and Northern Ireland share the three rest-of-UK bands.
//    Scotland uses six bands. Both are walked by allocateBands.
//
// 4. National Insurance is employee Class 1 only, identical across the UK.
//
// 5. Salary is the only income. No pension contributions, student loans or
//    benefits in kind.

var (
	half    = decimal.NewFromFloat(0.5)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// bandLimit is a marginal band in taxable-income terms
type bandLimit struct {
	Limit     decimal.Decimal
	Rate      decimal.Decimal
	Unbounded bool
}

// TaxCalculator computes UK income tax and National Insurance
type TaxCalculator struct {
	Rules  domain.TaxRules
	Logger Logger
}

// NewTaxCalculator creates a calculator with the default 2025/26 rules
func NewTaxCalculator() *TaxCalculator {
	return NewTaxCalculatorWithRules(domain.DefaultTaxRules())
}

// NewTaxCalculatorWithRules creates a calculator with configurable rules
func NewTaxCalculatorWithRules(rules domain.TaxRules) *TaxCalculator {
	return &TaxCalculator{Rules: rules, Logger: NopLogger{}}
}

// SetLogger sets the logger; nil installs a no-op logger
func (tc *TaxCalculator) SetLogger(l Logger) {
	if l == nil {
		tc.Logger = NopLogger{}
		return
	}
	tc.Logger = l
}

// PersonalAllowance returns the tapered allowance for a gross salary
func (tc *TaxCalculator) PersonalAllowance(gross decimal.Decimal) decimal.Decimal {
	pa := tc.Rules.PersonalAllowance
	if gross.LessThanOrEqual(pa.TaperThreshold) {
		return pa.Amount
	}
	reduced := pa.Amount.Sub(gross.Sub(pa.TaperThreshold).Mul(pa.TaperRate))
	return decimal.Max(decimal.Zero, reduced)
}

// TaxableIncome returns gross salary less the tapered allowance, floored at zero
func (tc *TaxCalculator) TaxableIncome(gross decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, gross.Sub(tc.PersonalAllowance(gross)))
}

// IncomeTax returns unrounded income tax for the jurisdiction
func (tc *TaxCalculator) IncomeTax(gross decimal.Decimal, country domain.Country) decimal.Decimal {
	allowance := tc.PersonalAllowance(gross)
	taxable := decimal.Max(decimal.Zero, gross.Sub(allowance))
	return allocateBands(taxable, tc.bandsFor(country, allowance))
}

// NationalInsurance returns unrounded employee NI. It does not depend on
// the jurisdiction.
func (tc *TaxCalculator) NationalInsurance(gross decimal.Decimal) decimal.Decimal {
	ni := tc.Rules.NationalInsurance
	if gross.LessThanOrEqual(ni.PrimaryThreshold) {
		return decimal.Zero
	}
	if gross.LessThanOrEqual(ni.UpperEarningsLimit) {
		return gross.Sub(ni.PrimaryThreshold).Mul(ni.MainRate)
	}
	main := ni.UpperEarningsLimit.Sub(ni.PrimaryThreshold).Mul(ni.MainRate)
	return main.Add(gross.Sub(ni.UpperEarningsLimit).Mul(ni.UpperRate))
}

// NetPay returns unrounded annual take-home pay
func (tc *TaxCalculator) NetPay(gross decimal.Decimal, country domain.Country) decimal.Decimal {
	return gross.Sub(tc.IncomeTax(gross, country)).Sub(tc.NationalInsurance(gross))
}

// CalculateTax produces the full pay breakdown for a gross salary.
// Negative salaries are a caller error; they are clamped to zero.
func (tc *TaxCalculator) CalculateTax(gross decimal.Decimal, country domain.Country) domain.TaxBreakdown {
	if gross.IsNegative() {
		tc.Logger.Warnf("negative gross salary %s clamped to 0", gross.String())
		gross = decimal.Zero
	}

	allowance := tc.PersonalAllowance(gross)
	taxable := decimal.Max(decimal.Zero, gross.Sub(allowance))
	incomeTax := allocateBands(taxable, tc.bandsFor(country, allowance))
	nationalInsurance := tc.NationalInsurance(gross)
	takeHome := gross.Sub(incomeTax).Sub(nationalInsurance)

	effectiveRate := decimal.Zero
	if gross.IsPositive() {
		effectiveRate = incomeTax.Add(nationalInsurance).Div(gross).Mul(hundred)
	}

	tc.Logger.Debugf("tax %s gross=%s allowance=%s taxable=%s tax=%s ni=%s",
		country, gross.StringFixed(2), allowance.StringFixed(2), taxable.StringFixed(2),
		incomeTax.StringFixed(2), nationalInsurance.StringFixed(2))

	return domain.TaxBreakdown{
		Gross:             gross,
		Country:           country,
		PersonalAllowance: RoundPounds(allowance),
		IncomeTax:         RoundPounds(incomeTax),
		NationalInsurance: RoundPounds(nationalInsurance),
		TakeHome:          RoundPounds(takeHome),
		MonthlyTakeHome:   RoundPounds(takeHome.Div(twelve)),
		EffectiveRate:     RoundHalfUp(effectiveRate, 1),
	}
}

// bandsFor converts the jurisdiction's gross thresholds into taxable-income
// limits. Limits are offset by the standard allowance, except bands marked
// TaperedOffset which use the tapered one.
func (tc *TaxCalculator) bandsFor(country domain.Country, allowance decimal.Decimal) []bandLimit {
	table := tc.Rules.RestOfUK
	if country.UsesScottishRates() {
		table = tc.Rules.Scotland
	} else if !isKnownCountry(country) {
		tc.Logger.Debugf("unknown country %q taxed at rest-of-UK rates", country)
	}

	standard := tc.Rules.PersonalAllowance.Amount
	limits := make([]bandLimit, 0, len(table))
	for _, b := range table {
		if b.Unbounded() {
			limits = append(limits, bandLimit{Rate: b.Rate, Unbounded: true})
			continue
		}
		offset := standard
		if b.TaperedOffset {
			offset = allowance
		}
		limits = append(limits, bandLimit{Limit: b.UpperLimit.Sub(offset), Rate: b.Rate})
	}
	return limits
}

// allocateBands walks an ordered band table, taxing the slice of taxable
// income that falls inside each band at that band's rate
func allocateBands(taxable decimal.Decimal, bands []bandLimit) decimal.Decimal {
	tax := decimal.Zero
	remaining := taxable
	prev := decimal.Zero

	for _, band := range bands {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		inBand := remaining
		if !band.Unbounded {
			width := band.Limit.Sub(prev)
			prev = band.Limit
			if width.LessThanOrEqual(decimal.Zero) {
				continue
			}
			inBand = decimal.Min(remaining, width)
		}
		tax = tax.Add(inBand.Mul(band.Rate))
		remaining = remaining.Sub(inBand)
	}

	return tax
}

// Breakpoints returns the gross salaries, in ascending order, at which the
// marginal rate of take-home pay changes. Take-home is linear between any
// two consecutive breakpoints and beyond the last one.
func (tc *TaxCalculator) Breakpoints(country domain.Country) []decimal.Decimal {
	pa := tc.Rules.PersonalAllowance
	ni := tc.Rules.NationalInsurance

	points := []decimal.Decimal{decimal.Zero, pa.Amount, ni.PrimaryThreshold, ni.UpperEarningsLimit}

	taperEnd := pa.TaperThreshold
	if pa.TaperRate.IsPositive() {
		taperEnd = pa.TaperThreshold.Add(pa.Amount.Div(pa.TaperRate))
		points = append(points, pa.TaperThreshold, taperEnd)
	}

	table := tc.Rules.RestOfUK
	if country.UsesScottishRates() {
		table = tc.Rules.Scotland
	}
	for _, b := range table {
		if b.Unbounded() {
			continue
		}
		if b.TaperedOffset {
			// taxable = gross - allowance and limit = upper - allowance
			points = append(points, b.UpperLimit)
			continue
		}
		points = append(points, tc.grossForTaxable(b.UpperLimit.Sub(pa.Amount), taperEnd))
	}

	sort.Slice(points, func(i, j int) bool { return points[i].LessThan(points[j]) })
	unique := points[:0]
	for _, p := range points {
		if p.IsNegative() || (len(unique) > 0 && p.Equal(unique[len(unique)-1])) {
			continue
		}
		unique = append(unique, p)
	}
	return unique
}

// grossForTaxable inverts TaxableIncome for a positive taxable amount
func (tc *TaxCalculator) grossForTaxable(taxable, taperEnd decimal.Decimal) decimal.Decimal {
	pa := tc.Rules.PersonalAllowance
	if taxable.LessThanOrEqual(pa.TaperThreshold.Sub(pa.Amount)) || !pa.TaperRate.IsPositive() {
		return taxable.Add(pa.Amount)
	}
	if taxable.GreaterThanOrEqual(taperEnd) {
		return taxable
	}
	// gross - (PA - r(gross - T0)) = taxable
	one := decimal.NewFromInt(1)
	return taxable.Add(pa.Amount).Add(pa.TaperRate.Mul(pa.TaperThreshold)).Div(one.Add(pa.TaperRate))
}

func isKnownCountry(c domain.Country) bool {
	for _, known := range domain.Countries {
		if c == known {
			return true
		}
	}
	return false
}

// RoundPounds rounds half up to whole pounds
func RoundPounds(d decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(d, 0)
}

// RoundHalfUp rounds to the given number of decimal places with ties going
// towards positive infinity
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	shift := decimal.New(1, places)
	return d.Mul(shift).Add(half).Floor().Div(shift)
}
