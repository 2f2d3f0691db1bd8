package compare

import (
	"github.com/moovely/greener/internal/calculation"
	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	monthsPerYear       = decimal.NewFromInt(12)
	weeksPerYear        = decimal.NewFromInt(52)
	weeksPerMonth       = decimal.NewFromFloat(4.33)
	pintsPerMonth       = decimal.NewFromInt(8)
	cinemaTripsPerMonth = decimal.NewFromInt(2)

	// VerdictThreshold is the annual difference beyond which a move counts
	// as greener or not greener
	VerdictThreshold = decimal.NewFromInt(500)

	// ProjectionGrowth is the yearly growth applied to invested savings
	ProjectionGrowth = decimal.NewFromFloat(1.04)
	// ProjectionYears is the length of the compounded projection
	ProjectionYears = 5
)

// Engine compares the cost of living between two locations
type Engine struct {
	TaxCalc *calculation.TaxCalculator
	Logger  calculation.Logger
}

// NewEngine creates a comparison engine. A nil tax calculator uses the
// default rules.
func NewEngine(taxCalc *calculation.TaxCalculator) *Engine {
	if taxCalc == nil {
		taxCalc = calculation.NewTaxCalculator()
	}
	return &Engine{
		TaxCalc: taxCalc,
		Logger:  calculation.NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its tax calculator
func (e *Engine) SetLogger(logger calculation.Logger) {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	e.Logger = logger
	e.TaxCalc.SetLogger(logger)
}

// QuickResult is the ranking primitive: the annual difference and verdict
// under default options
type QuickResult struct {
	AnnualDiff decimal.Decimal `json:"annualDiff"`
	Verdict    domain.Verdict  `json:"verdict"`
}

// costs are the monthly figures for one side of a comparison, after the
// options have been applied
type costs struct {
	Rent      decimal.Decimal
	Commute   decimal.Decimal
	Childcare decimal.Decimal
	Lifestyle decimal.Decimal
}

func sideCosts(loc domain.Location, opts domain.PersonalisationOptions) costs {
	c := costs{
		Rent:      loc.RentFor(opts.BedSize),
		Commute:   loc.CommuteMonthly,
		Childcare: decimal.Zero,
		Lifestyle: LifestyleMonthly(loc, opts.LifestyleMultiplier),
	}
	if opts.CommuteType == domain.CommuteWFH {
		c.Commute = decimal.Zero
	}
	if opts.IncludeChildcare {
		c.Childcare = loc.ChildcareMonthly
	}
	return c
}

// LifestyleMonthly is eight pints, two cinema trips and a gym membership,
// scaled by the multiplier
func LifestyleMonthly(loc domain.Location, multiplier decimal.Decimal) decimal.Decimal {
	base := loc.PintOfBeer.Mul(pintsPerMonth).
		Add(loc.CinemaTicket.Mul(cinemaTripsPerMonth)).
		Add(loc.GymMembership)
	return base.Mul(multiplier)
}

// MonthlyEssentials is the unrounded monthly essential spend in a location.
// Lifestyle spend is not essential.
func MonthlyEssentials(loc domain.Location, opts domain.PersonalisationOptions) decimal.Decimal {
	c := sideCosts(loc, opts)
	return c.Rent.
		Add(loc.CouncilTaxBandD.Div(monthsPerYear)).
		Add(c.Commute).
		Add(loc.GroceryBasketWeekly.Mul(weeksPerMonth)).
		Add(loc.EnergyMonthly).
		Add(loc.BroadbandMonthly).
		Add(c.Childcare)
}

// SalaryFor returns the salary basis for a location: the custom salary when
// set, otherwise the location's median
func SalaryFor(loc domain.Location, opts domain.PersonalisationOptions) decimal.Decimal {
	if opts.CustomSalary != nil {
		return *opts.CustomSalary
	}
	return loc.MedianSalary
}

// CompareLocations computes the full annual and monthly comparison of
// moving from one location to another. Deltas are positive when the move
// benefits the household.
func (e *Engine) CompareLocations(from, to domain.Location, opts domain.PersonalisationOptions) domain.ComparisonResult {
	salaryFrom := SalaryFor(from, opts)
	salaryTo := SalaryFor(to, opts)

	taxFrom := e.TaxCalc.CalculateTax(salaryFrom, from.Country)
	taxTo := e.TaxCalc.CalculateTax(salaryTo, to.Country)

	costFrom := sideCosts(from, opts)
	costTo := sideCosts(to, opts)

	result := domain.ComparisonResult{
		From:           from,
		To:             to,
		SalaryFrom:     salaryFrom,
		SalaryTo:       salaryTo,
		TakeHomeFrom:   taxFrom,
		TakeHomeTo:     taxTo,
		SalaryDiff:     salaryTo.Sub(salaryFrom),
		TakeHomeDiff:   taxTo.TakeHome.Sub(taxFrom.TakeHome),
		RentDiff:       costFrom.Rent.Sub(costTo.Rent).Mul(monthsPerYear),
		CouncilTaxDiff: from.CouncilTaxBandD.Sub(to.CouncilTaxBandD),
		CommuteDiff:    costFrom.Commute.Sub(costTo.Commute).Mul(monthsPerYear),
		ChildcareDiff:  costFrom.Childcare.Sub(costTo.Childcare).Mul(monthsPerYear),
		GroceryDiff:    from.GroceryBasketWeekly.Sub(to.GroceryBasketWeekly).Mul(weeksPerYear),
		EnergyDiff:     from.EnergyMonthly.Sub(to.EnergyMonthly).Mul(monthsPerYear),
		LifestyleDiff:  costFrom.Lifestyle.Sub(costTo.Lifestyle).Mul(monthsPerYear),
		IsPersonalised: opts.IsPersonalised(),
		Options:        opts,
	}

	total := decimal.Zero
	for _, c := range result.CategoryDiffs() {
		total = total.Add(c.Amount)
	}

	disposableFrom := taxFrom.MonthlyTakeHome.Sub(MonthlyEssentials(from, opts))
	disposableTo := taxTo.MonthlyTakeHome.Sub(MonthlyEssentials(to, opts))

	result.TotalAnnualDiff = calculation.RoundPounds(total)
	result.Verdict = ClassifyVerdict(total)
	result.FiveYearDiff = FiveYearProjection(total)
	result.MonthlyDisposableFrom = calculation.RoundPounds(disposableFrom)
	result.MonthlyDisposableTo = calculation.RoundPounds(disposableTo)
	result.SpendingFrom = spendingBreakdown(from, costFrom, disposableFrom)
	result.SpendingTo = spendingBreakdown(to, costTo, disposableTo)

	e.Logger.Debugf("compare %s -> %s: total=%s verdict=%s",
		from.ID, to.ID, total.StringFixed(2), result.Verdict)

	return result
}

// QuickCompare compares under default options with an optional custom
// salary
func (e *Engine) QuickCompare(home, candidate domain.Location, customSalary *decimal.Decimal) QuickResult {
	opts := domain.DefaultOptions()
	if customSalary != nil {
		opts = opts.WithCustomSalary(*customSalary)
	}
	r := e.CompareLocations(home, candidate, opts)
	return QuickResult{AnnualDiff: r.TotalAnnualDiff, Verdict: r.Verdict}
}

// ClassifyVerdict maps an unrounded annual difference to a verdict
func ClassifyVerdict(total decimal.Decimal) domain.Verdict {
	switch {
	case total.GreaterThan(VerdictThreshold):
		return domain.VerdictGreener
	case total.LessThan(VerdictThreshold.Neg()):
		return domain.VerdictNotGreener
	default:
		return domain.VerdictSame
	}
}

// FiveYearProjection compounds the absolute annual difference at 4% for
// five years and re-applies the sign. A zero difference projects to zero.
func FiveYearProjection(total decimal.Decimal) decimal.Decimal {
	annual := total.Abs()
	acc := decimal.Zero
	for i := 0; i < ProjectionYears; i++ {
		acc = acc.Add(annual).Mul(ProjectionGrowth)
	}
	projected := calculation.RoundPounds(acc)
	if total.IsPositive() {
		return projected
	}
	return projected.Neg()
}

func spendingBreakdown(loc domain.Location, c costs, disposable decimal.Decimal) domain.SpendingBreakdown {
	return domain.SpendingBreakdown{
		Rent:       c.Rent,
		CouncilTax: calculation.RoundPounds(loc.CouncilTaxBandD.Div(monthsPerYear)),
		Commute:    c.Commute,
		Groceries:  calculation.RoundPounds(loc.GroceryBasketWeekly.Mul(weeksPerMonth)),
		Energy:     loc.EnergyMonthly,
		Childcare:  c.Childcare,
		Lifestyle:  calculation.RoundPounds(c.Lifestyle),
		Disposable: calculation.RoundPounds(disposable),
	}
}
