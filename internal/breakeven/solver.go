package breakeven

import (
	"fmt"

	"github.com/moovely/greener/internal/calculation"
	"github.com/moovely/greener/internal/compare"
	"github.com/moovely/greener/internal/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// Solver finds the salary that keeps disposable income level across a move.
// Take-home pay is piecewise linear in gross salary, so the answer comes
// from inverting one segment rather than from a search.
type Solver struct {
	Engine  *compare.Engine
	Options SolverOptions
}

// NewSolver creates a new required-salary solver
func NewSolver(engine *compare.Engine, options SolverOptions) *Solver {
	if engine == nil {
		engine = compare.NewEngine(nil)
	}
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *compare.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// RequiredSalary returns the gross salary needed in to for the monthly
// disposable income currently achieved in from
func (s *Solver) RequiredSalary(from, to domain.Location, opts domain.PersonalisationOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, &BreakEvenError{
			Operation: "required_salary",
			Message:   "invalid personalisation options",
			Cause:     err,
		}
	}

	tc := s.Engine.TaxCalc
	current := compare.SalaryFor(from, opts)

	target := tc.NetPay(current, from.Country).Div(monthsPerYear).Sub(compare.MonthlyEssentials(from, opts))
	requiredNet := target.Add(compare.MonthlyEssentials(to, opts)).Mul(monthsPerYear)

	gross, low, high, err := s.GrossForNet(requiredNet, to.Country)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "required_salary",
			Message:   fmt.Sprintf("cannot invert take-home for %s", to.ID),
			Cause:     err,
		}
	}

	if gross.IsPositive() {
		achieved := tc.NetPay(gross, to.Country)
		if gap := achieved.Sub(requiredNet).Abs(); gap.GreaterThan(s.Options.Tolerance) {
			s.Engine.Logger.Warnf("required salary for %s misses target take-home by %s", to.ID, gap.StringFixed(2))
		}
	}

	required := calculation.RoundPounds(gross)
	result := &Result{
		FromID:                  from.ID,
		ToID:                    to.ID,
		CurrentSalary:           current,
		TargetMonthlyDisposable: target,
		RequiredTakeHome:        requiredNet,
		RequiredSalary:          required,
		ToMedianSalary:          to.MedianSalary,
		MedianDiff:              required.Sub(to.MedianSalary),
		SegmentLow:              low,
		SegmentHigh:             high,
	}

	switch {
	case result.MedianDiff.IsPositive():
		result.Side = SideAbove
	case result.MedianDiff.IsNegative():
		result.Side = SideBelow
	default:
		result.Side = SideEqual
	}

	s.Engine.Logger.Debugf("required salary %s -> %s: target=%s net=%s gross=%s",
		from.ID, to.ID, target.StringFixed(2), requiredNet.StringFixed(2), gross.StringFixed(2))

	return result, nil
}

// GrossForNet inverts the annual take-home curve. It returns the unrounded
// gross salary and the bounds of the segment it was found in. A non-positive
// target needs no salary.
func (s *Solver) GrossForNet(net decimal.Decimal, country domain.Country) (gross, low decimal.Decimal, high *decimal.Decimal, err error) {
	if !net.IsPositive() {
		return decimal.Zero, decimal.Zero, nil, nil
	}

	tc := s.Engine.TaxCalc
	points := tc.Breakpoints(country)
	if len(points) == 0 {
		return decimal.Zero, decimal.Zero, nil, fmt.Errorf("no breakpoints for %s", country)
	}

	prevGross := points[0]
	prevNet := tc.NetPay(prevGross, country)
	for _, g := range points[1:] {
		n := tc.NetPay(g, country)
		if net.LessThanOrEqual(n) {
			upper := g
			return interpolate(prevGross, prevNet, g, n, net), prevGross, &upper, nil
		}
		prevGross, prevNet = g, n
	}

	// Past the last breakpoint the marginal rate is constant
	step := s.Options.BeyondStep
	if !step.IsPositive() {
		step = DefaultSolverOptions().BeyondStep
	}
	slope := tc.NetPay(prevGross.Add(step), country).Sub(prevNet).Div(step)
	if !slope.IsPositive() {
		return decimal.Zero, decimal.Zero, nil, fmt.Errorf("take-home does not increase above %s", prevGross.StringFixed(0))
	}
	return prevGross.Add(net.Sub(prevNet).Div(slope)), prevGross, nil, nil
}

func interpolate(g0, n0, g1, n1, target decimal.Decimal) decimal.Decimal {
	rise := n1.Sub(n0)
	if rise.IsZero() {
		return g0
	}
	return g0.Add(target.Sub(n0).Mul(g1.Sub(g0)).Div(rise))
}
