package breakeven

import (
	"github.com/shopspring/decimal"
)

// MedianSide says where a required salary falls against the destination's
// median
type MedianSide string

const (
	SideAbove MedianSide = "above"
	SideBelow MedianSide = "below"
	SideEqual MedianSide = "equal"
)

// Result is the salary needed in the destination to keep the current
// monthly disposable income
type Result struct {
	FromID string `json:"from"`
	ToID   string `json:"to"`

	CurrentSalary           decimal.Decimal `json:"current_salary"`
	TargetMonthlyDisposable decimal.Decimal `json:"target_monthly_disposable"`
	RequiredTakeHome        decimal.Decimal `json:"required_take_home"` // annual, unrounded
	RequiredSalary          decimal.Decimal `json:"required_salary"`

	// Comparison to the destination's own median
	ToMedianSalary decimal.Decimal `json:"to_median_salary"`
	MedianDiff     decimal.Decimal `json:"median_diff"`
	Side           MedianSide      `json:"side"`

	// Gross salary range of the linear segment that was inverted
	SegmentLow  decimal.Decimal  `json:"segment_low"`
	SegmentHigh *decimal.Decimal `json:"segment_high,omitempty"` // nil beyond the last breakpoint
}

// SalaryChange is the required salary relative to the current one
func (r *Result) SalaryChange() decimal.Decimal {
	return r.RequiredSalary.Sub(r.CurrentSalary)
}

// MultiResult holds required salaries for one origin across many
// destinations, cheapest first
type MultiResult struct {
	FromID          string   `json:"from"`
	Results         []Result `json:"results"`
	Cheapest        *Result  `json:"cheapest,omitempty"`
	Dearest         *Result  `json:"dearest,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the solver
type SolverOptions struct {
	// Tolerance is the largest acceptable gap, in pounds a year, between the
	// take-home at the solved salary and the target take-home
	Tolerance decimal.Decimal
	// BeyondStep is the gross increment used to measure the marginal rate
	// above the last breakpoint
	BeyondStep decimal.Decimal
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:  decimal.NewFromInt(1),
		BeyondStep: decimal.NewFromInt(1000),
	}
}

// BreakEvenError represents errors from the required-salary solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
