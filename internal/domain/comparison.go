package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBreakdown is the full pay breakdown for one gross salary in one
// jurisdiction. Currency fields are whole pounds.
type TaxBreakdown struct {
	Gross             decimal.Decimal `json:"gross"`
	Country           Country         `json:"country"`
	PersonalAllowance decimal.Decimal `json:"personalAllowance"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	NationalInsurance decimal.Decimal `json:"nationalInsurance"`
	TakeHome          decimal.Decimal `json:"takeHome"`
	MonthlyTakeHome   decimal.Decimal `json:"monthlyTakeHome"`
	EffectiveRate     decimal.Decimal `json:"effectiveRate"` // percent of gross, 1 dp
}

// Verdict classifies the total annual difference of a move
type Verdict string

const (
	VerdictGreener    Verdict = "greener"
	VerdictNotGreener Verdict = "not-greener"
	VerdictSame       Verdict = "about-the-same"
)

// Label returns a human-readable form of the verdict
func (v Verdict) Label() string {
	switch v {
	case VerdictGreener:
		return "Greener"
	case VerdictNotGreener:
		return "Not greener"
	default:
		return "About the same"
	}
}

// SpendingBreakdown is a per-location monthly split for charts. Each field
// is rounded on its own, so the parts need not sum exactly.
type SpendingBreakdown struct {
	Rent       decimal.Decimal `json:"rent"`
	CouncilTax decimal.Decimal `json:"councilTax"`
	Commute    decimal.Decimal `json:"commute"`
	Groceries  decimal.Decimal `json:"groceries"`
	Energy     decimal.Decimal `json:"energy"`
	Childcare  decimal.Decimal `json:"childcare"`
	Lifestyle  decimal.Decimal `json:"lifestyle"`
	Disposable decimal.Decimal `json:"disposable"`
}

// ComparisonResult is the outcome of moving from one location to another.
// Annual category deltas are positive when the move is a financial benefit.
type ComparisonResult struct {
	From Location `json:"from"`
	To   Location `json:"to"`

	SalaryFrom   decimal.Decimal `json:"salaryFrom"`
	SalaryTo     decimal.Decimal `json:"salaryTo"`
	TakeHomeFrom TaxBreakdown    `json:"takeHomeFrom"`
	TakeHomeTo   TaxBreakdown    `json:"takeHomeTo"`

	SalaryDiff     decimal.Decimal `json:"salaryDiff"`
	TakeHomeDiff   decimal.Decimal `json:"takeHomeDiff"`
	RentDiff       decimal.Decimal `json:"rentDiff"`
	CouncilTaxDiff decimal.Decimal `json:"councilTaxDiff"`
	CommuteDiff    decimal.Decimal `json:"commuteDiff"`
	ChildcareDiff  decimal.Decimal `json:"childcareDiff"`
	GroceryDiff    decimal.Decimal `json:"groceryDiff"`
	EnergyDiff     decimal.Decimal `json:"energyDiff"`
	LifestyleDiff  decimal.Decimal `json:"lifestyleDiff"`

	TotalAnnualDiff       decimal.Decimal `json:"totalAnnualDiff"`
	MonthlyDisposableFrom decimal.Decimal `json:"monthlyDisposableFrom"`
	MonthlyDisposableTo   decimal.Decimal `json:"monthlyDisposableTo"`
	Verdict               Verdict         `json:"verdict"`
	FiveYearDiff          decimal.Decimal `json:"fiveYearDiff"`

	IsPersonalised bool                   `json:"isPersonalised"`
	Options        PersonalisationOptions `json:"options"`

	SpendingFrom SpendingBreakdown `json:"spendingFrom"`
	SpendingTo   SpendingBreakdown `json:"spendingTo"`
}

// CategoryDiffs returns the deltas that make up TotalAnnualDiff, in display order
func (r ComparisonResult) CategoryDiffs() []CategoryDiff {
	return []CategoryDiff{
		{Name: "Take-home pay", Amount: r.TakeHomeDiff},
		{Name: "Rent", Amount: r.RentDiff},
		{Name: "Council tax", Amount: r.CouncilTaxDiff},
		{Name: "Commute", Amount: r.CommuteDiff},
		{Name: "Childcare", Amount: r.ChildcareDiff},
		{Name: "Groceries", Amount: r.GroceryDiff},
		{Name: "Energy", Amount: r.EnergyDiff},
		{Name: "Lifestyle", Amount: r.LifestyleDiff},
	}
}

// CategoryDiff is one named annual delta
type CategoryDiff struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}
