package breakeven

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if !opts.Tolerance.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected tolerance 1, got %s", opts.Tolerance.String())
	}
	if !opts.BeyondStep.IsPositive() {
		t.Errorf("Expected positive beyond step, got %s", opts.BeyondStep.String())
	}
}

func TestResult_SalaryChange(t *testing.T) {
	r := &Result{
		CurrentSalary:  decimal.NewFromInt(44000),
		RequiredSalary: decimal.NewFromInt(21851),
	}

	if !r.SalaryChange().Equal(decimal.NewFromInt(-22149)) {
		t.Errorf("Expected -22149, got %s", r.SalaryChange().String())
	}
}

func TestBreakEvenError(t *testing.T) {
	// Test error without cause
	err := &BreakEvenError{
		Operation: "test_op",
		Message:   "test message",
	}

	expected := "test_op: test message"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	// Test error with cause
	causeErr := errors.New("unknown bed size \"four\"")

	err = &BreakEvenError{
		Operation: "required_salary",
		Message:   "invalid personalisation options",
		Cause:     causeErr,
	}

	expectedWithCause := "required_salary: invalid personalisation options: unknown bed size \"four\""
	if err.Error() != expectedWithCause {
		t.Errorf("Expected error message '%s', got '%s'", expectedWithCause, err.Error())
	}

	// Test unwrap
	if err.Unwrap() != causeErr {
		t.Error("Unwrap() should return the cause error")
	}
	if !errors.Is(err, causeErr) {
		t.Error("errors.Is should find the cause")
	}
}
