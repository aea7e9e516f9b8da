// Package massbalance implements the tolerance-based mass-balance check for
// transformation events: total output against the input scaled by an expected
// yield ratio.
package massbalance

import (
	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/domain"
)

// DefaultTolerance is the allowed relative deviation of the balance ratio.
var DefaultTolerance = decimal.NewFromFloat(0.05)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Result captures one validation run. WasteQuantity can be negative on
// over-yield; OverYield marks that case without changing IsBalanced.
type Result struct {
	IsBalanced          bool
	BalanceRatio        decimal.Decimal // total output / expected output, 0 when expected is 0
	DeviationPercentage decimal.Decimal
	ExpectedOutput      decimal.Decimal
	TotalOutput         decimal.Decimal
	WasteQuantity       decimal.Decimal
	OverYield           bool
	Tolerance           decimal.Decimal
}

// Validate checks total output against input * expectedYieldRatio.
// tolerance defaults to DefaultTolerance when zero. The check is pure: it
// never mutates batches; persisting the audit record is the caller's job.
func Validate(inputQuantity decimal.Decimal, outputQuantities []decimal.Decimal, expectedYieldRatio, tolerance decimal.Decimal) (*Result, error) {
	if inputQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !expectedYieldRatio.IsPositive() || expectedYieldRatio.GreaterThan(one) {
		return nil, domain.ErrInvalidInput
	}
	if tolerance.IsZero() {
		tolerance = DefaultTolerance
	}
	if !tolerance.IsPositive() || tolerance.GreaterThanOrEqual(one) {
		return nil, domain.ErrInvalidInput
	}

	totalOutput := decimal.Zero
	for _, q := range outputQuantities {
		totalOutput = totalOutput.Add(q)
	}

	expectedOutput := inputQuantity.Mul(expectedYieldRatio)
	balanceRatio := decimal.Zero
	if expectedOutput.IsPositive() {
		balanceRatio = totalOutput.DivRound(expectedOutput, 6)
	}
	deviation := one.Sub(balanceRatio).Abs()
	waste := inputQuantity.Sub(totalOutput)

	return &Result{
		IsBalanced:          deviation.LessThanOrEqual(tolerance),
		BalanceRatio:        balanceRatio,
		DeviationPercentage: deviation.Mul(hundred).Round(4),
		ExpectedOutput:      expectedOutput,
		TotalOutput:         totalOutput,
		WasteQuantity:       waste,
		OverYield:           waste.IsNegative(),
		Tolerance:           tolerance,
	}, nil
}

// FailureError wraps an out-of-tolerance result as a typed domain error for
// callers that choose to treat it as blocking rather than advisory.
func FailureError(r *Result, inputQuantity decimal.Decimal) error {
	if r.IsBalanced {
		return nil
	}
	return domain.NewDomainError(domain.KindMassBalanceFailed,
		"mass balance deviation exceeds tolerance", domain.ErrConflict,
		map[string]any{
			"input":     inputQuantity.String(),
			"output":    r.TotalOutput.String(),
			"expected":  r.ExpectedOutput.String(),
			"deviation": r.DeviationPercentage.String(),
			"tolerance": r.Tolerance.String(),
		})
}
