package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MassBalanceValidation is an append-only audit entry for one validation run
// against a transformation event. A transformation may accumulate several as
// it is re-validated; none are ever updated in place.
type MassBalanceValidation struct {
	ID                  string
	TransformationID    string
	InputQuantity       decimal.Decimal
	OutputQuantity      decimal.Decimal
	ExpectedOutput      decimal.Decimal
	WasteQuantity       decimal.Decimal // negative on over-yield; recorded as-is
	BalanceRatio        decimal.Decimal
	DeviationPercentage decimal.Decimal
	Tolerance           decimal.Decimal
	IsBalanced          bool
	Notes               string
	CreatedBy           string
	CreatedAt           time.Time
}
