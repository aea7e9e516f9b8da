package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Transformation types, one per named process along the chain.
const (
	TransformationHarvest       = "harvest"
	TransformationMilling       = "milling"
	TransformationCrushing      = "crushing"
	TransformationRefining      = "refining"
	TransformationFractionation = "fractionation"
	TransformationBlending      = "blending"
	TransformationManufacturing = "manufacturing"
)

// ValidTransformationType reports whether t names a known process.
func ValidTransformationType(t string) bool {
	switch t {
	case TransformationHarvest, TransformationMilling, TransformationCrushing,
		TransformationRefining, TransformationFractionation,
		TransformationBlending, TransformationManufacturing:
		return true
	}
	return false
}

// Transformation event statuses.
const (
	TransformationPlanned    = "planned"
	TransformationInProgress = "in_progress"
	TransformationCompleted  = "completed"
	TransformationValidated  = "validated"
)

// TransformationEvent records converting input batches into output batches
// via a named process. ProcessData holds the role-specific payload (plantation
// harvest data, mill OER parameters, refinery losses, manufacturer recipe);
// it is pre-filled from a per-company-type template and overridden by the caller.
type TransformationEvent struct {
	ID              string
	EventNumber     string // e.g. MILL-20260829-A1B2C3
	CompanyID       string
	Type            string
	Status          string
	ProcessData     json.RawMessage
	InputQuantity   decimal.Decimal
	OutputQuantity  decimal.Decimal
	YieldRatio      decimal.Decimal // OutputQuantity / InputQuantity, 0 when input is 0
	CostPerUnit     decimal.Decimal // draw-down cost divided by output quantity
	TotalCost       decimal.Decimal
	StartTime       time.Time
	EndTime         *time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
