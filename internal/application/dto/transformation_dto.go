package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransformationRequest body for POST /api/transformations.
// ProcessData overrides the role-specific template pre-filled from the
// company type; omitted keys keep their template defaults.
type CreateTransformationRequest struct {
	Type          string          `json:"type"` // harvest, milling, crushing, refining, fractionation, blending, manufacturing
	ProcessData   json.RawMessage `json:"process_data,omitempty"`
	InputProduct  string          `json:"input_product,omitempty"` // name, for the yield-rate lookup
	TotalCost     decimal.Decimal `json:"total_cost,omitempty"` // declared processing cost
	StartTime     *time.Time      `json:"start_time,omitempty"`
	Allocation    *AllocationRequest   `json:"allocation,omitempty"` // draw-down executed with the event
	OutputBatches []CreateBatchRequest `json:"output_batches,omitempty"`
}

// TransformationResponse transformation event payload.
type TransformationResponse struct {
	ID             string          `json:"id"`
	EventNumber    string          `json:"event_number"`
	CompanyID      string          `json:"company_id"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	ProcessData    json.RawMessage `json:"process_data,omitempty"`
	InputQuantity  decimal.Decimal `json:"input_quantity"`
	OutputQuantity decimal.Decimal `json:"output_quantity"`
	YieldRatio     decimal.Decimal `json:"yield_ratio"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	StartTime      time.Time       `json:"start_time"`
	EndTime        *time.Time      `json:"end_time,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TransformationListResponse paged event listing.
type TransformationListResponse struct {
	Items []TransformationResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// ValidateBalanceRequest body for POST /api/transformations/{id}/validate-balance.
// ExpectedYieldRatio overrides the static table lookup when set.
type ValidateBalanceRequest struct {
	InputQuantity      decimal.Decimal   `json:"input_quantity"`
	OutputQuantities   []decimal.Decimal `json:"output_quantities"`
	InputProduct       string            `json:"input_product,omitempty"`
	ExpectedYieldRatio *decimal.Decimal  `json:"expected_yield_ratio,omitempty"`
	Tolerance          *decimal.Decimal  `json:"tolerance,omitempty"`
	Notes              string            `json:"notes,omitempty"`
}

// MassBalanceResponse one validation outcome. Out-of-tolerance results are
// recorded, not rejected; IsBalanced tells the caller which case this is.
type MassBalanceResponse struct {
	ID                  string          `json:"id,omitempty"`
	TransformationID    string          `json:"transformation_id"`
	IsBalanced          bool            `json:"is_balanced"`
	BalanceRatio        decimal.Decimal `json:"balance_ratio"`
	DeviationPercentage decimal.Decimal `json:"deviation_percentage"`
	ExpectedOutput      decimal.Decimal `json:"expected_output"`
	TotalOutput         decimal.Decimal `json:"total_output"`
	WasteQuantity       decimal.Decimal `json:"waste_quantity"`
	OverYield           bool            `json:"over_yield"`
	Tolerance           decimal.Decimal `json:"tolerance"`
	CreatedAt           time.Time       `json:"created_at,omitempty"`
}

// MassBalanceListResponse validation history of a transformation.
type MassBalanceListResponse struct {
	Items []MassBalanceResponse `json:"items"`
}
