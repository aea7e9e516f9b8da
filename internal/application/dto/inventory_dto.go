package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PoolEntryDTO one batch's share of an inventory pool.
type PoolEntryDTO struct {
	BatchID     string          `json:"batch_id"`
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// PoolResponse derived snapshot for GET /api/inventory/pool.
type PoolResponse struct {
	CompanyID      string          `json:"company_id"`
	ProductID      string          `json:"product_id"`
	Unit           string          `json:"unit"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	Composition    []PoolEntryDTO  `json:"composition"`
	ComputedAt     time.Time       `json:"computed_at"`
}

// AllocationRequest body for POST /api/inventory/allocations.
// Method manual requires ManualQuantities keyed by batch id; the other
// methods require Quantity.
type AllocationRequest struct {
	ProductID        string                     `json:"product_id"`
	TransformationID string                     `json:"transformation_id,omitempty"`
	Method           string                     `json:"method"`
	Quantity         decimal.Decimal            `json:"quantity"`
	ManualQuantities map[string]decimal.Decimal `json:"manual_quantities,omitempty"`
	DryRun           bool                       `json:"dry_run,omitempty"` // plan only, no draw-down
}

// AllocationLineDTO one line of the computed plan.
type AllocationLineDTO struct {
	BatchID           string          `json:"batch_id"`
	BatchNumber       string          `json:"batch_number"`
	QuantityUsed      decimal.Decimal `json:"quantity_used"`
	ContributionRatio decimal.Decimal `json:"contribution_ratio"`
	Unit              string          `json:"unit"`
}

// AllocationResponse the executed (or dry-run) plan plus merged provenance.
type AllocationResponse struct {
	Method         string              `json:"method"`
	Requested      decimal.Decimal     `json:"requested"`
	TotalAvailable decimal.Decimal     `json:"total_available"`
	TotalAllocated decimal.Decimal     `json:"total_allocated"`
	DryRun         bool                `json:"dry_run"`
	Lines          []AllocationLineDTO `json:"lines"`
	Provenance     *ProvenanceDTO      `json:"provenance,omitempty"`
}

// ProvenanceDTO merged origin metadata for the output side of a draw-down.
type ProvenanceDTO struct {
	SourceBatches  []SourceBatchDTO `json:"source_batches"`
	Farms          []TaggedDTO      `json:"farms"`
	Locations      []TaggedDTO      `json:"locations"`
	Certifications []string         `json:"certifications"`
	SkippedCount   int              `json:"skipped_count"`
}

// SourceBatchDTO one contributing batch in a merged provenance record.
type SourceBatchDTO struct {
	BatchID           string          `json:"batch_id"`
	BatchNumber       string          `json:"batch_number"`
	QuantityUsed      decimal.Decimal `json:"quantity_used"`
	ContributionRatio decimal.Decimal `json:"contribution_ratio"`
	Unit              string          `json:"unit"`
}

// TaggedDTO a farm/location object tagged with its contribution ratio.
type TaggedDTO struct {
	Data              map[string]any  `json:"data"`
	SourceBatchID     string          `json:"source_batch_id"`
	ContributionRatio decimal.Decimal `json:"contribution_ratio"`
}
