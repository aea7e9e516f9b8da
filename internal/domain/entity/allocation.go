package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation methods. The policy deciding which batches in a pool satisfy a
// requested quantity.
const (
	AllocationProportional       = "proportional"
	AllocationFIFO               = "fifo"
	AllocationLIFO               = "lifo"
	AllocationEntireBatchesFirst = "entire_batches_first"
	AllocationManual             = "manual"
)

// AllocationMethods lists the supported policies, for error details.
func AllocationMethods() []string {
	return []string{
		AllocationProportional,
		AllocationFIFO,
		AllocationLIFO,
		AllocationEntireBatchesFirst,
		AllocationManual,
	}
}

// InventoryAllocation is the persisted audit record of one allocation line
// after a real draw-down: which batch, how much, what share of the request.
type InventoryAllocation struct {
	ID                string
	TransformationID  string
	BatchID           string
	CompanyID         string
	ProductID         string
	Method            string
	QuantityAllocated decimal.Decimal
	ContributionRatio decimal.Decimal
	Unit              string
	CreatedBy         string
	CreatedAt         time.Time
}
