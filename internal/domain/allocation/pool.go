package allocation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

// PoolEntry is one batch's share of an inventory pool.
type PoolEntry struct {
	BatchID     string
	BatchNumber string
	Quantity    decimal.Decimal
	Percentage  decimal.Decimal // share of the pool total, 0..100
}

// Pool is a derived snapshot of the available quantity and composition for a
// company-product pair. Not authoritative: always recomputed from the set of
// active batches.
type Pool struct {
	CompanyID      string
	ProductID      string
	Unit           string
	TotalAvailable decimal.Decimal
	Composition    []PoolEntry
	ComputedAt     time.Time
}

// BuildPool aggregates a company's active batches for a product into a pool
// snapshot. Non-active batches are ignored.
func BuildPool(companyID, productID string, batches []*entity.Batch, now time.Time) *Pool {
	pool := &Pool{
		CompanyID:      companyID,
		ProductID:      productID,
		TotalAvailable: decimal.Zero,
		ComputedAt:     now,
	}

	var active []*entity.Batch
	for _, b := range batches {
		if b.Status != entity.BatchStatusActive || !b.Quantity.IsPositive() {
			continue
		}
		active = append(active, b)
		pool.TotalAvailable = pool.TotalAvailable.Add(b.Quantity)
		if pool.Unit == "" {
			pool.Unit = b.Unit
		}
	}

	hundred := decimal.NewFromInt(100)
	for _, b := range active {
		pct := decimal.Zero
		if pool.TotalAvailable.IsPositive() {
			pct = b.Quantity.Mul(hundred).DivRound(pool.TotalAvailable, QuantityPlaces)
		}
		pool.Composition = append(pool.Composition, PoolEntry{
			BatchID:     b.ID,
			BatchNumber: b.BatchNumber,
			Quantity:    b.Quantity,
			Percentage:  pct,
		})
	}
	return pool
}

// Lots converts the pool's underlying batches into allocator snapshots.
func Lots(batches []*entity.Batch) []BatchLot {
	lots := make([]BatchLot, 0, len(batches))
	for _, b := range batches {
		if b.Status != entity.BatchStatusActive || !b.Quantity.IsPositive() {
			continue
		}
		lots = append(lots, LotFromBatch(b))
	}
	return lots
}
