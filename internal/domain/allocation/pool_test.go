package allocation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicshaper19/palmtrace/internal/domain/allocation"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

func batch(id, qty, status string, produced time.Time) *entity.Batch {
	return &entity.Batch{
		ID:             id,
		CompanyID:      "co",
		ProductID:      "prod",
		BatchNumber:    "B-" + id,
		Quantity:       dec(qty),
		Unit:           "KGM",
		Status:         status,
		ProductionDate: produced,
	}
}

func TestBuildPool_AggregatesActiveBatches(t *testing.T) {
	now := time.Now()
	batches := []*entity.Batch{
		batch("a", "600", entity.BatchStatusActive, jan),
		batch("b", "400", entity.BatchStatusActive, feb),
		batch("c", "999", entity.BatchStatusConsumed, feb),
		batch("d", "999", entity.BatchStatusExpired, feb),
	}

	pool := allocation.BuildPool("co", "prod", batches, now)

	assert.True(t, pool.TotalAvailable.Equal(dec("1000")))
	require.Len(t, pool.Composition, 2, "only active batches join the pool")
	assert.Equal(t, "KGM", pool.Unit)
	assert.Equal(t, now, pool.ComputedAt)

	assert.True(t, pool.Composition[0].Percentage.Equal(dec("60")))
	assert.True(t, pool.Composition[1].Percentage.Equal(dec("40")))
}

func TestBuildPool_PercentagesSumToHundred(t *testing.T) {
	batches := []*entity.Batch{
		batch("a", "333.3333", entity.BatchStatusActive, jan),
		batch("b", "333.3333", entity.BatchStatusActive, feb),
		batch("c", "333.3334", entity.BatchStatusActive, mar),
	}

	pool := allocation.BuildPool("co", "prod", batches, time.Now())

	sum := decimal.Zero
	for _, e := range pool.Composition {
		sum = sum.Add(e.Percentage)
	}
	diff := sum.Sub(dec("100")).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.0002")), "percentages should sum to ~100, got %s", sum)
}

func TestBuildPool_SkipsZeroQuantity(t *testing.T) {
	batches := []*entity.Batch{
		batch("a", "0", entity.BatchStatusActive, jan),
		batch("b", "50", entity.BatchStatusActive, feb),
	}
	pool := allocation.BuildPool("co", "prod", batches, time.Now())
	require.Len(t, pool.Composition, 1)
	assert.Equal(t, "b", pool.Composition[0].BatchID)
}

func TestBuildPool_Empty(t *testing.T) {
	pool := allocation.BuildPool("co", "prod", nil, time.Now())
	assert.True(t, pool.TotalAvailable.IsZero())
	assert.Empty(t, pool.Composition)
}

func TestLots_FiltersInactive(t *testing.T) {
	batches := []*entity.Batch{
		batch("a", "100", entity.BatchStatusActive, jan),
		batch("b", "100", entity.BatchStatusReserved, feb),
	}
	lots := allocation.Lots(batches)
	require.Len(t, lots, 1)
	assert.Equal(t, "a", lots[0].ID)
}
