package allocation_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/allocation"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func lot(id, qty string, produced time.Time) allocation.BatchLot {
	return allocation.BatchLot{
		ID:             id,
		BatchNumber:    "B-" + id,
		Quantity:       dec(qty),
		Unit:           "KGM",
		ProductionDate: produced,
	}
}

var (
	jan = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	mar = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
)

// totalUsed sums the plan's line quantities for conservation checks.
func totalUsed(p *allocation.Plan) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range p.Lines {
		sum = sum.Add(l.QuantityUsed)
	}
	return sum
}

func TestAllocate_Proportional_SplitsByShare(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "600", jan),
		lot("b", "400", feb),
	}
	plan, err := allocation.Allocate(dec("500"), lots, entity.AllocationProportional)
	require.NoError(t, err)
	require.Len(t, plan.Lines, 2)

	assert.True(t, plan.Lines[0].QuantityUsed.Equal(dec("300")), "60%% share of 500, got %s", plan.Lines[0].QuantityUsed)
	assert.True(t, plan.Lines[1].QuantityUsed.Equal(dec("200")), "40%% share of 500, got %s", plan.Lines[1].QuantityUsed)
	assert.True(t, plan.Lines[0].ContributionRatio.Equal(dec("0.6")))
	assert.True(t, plan.Lines[1].ContributionRatio.Equal(dec("0.4")))
}

// Three equal batches cannot split a request into equal 4-decimal thirds.
// The cumulative rounding must still make the plan total telescope to the
// exact request, never drifting by one rounding step per line.
func TestAllocate_Proportional_RoundingConserves(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "1000", jan),
		lot("b", "1000", feb),
		lot("c", "1000", mar),
	}
	plan, err := allocation.Allocate(dec("1000"), lots, entity.AllocationProportional)
	require.NoError(t, err)

	assert.True(t, totalUsed(plan).Equal(dec("1000")), "plan must conserve the requested total, got %s", totalUsed(plan))
	for _, l := range plan.Lines {
		assert.True(t, l.QuantityUsed.Equal(l.QuantityUsed.Round(4)), "quantities rounded to 4 places")
	}
}

func TestAllocate_Proportional_NeverExceedsLot(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "0.0001", jan),
		lot("b", "999.9999", feb),
	}
	plan, err := allocation.Allocate(dec("1000"), lots, entity.AllocationProportional)
	require.NoError(t, err)

	byID := map[string]decimal.Decimal{"a": dec("0.0001"), "b": dec("999.9999")}
	for _, l := range plan.Lines {
		assert.True(t, l.QuantityUsed.LessThanOrEqual(byID[l.BatchID]),
			"line %s uses %s, more than the batch holds", l.BatchID, l.QuantityUsed)
	}
	assert.True(t, totalUsed(plan).Equal(dec("1000")))
}

func TestAllocate_FIFO_ConsumesOldestFirst(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("new", "300", feb),
		lot("old", "500", jan),
	}
	plan, err := allocation.Allocate(dec("700"), lots, entity.AllocationFIFO)
	require.NoError(t, err)
	require.Len(t, plan.Lines, 2)

	assert.Equal(t, "old", plan.Lines[0].BatchID)
	assert.True(t, plan.Lines[0].QuantityUsed.Equal(dec("500")))
	assert.Equal(t, "new", plan.Lines[1].BatchID)
	assert.True(t, plan.Lines[1].QuantityUsed.Equal(dec("200")))
}

func TestAllocate_LIFO_ConsumesNewestFirst(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("old", "500", jan),
		lot("new", "300", feb),
	}
	plan, err := allocation.Allocate(dec("400"), lots, entity.AllocationLIFO)
	require.NoError(t, err)
	require.Len(t, plan.Lines, 2)

	assert.Equal(t, "new", plan.Lines[0].BatchID)
	assert.True(t, plan.Lines[0].QuantityUsed.Equal(dec("300")))
	assert.Equal(t, "old", plan.Lines[1].BatchID)
	assert.True(t, plan.Lines[1].QuantityUsed.Equal(dec("100")))
}

func TestAllocate_FIFO_TieBreaksOnID(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("b", "100", jan),
		lot("a", "100", jan),
	}
	plan, err := allocation.Allocate(dec("150"), lots, entity.AllocationFIFO)
	require.NoError(t, err)
	require.Len(t, plan.Lines, 2)
	assert.Equal(t, "a", plan.Lines[0].BatchID, "same production date must break ties on id")
}

func TestAllocate_EntireBatchesFirst_WholeBatchesThenRemainder(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "700", jan),
		lot("b", "500", feb),
		lot("c", "300", mar),
	}
	plan, err := allocation.Allocate(dec("1000"), lots, entity.AllocationEntireBatchesFirst)
	require.NoError(t, err)

	// 700 fits whole; 500 does not fit in the remaining 300; 300 fits whole.
	require.Len(t, plan.Lines, 2)
	assert.Equal(t, "a", plan.Lines[0].BatchID)
	assert.True(t, plan.Lines[0].QuantityUsed.Equal(dec("700")))
	assert.Equal(t, "c", plan.Lines[1].BatchID)
	assert.True(t, plan.Lines[1].QuantityUsed.Equal(dec("300")))

	for _, m := range plan.Mutations {
		assert.Equal(t, entity.BatchStatusConsumed, m.NewStatus, "fully drained batches flip to consumed")
		assert.True(t, m.NewQuantity.IsZero())
	}
}

func TestAllocate_EntireBatchesFirst_RemainderIsProportional(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "600", jan),
		lot("b", "500", feb),
		lot("c", "500", mar),
	}
	plan, err := allocation.Allocate(dec("800"), lots, entity.AllocationEntireBatchesFirst)
	require.NoError(t, err)

	// 600 fits whole; remainder 200 split proportionally over b and c (100 each).
	require.Len(t, plan.Lines, 3)
	assert.True(t, totalUsed(plan).Equal(dec("800")))
	assert.True(t, plan.Lines[1].QuantityUsed.Equal(dec("100")))
	assert.True(t, plan.Lines[2].QuantityUsed.Equal(dec("100")))
	// Ratios are against the full request, not the remainder.
	assert.True(t, plan.Lines[1].ContributionRatio.Equal(dec("0.125")))
}

func TestAllocate_InsufficientInventory(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "600", jan),
		lot("b", "400", feb),
	}
	_, err := allocation.Allocate(dec("1000.0001"), lots, entity.AllocationProportional)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindInsufficientInventory, de.Kind)
	assert.Equal(t, "1000.0001", de.Details["requested"])
	assert.Equal(t, "1000", de.Details["available"])
}

func TestAllocate_ExactPoolTotalSucceeds(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "600", jan),
		lot("b", "400", feb),
	}
	plan, err := allocation.Allocate(dec("1000"), lots, entity.AllocationProportional)
	require.NoError(t, err)
	assert.True(t, totalUsed(plan).Equal(dec("1000")))
}

func TestAllocate_UnknownMethod(t *testing.T) {
	lots := []allocation.BatchLot{lot("a", "100", jan)}
	_, err := allocation.Allocate(dec("50"), lots, "round_robin")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAllocation)

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindInvalidAllocation, de.Kind)
	assert.Contains(t, de.Details, "allowed")
}

func TestAllocate_ManualMethodRejectedWithoutQuantities(t *testing.T) {
	lots := []allocation.BatchLot{lot("a", "100", jan)}
	_, err := allocation.Allocate(dec("50"), lots, entity.AllocationManual)
	assert.ErrorIs(t, err, domain.ErrInvalidAllocation)
}

func TestAllocate_NonPositiveRequest(t *testing.T) {
	lots := []allocation.BatchLot{lot("a", "100", jan)}
	_, err := allocation.Allocate(decimal.Zero, lots, entity.AllocationProportional)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocateManual_UsesCallerQuantities(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "600", jan),
		lot("b", "400", feb),
	}
	plan, err := allocation.AllocateManual(lots, map[string]decimal.Decimal{
		"a": dec("150"),
		"b": dec("50"),
	})
	require.NoError(t, err)
	require.Len(t, plan.Lines, 2)

	assert.Equal(t, entity.AllocationManual, plan.Method)
	assert.True(t, plan.Requested.Equal(dec("200")))
	assert.True(t, plan.Lines[0].QuantityUsed.Equal(dec("150")))
	assert.True(t, plan.Lines[0].ContributionRatio.Equal(dec("0.75")))
}

func TestAllocateManual_UnknownBatch(t *testing.T) {
	lots := []allocation.BatchLot{lot("a", "600", jan)}
	_, err := allocation.AllocateManual(lots, map[string]decimal.Decimal{"ghost": dec("10")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}

func TestAllocateManual_ExceedsBatchQuantity(t *testing.T) {
	lots := []allocation.BatchLot{lot("a", "600", jan)}
	_, err := allocation.AllocateManual(lots, map[string]decimal.Decimal{"a": dec("600.0001")})
	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}

func TestAllocateManual_NonPositiveLine(t *testing.T) {
	lots := []allocation.BatchLot{lot("a", "600", jan)}
	_, err := allocation.AllocateManual(lots, map[string]decimal.Decimal{"a": dec("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocate_MutationsReflectDrawDown(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("old", "500", jan),
		lot("new", "300", feb),
	}
	plan, err := allocation.Allocate(dec("600"), lots, entity.AllocationFIFO)
	require.NoError(t, err)
	require.Len(t, plan.Mutations, 2)

	assert.Equal(t, "old", plan.Mutations[0].BatchID)
	assert.True(t, plan.Mutations[0].NewQuantity.IsZero())
	assert.Equal(t, entity.BatchStatusConsumed, plan.Mutations[0].NewStatus)

	assert.Equal(t, "new", plan.Mutations[1].BatchID)
	assert.True(t, plan.Mutations[1].NewQuantity.Equal(dec("200")))
	assert.Equal(t, entity.BatchStatusActive, plan.Mutations[1].NewStatus)
}

func TestAllocate_LinesCarryOriginData(t *testing.T) {
	origin := json.RawMessage(`{"farm":{"name":"Sungai Estate"}}`)
	certs := json.RawMessage(`["RSPO"]`)
	l := lot("a", "100", jan)
	l.OriginData = origin
	l.Certifications = certs

	plan, err := allocation.Allocate(dec("40"), []allocation.BatchLot{l}, entity.AllocationFIFO)
	require.NoError(t, err)
	require.Len(t, plan.Lines, 1)
	assert.JSONEq(t, string(origin), string(plan.Lines[0].OriginData))
	assert.JSONEq(t, string(certs), string(plan.Lines[0].Certifications))
}

func TestPlan_TotalAllocated(t *testing.T) {
	lots := []allocation.BatchLot{
		lot("a", "600", jan),
		lot("b", "400", feb),
	}
	plan, err := allocation.Allocate(dec("123.4567"), lots, entity.AllocationProportional)
	require.NoError(t, err)
	assert.True(t, plan.TotalAllocated().Equal(dec("123.4567")))
}

// Same input must always yield the same plan regardless of input slice order.
func TestAllocate_Proportional_StableUnderInputOrder(t *testing.T) {
	a := lot("a", "600", jan)
	b := lot("b", "400", feb)

	p1, err := allocation.Allocate(dec("333.3333"), []allocation.BatchLot{a, b}, entity.AllocationProportional)
	require.NoError(t, err)
	p2, err := allocation.Allocate(dec("333.3333"), []allocation.BatchLot{b, a}, entity.AllocationProportional)
	require.NoError(t, err)

	require.Equal(t, len(p1.Lines), len(p2.Lines))
	for i := range p1.Lines {
		assert.Equal(t, p1.Lines[i].BatchID, p2.Lines[i].BatchID)
		assert.True(t, p1.Lines[i].QuantityUsed.Equal(p2.Lines[i].QuantityUsed))
	}
}

func TestAllocate_EmptyPool(t *testing.T) {
	_, err := allocation.Allocate(dec("1"), nil, entity.AllocationProportional)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientInventory))
}
