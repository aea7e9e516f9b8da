// Package allocation implements the batch draw-down calculator: given a
// requested quantity and a pool of available batches it produces a per-batch
// allocation plan under one of five policies (proportional, FIFO, LIFO,
// entire-batches-first, manual).
//
// The calculator is a pure domain service. It never touches storage: the plan
// carries the batch mutations (new quantity, new status) for the caller to
// apply inside its own transaction, with whatever locking discipline the
// persistence layer provides.
package allocation

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

// QuantityPlaces is the rounding precision for allocated quantities.
const QuantityPlaces = 4

// RatioPlaces is the rounding precision for contribution ratios.
const RatioPlaces = 6

// BatchLot is an immutable snapshot of an available batch at plan time.
type BatchLot struct {
	ID             string
	BatchNumber    string
	Quantity       decimal.Decimal
	Unit           string
	ProductionDate time.Time
	OriginData     json.RawMessage
	Certifications json.RawMessage
	QualityMetrics json.RawMessage
}

// LotFromBatch snapshots a batch entity into a BatchLot.
func LotFromBatch(b *entity.Batch) BatchLot {
	return BatchLot{
		ID:             b.ID,
		BatchNumber:    b.BatchNumber,
		Quantity:       b.Quantity,
		Unit:           b.Unit,
		ProductionDate: b.ProductionDate,
		OriginData:     b.OriginData,
		Certifications: b.Certifications,
		QualityMetrics: b.QualityMetrics,
	}
}

// Line is one entry of an allocation plan. Origin/certification/quality data
// is carried verbatim from the source batch for the provenance step.
type Line struct {
	BatchID           string
	BatchNumber       string
	QuantityUsed      decimal.Decimal
	ContributionRatio decimal.Decimal // QuantityUsed / requested
	Unit              string
	OriginData        json.RawMessage
	Certifications    json.RawMessage
	QualityMetrics    json.RawMessage
}

// Mutation is the state change to apply to one batch when the plan is executed.
type Mutation struct {
	BatchID     string
	NewQuantity decimal.Decimal
	NewStatus   string // active, or consumed when the quantity hits zero
}

// Plan is the result of one allocation request. Ephemeral: it is only
// persisted as InventoryAllocation audit rows after a real draw-down.
type Plan struct {
	Method         string
	Requested      decimal.Decimal
	TotalAvailable decimal.Decimal
	Lines          []Line
	Mutations      []Mutation
}

// Allocate computes a draw-down plan for requested quantity over lots using
// the given method. The manual method needs explicit quantities; use
// AllocateManual for it.
//
// Fails with domain.ErrInsufficientInventory when requested exceeds the pool
// total, and domain.ErrInvalidAllocation for an unknown method.
func Allocate(requested decimal.Decimal, lots []BatchLot, method string) (*Plan, error) {
	if !requested.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	total := totalQuantity(lots)
	if requested.GreaterThan(total) {
		return nil, insufficientErr(requested, total, unitOf(lots))
	}

	var lines []Line
	switch method {
	case entity.AllocationProportional:
		lines = allocateProportional(requested, lots)
	case entity.AllocationFIFO:
		lines = allocateSequential(requested, lots, byProductionDateAsc)
	case entity.AllocationLIFO:
		lines = allocateSequential(requested, lots, byProductionDateDesc)
	case entity.AllocationEntireBatchesFirst:
		lines = allocateEntireBatchesFirst(requested, lots)
	case entity.AllocationManual:
		return nil, invalidMethodErr(method, "manual allocation requires explicit per-batch quantities")
	default:
		return nil, invalidMethodErr(method, "unsupported allocation method")
	}

	return buildPlan(method, requested, total, lots, lines), nil
}

// AllocateManual builds a plan from caller-supplied per-batch quantities.
// Every referenced batch must exist in the pool and no line may exceed its
// batch's available quantity.
func AllocateManual(lots []BatchLot, quantities map[string]decimal.Decimal) (*Plan, error) {
	if len(quantities) == 0 {
		return nil, domain.ErrInvalidInput
	}
	byID := make(map[string]BatchLot, len(lots))
	for _, lot := range lots {
		byID[lot.ID] = lot
	}

	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	requested := decimal.Zero
	for _, id := range ids {
		requested = requested.Add(quantities[id])
	}
	if !requested.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	lines := make([]Line, 0, len(ids))
	for _, id := range ids {
		lot, ok := byID[id]
		if !ok {
			return nil, domain.NewDomainError(domain.KindInsufficientInventory,
				"batch not in pool", domain.ErrInsufficientInventory,
				map[string]any{"batch_id": id})
		}
		qty := quantities[id].Round(QuantityPlaces)
		if !qty.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if qty.GreaterThan(lot.Quantity) {
			return nil, insufficientErr(qty, lot.Quantity, lot.Unit)
		}
		lines = append(lines, newLine(lot, qty, requested))
	}

	return buildPlan(entity.AllocationManual, requested, totalQuantity(lots), lots, lines), nil
}

// allocateProportional gives each batch requested * (batch share of the pool).
// Quantities are rounded by cumulative share so the plan total telescopes to
// the rounded request instead of drifting one rounding step per line.
func allocateProportional(requested decimal.Decimal, lots []BatchLot) []Line {
	sorted := sortedLots(lots, byID)
	total := totalQuantity(lots)

	lines := make([]Line, 0, len(sorted))
	cumExact := decimal.Zero
	assigned := decimal.Zero
	for _, lot := range sorted {
		cumExact = cumExact.Add(requested.Mul(lot.Quantity).Div(total))
		qty := cumExact.Round(QuantityPlaces).Sub(assigned)
		if qty.GreaterThan(lot.Quantity) {
			qty = lot.Quantity
		}
		if !qty.IsPositive() {
			continue
		}
		assigned = assigned.Add(qty)
		lines = append(lines, newLine(lot, qty, requested))
	}
	return lines
}

// allocateSequential consumes lots in the given order until the request is
// exhausted; the last batch touched may be partially consumed.
func allocateSequential(requested decimal.Decimal, lots []BatchLot, less func(a, b BatchLot) bool) []Line {
	sorted := sortedLots(lots, less)

	lines := make([]Line, 0, len(sorted))
	remaining := requested
	for _, lot := range sorted {
		if !remaining.IsPositive() {
			break
		}
		qty := decimal.Min(remaining, lot.Quantity).Round(QuantityPlaces)
		remaining = remaining.Sub(qty)
		lines = append(lines, newLine(lot, qty, requested))
	}
	return lines
}

// allocateEntireBatchesFirst fully consumes whole batches largest-first while
// they fit under the remaining request; any leftover remainder is satisfied
// by a proportional pass over the unused batches.
func allocateEntireBatchesFirst(requested decimal.Decimal, lots []BatchLot) []Line {
	sorted := sortedLots(lots, byQuantityDesc)

	lines := make([]Line, 0, len(sorted))
	var unused []BatchLot
	remaining := requested
	for _, lot := range sorted {
		if remaining.IsPositive() && lot.Quantity.LessThanOrEqual(remaining) {
			remaining = remaining.Sub(lot.Quantity)
			lines = append(lines, newLine(lot, lot.Quantity, requested))
			continue
		}
		unused = append(unused, lot)
	}
	if remaining.IsPositive() && len(unused) > 0 {
		for _, partial := range allocateProportional(remaining, unused) {
			partial.ContributionRatio = partial.QuantityUsed.DivRound(requested, RatioPlaces)
			lines = append(lines, partial)
		}
	}
	return lines
}

func newLine(lot BatchLot, qty, requested decimal.Decimal) Line {
	return Line{
		BatchID:           lot.ID,
		BatchNumber:       lot.BatchNumber,
		QuantityUsed:      qty.Round(QuantityPlaces),
		ContributionRatio: qty.DivRound(requested, RatioPlaces),
		Unit:              lot.Unit,
		OriginData:        lot.OriginData,
		Certifications:    lot.Certifications,
		QualityMetrics:    lot.QualityMetrics,
	}
}

func buildPlan(method string, requested, total decimal.Decimal, lots []BatchLot, lines []Line) *Plan {
	byID := make(map[string]BatchLot, len(lots))
	for _, lot := range lots {
		byID[lot.ID] = lot
	}
	mutations := make([]Mutation, 0, len(lines))
	for _, line := range lines {
		lot := byID[line.BatchID]
		newQty := lot.Quantity.Sub(line.QuantityUsed).Round(QuantityPlaces)
		status := entity.BatchStatusActive
		if !newQty.IsPositive() {
			newQty = decimal.Zero
			status = entity.BatchStatusConsumed
		}
		mutations = append(mutations, Mutation{BatchID: line.BatchID, NewQuantity: newQty, NewStatus: status})
	}
	return &Plan{
		Method:         method,
		Requested:      requested,
		TotalAvailable: total,
		Lines:          lines,
		Mutations:      mutations,
	}
}

// TotalAllocated sums the plan's line quantities.
func (p *Plan) TotalAllocated() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range p.Lines {
		sum = sum.Add(line.QuantityUsed)
	}
	return sum
}

// Sort orders. Ties always break on batch id so plans are stable.
func byID(a, b BatchLot) bool { return a.ID < b.ID }

func byProductionDateAsc(a, b BatchLot) bool {
	if a.ProductionDate.Equal(b.ProductionDate) {
		return a.ID < b.ID
	}
	return a.ProductionDate.Before(b.ProductionDate)
}

func byProductionDateDesc(a, b BatchLot) bool {
	if a.ProductionDate.Equal(b.ProductionDate) {
		return a.ID < b.ID
	}
	return a.ProductionDate.After(b.ProductionDate)
}

func byQuantityDesc(a, b BatchLot) bool {
	if a.Quantity.Equal(b.Quantity) {
		return a.ID < b.ID
	}
	return a.Quantity.GreaterThan(b.Quantity)
}

func sortedLots(lots []BatchLot, less func(a, b BatchLot) bool) []BatchLot {
	sorted := make([]BatchLot, len(lots))
	copy(sorted, lots)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

func totalQuantity(lots []BatchLot) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range lots {
		total = total.Add(lot.Quantity)
	}
	return total
}

func unitOf(lots []BatchLot) string {
	if len(lots) == 0 {
		return ""
	}
	return lots[0].Unit
}

func insufficientErr(requested, available decimal.Decimal, unit string) error {
	return domain.NewDomainError(domain.KindInsufficientInventory,
		"requested quantity exceeds available inventory", domain.ErrInsufficientInventory,
		map[string]any{
			"requested": requested.String(),
			"available": available.String(),
			"unit":      unit,
		})
}

func invalidMethodErr(method, msg string) error {
	return domain.NewDomainError(domain.KindInvalidAllocation,
		msg, domain.ErrInvalidAllocation,
		map[string]any{
			"method":  method,
			"allowed": entity.AllocationMethods(),
		})
}
