package postgres

import (
	"context"
	"fmt"

	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implements AllocationRepository over PostgreSQL.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository builds the adapter. Pass a pool or tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `id, transformation_id, batch_id, company_id, product_id,
	method, quantity_allocated, contribution_ratio, unit, created_by, created_at`

// Create persists one allocation audit row.
func (r *AllocationRepo) Create(a *entity.InventoryAllocation) error {
	query := `
		INSERT INTO inventory_allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, nullIfEmpty(a.TransformationID), a.BatchID, a.CompanyID, a.ProductID,
		a.Method, a.QuantityAllocated, a.ContributionRatio, a.Unit, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

// ListByTransformation returns the allocation rows of one event.
func (r *AllocationRepo) ListByTransformation(transformationID string) ([]*entity.InventoryAllocation, error) {
	query := `SELECT ` + allocationColumns + `
		FROM inventory_allocations WHERE transformation_id = $1 ORDER BY created_at, id`
	return r.queryMany(query, transformationID, "list allocations by transformation")
}

// ListByBatch returns every draw-down that touched a batch.
func (r *AllocationRepo) ListByBatch(batchID string) ([]*entity.InventoryAllocation, error) {
	query := `SELECT ` + allocationColumns + `
		FROM inventory_allocations WHERE batch_id = $1 ORDER BY created_at, id`
	return r.queryMany(query, batchID, "list allocations by batch")
}

func (r *AllocationRepo) queryMany(query, arg, op string) ([]*entity.InventoryAllocation, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []*entity.InventoryAllocation
	for rows.Next() {
		var a entity.InventoryAllocation
		var transformationID *string
		if err := rows.Scan(&a.ID, &transformationID, &a.BatchID, &a.CompanyID, &a.ProductID,
			&a.Method, &a.QuantityAllocated, &a.ContributionRatio, &a.Unit,
			&a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if transformationID != nil {
			a.TransformationID = *transformationID
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
