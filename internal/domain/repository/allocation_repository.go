package repository

import "github.com/logicshaper19/palmtrace/internal/domain/entity"

// AllocationRepository defines the persistence port for InventoryAllocation
// audit rows written after a real draw-down.
type AllocationRepository interface {
	Create(allocation *entity.InventoryAllocation) error
	ListByTransformation(transformationID string) ([]*entity.InventoryAllocation, error)
	ListByBatch(batchID string) ([]*entity.InventoryAllocation, error)
}
