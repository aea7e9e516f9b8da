package repository

import (
	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/domain/entity"
)

// BatchFilter narrows batch listings.
type BatchFilter struct {
	ProductID string
	Status    string
	Type      string
}

// BatchRepository defines the persistence port for Batch.
//
// GetForUpdate must lock the row (SELECT ... FOR UPDATE) so that two
// concurrent draw-downs against the same batch serialize instead of both
// succeeding against stale availability figures.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	GetByCompanyAndNumber(companyID, batchNumber string) (*entity.Batch, error)
	GetForUpdate(id string) (*entity.Batch, error)
	ListByCompany(companyID string, filter BatchFilter, limit, offset int) ([]*entity.Batch, error)
	ListActive(companyID, productID string) ([]*entity.Batch, error)
	// ListActiveForUpdate locks every active batch of the pool in a stable
	// order (ORDER BY id) so concurrent draw-downs cannot deadlock.
	ListActiveForUpdate(companyID, productID string) ([]*entity.Batch, error)
	UpdateQuantityStatus(id string, quantity decimal.Decimal, status string) error
}
