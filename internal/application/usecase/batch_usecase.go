package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/logicshaper19/palmtrace/internal/application/dto"
	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

// BatchUseCase CRUD use cases for company-owned batches. Quantity changes
// happen only through allocation draw-downs, never through direct updates.
type BatchUseCase struct {
	batchRepo   repository.BatchRepository
	productRepo repository.ProductRepository
}

// NewBatchUseCase builds the use case.
func NewBatchUseCase(batchRepo repository.BatchRepository, productRepo repository.ProductRepository) *BatchUseCase {
	return &BatchUseCase{batchRepo: batchRepo, productRepo: productRepo}
}

// Create registers a new batch for the company. Batch numbers are unique per
// company; the unit falls back to the product's default.
func (uc *BatchUseCase) Create(companyID, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.BatchNumber == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.batchRepo.GetByCompanyAndNumber(companyID, in.BatchNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.Unit
	if unit == "" {
		unit = product.DefaultUnit
	}
	batchType := in.Type
	if batchType == "" {
		batchType = entity.BatchTypeIncoming
	}
	now := time.Now()
	batch := &entity.Batch{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		ProductID:      in.ProductID,
		BatchNumber:    in.BatchNumber,
		Type:           batchType,
		Quantity:       in.Quantity,
		Unit:           unit,
		ProductionDate: in.ProductionDate,
		ExpiryDate:     in.ExpiryDate,
		Status:         entity.BatchStatusActive,
		LocationName:   in.LocationName,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		OriginData:     in.OriginData,
		Certifications: in.Certifications,
		QualityMetrics: in.QualityMetrics,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return ToBatchResponse(batch), nil
}

// GetByID fetches a batch, enforcing company scope.
func (uc *BatchUseCase) GetByID(companyID, id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if batch.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return ToBatchResponse(batch), nil
}

// List pages through the company's batches with optional filters.
func (uc *BatchUseCase) List(companyID string, filter repository.BatchFilter, limit, offset int) (*dto.BatchListResponse, error) {
	list, err := uc.batchRepo.ListByCompany(companyID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *ToBatchResponse(b))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ToBatchResponse maps a batch entity to its response payload.
func ToBatchResponse(b *entity.Batch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	return &dto.BatchResponse{
		ID:             b.ID,
		CompanyID:      b.CompanyID,
		ProductID:      b.ProductID,
		BatchNumber:    b.BatchNumber,
		Type:           b.Type,
		Quantity:       b.Quantity,
		Unit:           b.Unit,
		ProductionDate: b.ProductionDate,
		ExpiryDate:     b.ExpiryDate,
		Status:         b.Status,
		LocationName:   b.LocationName,
		Latitude:       b.Latitude,
		Longitude:      b.Longitude,
		OriginData:     b.OriginData,
		Certifications: b.Certifications,
		QualityMetrics: b.QualityMetrics,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
