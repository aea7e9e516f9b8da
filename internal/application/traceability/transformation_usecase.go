package traceability

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/application/dto"
	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/massbalance"
	"github.com/logicshaper19/palmtrace/internal/domain/provenance"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

// TransformationUseCase drives the lifecycle of transformation events:
// creation (with template pre-fill, optional input draw-down and output batch
// registration in one transaction), listing, and mass-balance validation.
type TransformationUseCase struct {
	txRunner           TxRunner
	companyRepo        repository.CompanyRepository
	productRepo        repository.ProductRepository
	transformationRepo repository.TransformationRepository
	massBalanceRepo    repository.MassBalanceRepository
}

// NewTransformationUseCase builds the use case.
func NewTransformationUseCase(
	txRunner TxRunner,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	transformationRepo repository.TransformationRepository,
	massBalanceRepo repository.MassBalanceRepository,
) *TransformationUseCase {
	return &TransformationUseCase{
		txRunner:           txRunner,
		companyRepo:        companyRepo,
		productRepo:        productRepo,
		transformationRepo: transformationRepo,
		massBalanceRepo:    massBalanceRepo,
	}
}

// Create records a transformation event. Process data is pre-filled from the
// company type's template, then overridden key by key with the caller's
// payload. When the request carries an allocation, the input draw-down, the
// provenance records and the output batches commit in one transaction with
// the event itself.
func (uc *TransformationUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateTransformationRequest) (*dto.TransformationResponse, error) {
	if !entity.ValidTransformationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	processData, err := MergeProcessData(DefaultProcessData(company.Type), in.ProcessData)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	start := now
	if in.StartTime != nil {
		start = *in.StartTime
	}
	event := &entity.TransformationEvent{
		ID:          uuid.New().String(),
		EventNumber: generateEventNumber(in.Type, now),
		CompanyID:   companyID,
		Type:        in.Type,
		Status:      entity.TransformationCompleted,
		ProcessData: processData,
		TotalCost:   in.TotalCost,
		StartTime:   start,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		allocationRepo repository.AllocationRepository,
		provenanceRepo repository.ProvenanceRepository,
		transformationRepo repository.TransformationRepository,
	) error {
		var merged *provenance.Merged

		if in.Allocation != nil {
			plan, m, err := executeDrawDown(batchRepo, allocationRepo, provenanceRepo, companyID, userID, event.ID, *in.Allocation)
			if err != nil {
				return err
			}
			merged = m
			event.InputQuantity = plan.TotalAllocated()
		}

		outputTotal := decimal.Zero
		for _, out := range in.OutputBatches {
			batch, err := uc.buildOutputBatch(companyID, event.ID, out, merged, now)
			if err != nil {
				return err
			}
			if err := batchRepo.Create(batch); err != nil {
				return err
			}
			outputTotal = outputTotal.Add(batch.Quantity)
		}
		event.OutputQuantity = outputTotal

		if event.InputQuantity.IsPositive() {
			event.YieldRatio = event.OutputQuantity.DivRound(event.InputQuantity, 6)
		}
		if event.OutputQuantity.IsPositive() && event.TotalCost.IsPositive() {
			event.CostPerUnit = event.TotalCost.DivRound(event.OutputQuantity, 6)
		}

		return transformationRepo.Create(event)
	})
	if err != nil {
		return nil, err
	}
	return toTransformationResponse(event), nil
}

// buildOutputBatch assembles an output batch entity, stamping inherited
// provenance onto it when the caller did not supply origin data of its own.
func (uc *TransformationUseCase) buildOutputBatch(companyID, eventID string, in dto.CreateBatchRequest, merged *provenance.Merged, now time.Time) (*entity.Batch, error) {
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
	unit := in.Unit
	if unit == "" {
		unit = product.DefaultUnit
	}

	origin := in.OriginData
	certs := in.Certifications
	if merged != nil {
		if len(origin) == 0 {
			if blob, err := json.Marshal(merged); err == nil {
				origin = blob
			}
		}
		if len(certs) == 0 && len(merged.Certifications) > 0 {
			if blob, err := json.Marshal(merged.Certifications); err == nil {
				certs = blob
			}
		}
	}

	productionDate := in.ProductionDate
	if productionDate.IsZero() {
		productionDate = now
	}
	return &entity.Batch{
		ID:                     uuid.New().String(),
		CompanyID:              companyID,
		ProductID:              in.ProductID,
		BatchNumber:            in.BatchNumber,
		Type:                   entity.BatchTypeProcessing,
		Quantity:               in.Quantity,
		Unit:                   unit,
		ProductionDate:         productionDate,
		ExpiryDate:             in.ExpiryDate,
		Status:                 entity.BatchStatusActive,
		LocationName:           in.LocationName,
		Latitude:               in.Latitude,
		Longitude:              in.Longitude,
		OriginData:             origin,
		Certifications:         certs,
		QualityMetrics:         in.QualityMetrics,
		SourceTransformationID: eventID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}, nil
}

// GetByID fetches an event, enforcing company scope.
func (uc *TransformationUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.TransformationResponse, error) {
	event, err := uc.transformationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	if event.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toTransformationResponse(event), nil
}

// List pages through the company's events.
func (uc *TransformationUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.TransformationListResponse, error) {
	list, err := uc.transformationRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransformationResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toTransformationResponse(e))
	}
	return &dto.TransformationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ValidateBalance runs a mass-balance check against an event and appends the
// outcome as an audit record. Out-of-tolerance results are recorded with
// is_balanced=false, not rejected; the event moves to validated only on a
// balanced run.
func (uc *TransformationUseCase) ValidateBalance(ctx context.Context, companyID, userID, transformationID string, in dto.ValidateBalanceRequest) (*dto.MassBalanceResponse, error) {
	event, err := uc.transformationRepo.GetByID(transformationID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if event.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	input := in.InputQuantity
	if input.IsZero() {
		input = event.InputQuantity
	}
	outputs := in.OutputQuantities
	if len(outputs) == 0 {
		outputs = []decimal.Decimal{event.OutputQuantity}
	}
	ratio := massbalance.ExpectedYieldRatio(event.Type, in.InputProduct)
	if in.ExpectedYieldRatio != nil {
		ratio = *in.ExpectedYieldRatio
	}
	tolerance := decimal.Zero
	if in.Tolerance != nil {
		tolerance = *in.Tolerance
	}

	result, err := massbalance.Validate(input, outputs, ratio, tolerance)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entity.MassBalanceValidation{
		ID:                  uuid.New().String(),
		TransformationID:    transformationID,
		InputQuantity:       input,
		OutputQuantity:      result.TotalOutput,
		ExpectedOutput:      result.ExpectedOutput,
		WasteQuantity:       result.WasteQuantity,
		BalanceRatio:        result.BalanceRatio,
		DeviationPercentage: result.DeviationPercentage,
		Tolerance:           result.Tolerance,
		IsBalanced:          result.IsBalanced,
		Notes:               in.Notes,
		CreatedBy:           userID,
		CreatedAt:           now,
	}
	if err := uc.massBalanceRepo.Create(record); err != nil {
		return nil, err
	}

	if result.IsBalanced && event.Status == entity.TransformationCompleted {
		event.Status = entity.TransformationValidated
		event.UpdatedAt = now
		if err := uc.transformationRepo.Update(event); err != nil {
			return nil, err
		}
	}

	return toMassBalanceResponse(record, result.OverYield), nil
}

// BalanceHistory lists the append-only validation records of an event.
func (uc *TransformationUseCase) BalanceHistory(ctx context.Context, companyID, transformationID string) (*dto.MassBalanceListResponse, error) {
	event, err := uc.transformationRepo.GetByID(transformationID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if event.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	records, err := uc.massBalanceRepo.ListByTransformation(transformationID)
	if err != nil {
		return nil, err
	}
	out := &dto.MassBalanceListResponse{Items: make([]dto.MassBalanceResponse, 0, len(records))}
	for _, r := range records {
		out.Items = append(out.Items, *toMassBalanceResponse(r, r.WasteQuantity.IsNegative()))
	}
	return out, nil
}

// generateEventNumber builds a human-readable event code, e.g.
// MILLING-20260829-1A2B3C.
func generateEventNumber(transformationType string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(transformationType), now.Format("20060102"), suffix)
}

func toTransformationResponse(e *entity.TransformationEvent) *dto.TransformationResponse {
	if e == nil {
		return nil
	}
	return &dto.TransformationResponse{
		ID:             e.ID,
		EventNumber:    e.EventNumber,
		CompanyID:      e.CompanyID,
		Type:           e.Type,
		Status:         e.Status,
		ProcessData:    e.ProcessData,
		InputQuantity:  e.InputQuantity,
		OutputQuantity: e.OutputQuantity,
		YieldRatio:     e.YieldRatio,
		CostPerUnit:    e.CostPerUnit,
		TotalCost:      e.TotalCost,
		StartTime:      e.StartTime,
		EndTime:        e.EndTime,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toMassBalanceResponse(r *entity.MassBalanceValidation, overYield bool) *dto.MassBalanceResponse {
	return &dto.MassBalanceResponse{
		ID:                  r.ID,
		TransformationID:    r.TransformationID,
		IsBalanced:          r.IsBalanced,
		BalanceRatio:        r.BalanceRatio,
		DeviationPercentage: r.DeviationPercentage,
		ExpectedOutput:      r.ExpectedOutput,
		TotalOutput:         r.OutputQuantity,
		WasteQuantity:       r.WasteQuantity,
		OverYield:           overYield,
		Tolerance:           r.Tolerance,
		CreatedAt:           r.CreatedAt,
	}
}
