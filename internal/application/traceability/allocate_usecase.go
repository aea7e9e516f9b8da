package traceability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/logicshaper19/palmtrace/internal/application/dto"
	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/allocation"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/provenance"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

// AllocateUseCase computes allocation plans over a company's inventory pool
// and executes draw-downs transactionally: batches are locked with
// SELECT FOR UPDATE, availability is rechecked against the locked rows, and
// mutations, audit rows and provenance records commit together.
type AllocateUseCase struct {
	txRunner    TxRunner
	batchRepo   repository.BatchRepository
	productRepo repository.ProductRepository
}

// NewAllocateUseCase builds the use case.
func NewAllocateUseCase(txRunner TxRunner, batchRepo repository.BatchRepository, productRepo repository.ProductRepository) *AllocateUseCase {
	return &AllocateUseCase{txRunner: txRunner, batchRepo: batchRepo, productRepo: productRepo}
}

// GetPool recomputes the derived inventory pool snapshot for a company-product
// pair from its active batches.
func (uc *AllocateUseCase) GetPool(ctx context.Context, companyID, productID string) (*dto.PoolResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	batches, err := uc.batchRepo.ListActive(companyID, productID)
	if err != nil {
		return nil, err
	}
	pool := allocation.BuildPool(companyID, productID, batches, time.Now())
	return toPoolResponse(pool), nil
}

// Allocate executes (or, with DryRun, only computes) a draw-down for the
// request. Dry runs read the pool without locks and persist nothing.
func (uc *AllocateUseCase) Allocate(ctx context.Context, companyID, userID string, in dto.AllocationRequest) (*dto.AllocationResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.DryRun {
		batches, err := uc.batchRepo.ListActive(companyID, in.ProductID)
		if err != nil {
			return nil, err
		}
		plan, err := computePlan(in, allocation.Lots(batches))
		if err != nil {
			return nil, err
		}
		return toAllocationResponse(plan, provenance.Merge(plan.Lines), true), nil
	}

	var plan *allocation.Plan
	var merged *provenance.Merged
	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		allocationRepo repository.AllocationRepository,
		provenanceRepo repository.ProvenanceRepository,
		_ repository.TransformationRepository,
	) error {
		plan, merged, err = executeDrawDown(batchRepo, allocationRepo, provenanceRepo, companyID, userID, in.TransformationID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toAllocationResponse(plan, merged, false), nil
}

// executeDrawDown runs inside a transaction: it locks the pool's batches,
// plans against the locked quantities and applies the plan. Used both by the
// standalone allocation endpoint and by transformation creation.
func executeDrawDown(
	batchRepo repository.BatchRepository,
	allocationRepo repository.AllocationRepository,
	provenanceRepo repository.ProvenanceRepository,
	companyID, userID, transformationID string,
	in dto.AllocationRequest,
) (*allocation.Plan, *provenance.Merged, error) {
	batches, err := batchRepo.ListActiveForUpdate(companyID, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	plan, err := computePlan(in, allocation.Lots(batches))
	if err != nil {
		return nil, nil, err
	}

	for _, m := range plan.Mutations {
		if err := batchRepo.UpdateQuantityStatus(m.BatchID, m.NewQuantity, m.NewStatus); err != nil {
			return nil, nil, err
		}
	}

	now := time.Now()
	for _, line := range plan.Lines {
		audit := &entity.InventoryAllocation{
			ID:                uuid.New().String(),
			TransformationID:  transformationID,
			BatchID:           line.BatchID,
			CompanyID:         companyID,
			ProductID:         in.ProductID,
			Method:            plan.Method,
			QuantityAllocated: line.QuantityUsed,
			ContributionRatio: line.ContributionRatio,
			Unit:              line.Unit,
			CreatedBy:         userID,
			CreatedAt:         now,
		}
		if err := allocationRepo.Create(audit); err != nil {
			return nil, nil, err
		}
		if transformationID != "" {
			record := &entity.TransformationProvenance{
				ID:                uuid.New().String(),
				TransformationID:  transformationID,
				SourceBatchID:     line.BatchID,
				ContributionRatio: line.ContributionRatio,
				QuantityUsed:      line.QuantityUsed,
				Unit:              line.Unit,
				OriginData:        line.OriginData,
				Certifications:    line.Certifications,
				QualityMetrics:    line.QualityMetrics,
				CreatedAt:         now,
			}
			if err := provenanceRepo.Create(record); err != nil {
				return nil, nil, err
			}
		}
	}

	return plan, provenance.Merge(plan.Lines), nil
}

// computePlan dispatches to the allocator for the requested method.
func computePlan(in dto.AllocationRequest, lots []allocation.BatchLot) (*allocation.Plan, error) {
	if in.Method == entity.AllocationManual {
		return allocation.AllocateManual(lots, in.ManualQuantities)
	}
	return allocation.Allocate(in.Quantity, lots, in.Method)
}

func toPoolResponse(pool *allocation.Pool) *dto.PoolResponse {
	out := &dto.PoolResponse{
		CompanyID:      pool.CompanyID,
		ProductID:      pool.ProductID,
		Unit:           pool.Unit,
		TotalAvailable: pool.TotalAvailable,
		Composition:    make([]dto.PoolEntryDTO, 0, len(pool.Composition)),
		ComputedAt:     pool.ComputedAt,
	}
	for _, e := range pool.Composition {
		out.Composition = append(out.Composition, dto.PoolEntryDTO{
			BatchID:     e.BatchID,
			BatchNumber: e.BatchNumber,
			Quantity:    e.Quantity,
			Percentage:  e.Percentage,
		})
	}
	return out
}

func toAllocationResponse(plan *allocation.Plan, merged *provenance.Merged, dryRun bool) *dto.AllocationResponse {
	out := &dto.AllocationResponse{
		Method:         plan.Method,
		Requested:      plan.Requested,
		TotalAvailable: plan.TotalAvailable,
		TotalAllocated: plan.TotalAllocated(),
		DryRun:         dryRun,
		Lines:          make([]dto.AllocationLineDTO, 0, len(plan.Lines)),
		Provenance:     toProvenanceDTO(merged),
	}
	for _, line := range plan.Lines {
		out.Lines = append(out.Lines, dto.AllocationLineDTO{
			BatchID:           line.BatchID,
			BatchNumber:       line.BatchNumber,
			QuantityUsed:      line.QuantityUsed,
			ContributionRatio: line.ContributionRatio,
			Unit:              line.Unit,
		})
	}
	return out
}

func toProvenanceDTO(merged *provenance.Merged) *dto.ProvenanceDTO {
	if merged == nil {
		return nil
	}
	out := &dto.ProvenanceDTO{
		SourceBatches:  make([]dto.SourceBatchDTO, 0, len(merged.SourceBatches)),
		Farms:          make([]dto.TaggedDTO, 0, len(merged.Farms)),
		Locations:      make([]dto.TaggedDTO, 0, len(merged.Locations)),
		Certifications: merged.Certifications,
		SkippedCount:   merged.SkippedCount,
	}
	for _, sb := range merged.SourceBatches {
		out.SourceBatches = append(out.SourceBatches, dto.SourceBatchDTO{
			BatchID:           sb.BatchID,
			BatchNumber:       sb.BatchNumber,
			QuantityUsed:      sb.QuantityUsed,
			ContributionRatio: sb.ContributionRatio,
			Unit:              sb.Unit,
		})
	}
	for _, f := range merged.Farms {
		out.Farms = append(out.Farms, dto.TaggedDTO{Data: f.Data, SourceBatchID: f.SourceBatchID, ContributionRatio: f.ContributionRatio})
	}
	for _, l := range merged.Locations {
		out.Locations = append(out.Locations, dto.TaggedDTO{Data: l.Data, SourceBatchID: l.SourceBatchID, ContributionRatio: l.ContributionRatio})
	}
	return out
}
