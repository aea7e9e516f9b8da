package traceability

import (
	"context"

	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

// ReportUseCase renders the traceability document for a batch: its identity,
// the provenance records of the transformation that produced it, and the
// inherited certifications.
type ReportUseCase struct {
	batchRepo      repository.BatchRepository
	productRepo    repository.ProductRepository
	provenanceRepo repository.ProvenanceRepository
	generator      ReportGenerator
}

// NewReportUseCase builds the use case.
func NewReportUseCase(
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	provenanceRepo repository.ProvenanceRepository,
	generator ReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		batchRepo:      batchRepo,
		productRepo:    productRepo,
		provenanceRepo: provenanceRepo,
		generator:      generator,
	}
}

// Generate produces the PDF bytes for a batch's traceability report.
// Harvested/incoming batches have no source transformation; their report
// carries only the batch's own origin data.
func (uc *ReportUseCase) Generate(ctx context.Context, companyID, batchID string) ([]byte, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	product, err := uc.productRepo.GetByID(batch.ProductID)
	if err != nil {
		return nil, err
	}

	var sources []*entity.TransformationProvenance
	if batch.SourceTransformationID != "" {
		sources, err = uc.provenanceRepo.ListByTransformation(batch.SourceTransformationID)
		if err != nil {
			return nil, err
		}
	}

	return uc.generator.GenerateTraceabilityPDF(ctx, batch, product, sources)
}
