package traceability

import (
	"context"

	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, passing repositories
// bound to that tx. Guarantees atomicity for the draw-down engine: either the
// batch mutations, audit rows and provenance records all commit, or none do.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		allocationRepo repository.AllocationRepository,
		provenanceRepo repository.ProvenanceRepository,
		transformationRepo repository.TransformationRepository,
	) error) error
}

// ReportGenerator renders the traceability document for a batch.
type ReportGenerator interface {
	GenerateTraceabilityPDF(ctx context.Context, batch *entity.Batch, product *entity.Product, sources []*entity.TransformationProvenance) ([]byte, error)
}
