package repository

import "github.com/logicshaper19/palmtrace/internal/domain/entity"

// ProvenanceRepository defines the persistence port for
// TransformationProvenance records (append-only, immutable once created).
type ProvenanceRepository interface {
	Create(record *entity.TransformationProvenance) error
	ListByTransformation(transformationID string) ([]*entity.TransformationProvenance, error)
	ListBySourceBatch(batchID string) ([]*entity.TransformationProvenance, error)
}
