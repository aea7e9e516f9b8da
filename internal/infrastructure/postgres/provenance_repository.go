package postgres

import (
	"context"
	"fmt"

	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

var _ repository.ProvenanceRepository = (*ProvenanceRepo)(nil)

// ProvenanceRepo implements ProvenanceRepository over PostgreSQL. Records are
// append-only; there is no update path.
type ProvenanceRepo struct {
	q Querier
}

// NewProvenanceRepository builds the adapter. Pass a pool or tx (Querier).
func NewProvenanceRepository(q Querier) *ProvenanceRepo {
	return &ProvenanceRepo{q: q}
}

const provenanceColumns = `id, transformation_id, source_batch_id, contribution_ratio,
	quantity_used, unit, origin_data, certifications, quality_metrics, created_at`

// Create persists a provenance record.
func (r *ProvenanceRepo) Create(record *entity.TransformationProvenance) error {
	query := `
		INSERT INTO transformation_provenance (` + provenanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.TransformationID, record.SourceBatchID, record.ContributionRatio,
		record.QuantityUsed, record.Unit, record.OriginData, record.Certifications,
		record.QualityMetrics, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert provenance: %w", err)
	}
	return nil
}

// ListByTransformation returns the provenance records of one event.
func (r *ProvenanceRepo) ListByTransformation(transformationID string) ([]*entity.TransformationProvenance, error) {
	query := `SELECT ` + provenanceColumns + `
		FROM transformation_provenance WHERE transformation_id = $1 ORDER BY created_at, id`
	return r.queryMany(query, transformationID, "list provenance by transformation")
}

// ListBySourceBatch returns every record where the batch was a source
// (downstream usage of a batch).
func (r *ProvenanceRepo) ListBySourceBatch(batchID string) ([]*entity.TransformationProvenance, error) {
	query := `SELECT ` + provenanceColumns + `
		FROM transformation_provenance WHERE source_batch_id = $1 ORDER BY created_at, id`
	return r.queryMany(query, batchID, "list provenance by source batch")
}

func (r *ProvenanceRepo) queryMany(query, arg, op string) ([]*entity.TransformationProvenance, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []*entity.TransformationProvenance
	for rows.Next() {
		var p entity.TransformationProvenance
		if err := rows.Scan(&p.ID, &p.TransformationID, &p.SourceBatchID, &p.ContributionRatio,
			&p.QuantityUsed, &p.Unit, &p.OriginData, &p.Certifications,
			&p.QualityMetrics, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
