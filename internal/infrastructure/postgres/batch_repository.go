package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implements BatchRepository over PostgreSQL (usable with pool or tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository builds the adapter. Pass a pool or tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, company_id, product_id, batch_number, type, quantity, unit,
	production_date, expiry_date, status, location_name, latitude, longitude,
	origin_data, certifications, quality_metrics, source_transformation_id,
	created_at, updated_at`

// Create persists a new batch.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.CompanyID, batch.ProductID, batch.BatchNumber, batch.Type,
		batch.Quantity, batch.Unit, batch.ProductionDate, batch.ExpiryDate, batch.Status,
		batch.LocationName, batch.Latitude, batch.Longitude,
		batch.OriginData, batch.Certifications, batch.QualityMetrics,
		nullIfEmpty(batch.SourceTransformationID), batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID fetches a batch by id.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get batch")
}

// GetByCompanyAndNumber fetches a batch by its human-readable code.
func (r *BatchRepo) GetByCompanyAndNumber(companyID, batchNumber string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE company_id = $1 AND batch_number = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, batchNumber), "get batch by number")
}

// GetForUpdate fetches a batch and locks its row (SELECT FOR UPDATE).
func (r *BatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get batch for update")
}

// ListByCompany pages through a company's batches with optional filters.
func (r *BatchRepo) ListByCompany(companyID string, filter repository.BatchFilter, limit, offset int) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE company_id = $1`
	args := []any{companyID}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY production_date DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.queryMany(query, args, "list batches")
}

// ListActive returns the company's active batches for a product (the
// inventory pool), oldest production first.
func (r *BatchRepo) ListActive(companyID, productID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches
		WHERE company_id = $1 AND product_id = $2 AND status = 'active' AND quantity > 0
		ORDER BY production_date, id`
	return r.queryMany(query, []any{companyID, productID}, "list active batches")
}

// ListActiveForUpdate is ListActive plus row locks. Rows are locked in id
// order so two concurrent draw-downs on the same pool cannot deadlock.
func (r *BatchRepo) ListActiveForUpdate(companyID, productID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches
		WHERE company_id = $1 AND product_id = $2 AND status = 'active' AND quantity > 0
		ORDER BY id
		FOR UPDATE`
	return r.queryMany(query, []any{companyID, productID}, "list active batches for update")
}

// UpdateQuantityStatus applies a draw-down mutation to one batch.
func (r *BatchRepo) UpdateQuantityStatus(id string, quantity decimal.Decimal, status string) error {
	query := `UPDATE batches SET quantity = $2, status = $3, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, quantity, status)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BatchRepo) queryMany(query string, args []any, op string) ([]*entity.Batch, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row, op string) (*entity.Batch, error) {
	b, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var sourceTransformationID *string
	err := row.Scan(&b.ID, &b.CompanyID, &b.ProductID, &b.BatchNumber, &b.Type,
		&b.Quantity, &b.Unit, &b.ProductionDate, &b.ExpiryDate, &b.Status,
		&b.LocationName, &b.Latitude, &b.Longitude,
		&b.OriginData, &b.Certifications, &b.QualityMetrics,
		&sourceTransformationID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if sourceTransformationID != nil {
		b.SourceTransformationID = *sourceTransformationID
	}
	return &b, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
