package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/logicshaper19/palmtrace/internal/domain"
	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

var _ repository.TransformationRepository = (*TransformationRepo)(nil)

// TransformationRepo implements TransformationRepository over PostgreSQL
// (usable with pool or tx).
type TransformationRepo struct {
	q Querier
}

// NewTransformationRepository builds the adapter. Pass a pool or tx (Querier).
func NewTransformationRepository(q Querier) *TransformationRepo {
	return &TransformationRepo{q: q}
}

const transformationColumns = `id, event_number, company_id, type, status, process_data,
	input_quantity, output_quantity, yield_ratio, cost_per_unit, total_cost,
	start_time, end_time, created_by, created_at, updated_at`

// Create persists a new transformation event.
func (r *TransformationRepo) Create(event *entity.TransformationEvent) error {
	query := `
		INSERT INTO transformation_events (` + transformationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.EventNumber, event.CompanyID, event.Type, event.Status,
		event.ProcessData, event.InputQuantity, event.OutputQuantity,
		event.YieldRatio, event.CostPerUnit, event.TotalCost,
		event.StartTime, event.EndTime, event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transformation: %w", err)
	}
	return nil
}

// GetByID fetches an event by id.
func (r *TransformationRepo) GetByID(id string) (*entity.TransformationEvent, error) {
	query := `SELECT ` + transformationColumns + ` FROM transformation_events WHERE id = $1`
	var e entity.TransformationEvent
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.EventNumber, &e.CompanyID, &e.Type, &e.Status, &e.ProcessData,
		&e.InputQuantity, &e.OutputQuantity, &e.YieldRatio, &e.CostPerUnit, &e.TotalCost,
		&e.StartTime, &e.EndTime, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transformation: %w", err)
	}
	return &e, nil
}

// ListByCompany pages through a company's events, newest first.
func (r *TransformationRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.TransformationEvent, error) {
	query := `SELECT ` + transformationColumns + `
		FROM transformation_events WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transformations: %w", err)
	}
	defer rows.Close()

	var list []*entity.TransformationEvent
	for rows.Next() {
		var e entity.TransformationEvent
		if err := rows.Scan(&e.ID, &e.EventNumber, &e.CompanyID, &e.Type, &e.Status, &e.ProcessData,
			&e.InputQuantity, &e.OutputQuantity, &e.YieldRatio, &e.CostPerUnit, &e.TotalCost,
			&e.StartTime, &e.EndTime, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transformation: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update updates an event's status and metrics.
func (r *TransformationRepo) Update(event *entity.TransformationEvent) error {
	query := `
		UPDATE transformation_events
		SET status = $2, process_data = $3, input_quantity = $4, output_quantity = $5,
		    yield_ratio = $6, cost_per_unit = $7, total_cost = $8, end_time = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		event.ID, event.Status, event.ProcessData, event.InputQuantity, event.OutputQuantity,
		event.YieldRatio, event.CostPerUnit, event.TotalCost, event.EndTime, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transformation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
