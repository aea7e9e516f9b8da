package postgres

import (
	"context"
	"fmt"

	"github.com/logicshaper19/palmtrace/internal/domain/entity"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

var _ repository.MassBalanceRepository = (*MassBalanceRepo)(nil)

// MassBalanceRepo implements MassBalanceRepository over PostgreSQL.
// Validation entries are append-only audit records.
type MassBalanceRepo struct {
	q Querier
}

// NewMassBalanceRepository builds the adapter. Pass a pool or tx (Querier).
func NewMassBalanceRepository(q Querier) *MassBalanceRepo {
	return &MassBalanceRepo{q: q}
}

const massBalanceColumns = `id, transformation_id, input_quantity, output_quantity,
	expected_output, waste_quantity, balance_ratio, deviation_percentage,
	tolerance, is_balanced, notes, created_by, created_at`

// Create appends one validation record.
func (r *MassBalanceRepo) Create(v *entity.MassBalanceValidation) error {
	query := `
		INSERT INTO mass_balance_validations (` + massBalanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.TransformationID, v.InputQuantity, v.OutputQuantity,
		v.ExpectedOutput, v.WasteQuantity, v.BalanceRatio, v.DeviationPercentage,
		v.Tolerance, v.IsBalanced, v.Notes, v.CreatedBy, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert mass balance validation: %w", err)
	}
	return nil
}

// ListByTransformation returns an event's validation history, oldest first.
func (r *MassBalanceRepo) ListByTransformation(transformationID string) ([]*entity.MassBalanceValidation, error) {
	query := `SELECT ` + massBalanceColumns + `
		FROM mass_balance_validations WHERE transformation_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, transformationID)
	if err != nil {
		return nil, fmt.Errorf("list mass balance validations: %w", err)
	}
	defer rows.Close()

	var list []*entity.MassBalanceValidation
	for rows.Next() {
		var v entity.MassBalanceValidation
		if err := rows.Scan(&v.ID, &v.TransformationID, &v.InputQuantity, &v.OutputQuantity,
			&v.ExpectedOutput, &v.WasteQuantity, &v.BalanceRatio, &v.DeviationPercentage,
			&v.Tolerance, &v.IsBalanced, &v.Notes, &v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mass balance validation: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
