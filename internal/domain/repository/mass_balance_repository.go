package repository

import "github.com/logicshaper19/palmtrace/internal/domain/entity"

// MassBalanceRepository defines the persistence port for append-only
// MassBalanceValidation audit entries.
type MassBalanceRepository interface {
	Create(validation *entity.MassBalanceValidation) error
	ListByTransformation(transformationID string) ([]*entity.MassBalanceValidation, error)
}
