package repository

import "github.com/logicshaper19/palmtrace/internal/domain/entity"

// TransformationRepository defines the persistence port for TransformationEvent.
type TransformationRepository interface {
	Create(event *entity.TransformationEvent) error
	GetByID(id string) (*entity.TransformationEvent, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.TransformationEvent, error)
	Update(event *entity.TransformationEvent) error
}
