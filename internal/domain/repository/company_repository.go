package repository

import "github.com/logicshaper19/palmtrace/internal/domain/entity"

// CompanyRepository defines the persistence port for Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByEmail(email string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}
