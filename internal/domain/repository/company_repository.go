package repository

import (
	"context"

	"github.com/jhoicas/timesheet-api/internal/domain/entity"
)

// CompanyRepository puerto de persistencia para Company.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error
}
