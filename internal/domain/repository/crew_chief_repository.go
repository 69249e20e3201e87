package repository

import (
	"context"

	"github.com/jhoicas/timesheet-api/internal/domain/entity"
)

// CrewChiefRepository puerto de persistencia para CrewChief.
// Create devuelve domain.ErrConflict si ya existe (company_id, name); el caller
// resuelve la carrera del find-or-create re-consultando con GetByNameAndCompany.
type CrewChiefRepository interface {
	Create(ctx context.Context, chief *entity.CrewChief) error
	GetByID(ctx context.Context, id string) (*entity.CrewChief, error)
	GetByNameAndCompany(ctx context.Context, name, companyID string) (*entity.CrewChief, error)
	List(ctx context.Context, companyID string) ([]*entity.CrewChief, error) // companyID "" = todas
	Delete(ctx context.Context, id string) error
}
