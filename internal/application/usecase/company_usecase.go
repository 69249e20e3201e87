package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
)

// CompanyUseCase reglas de negocio para companies.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una company. Nombre o abreviatura duplicados → domain.ErrConflict.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	abbr := strings.ToUpper(strings.TrimSpace(in.Abbreviation))
	if name == "" || abbr == "" {
		return nil, domain.ErrInvalidInput
	}
	company := &entity.Company{
		ID:                   uuid.New().String(),
		Name:                 name,
		Abbreviation:         abbr,
		NotificationEmail:    strings.TrimSpace(in.NotificationEmail),
		NotificationsEnabled: in.NotificationsEnabled,
		CreatedAt:            time.Now(),
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista todas las companies.
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return items, nil
}

// Delete elimina una company por ID.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Abbreviation:         c.Abbreviation,
		NotificationEmail:    c.NotificationEmail,
		NotificationsEnabled: c.NotificationsEnabled,
		CreatedAt:            c.CreatedAt,
	}
}
