package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
)

// CrewChiefUseCase reglas de negocio para crew chiefs.
type CrewChiefUseCase struct {
	repo        repository.CrewChiefRepository
	companyRepo repository.CompanyRepository
}

// NewCrewChiefUseCase construye el caso de uso con sus puertos.
func NewCrewChiefUseCase(repo repository.CrewChiefRepository, companyRepo repository.CompanyRepository) *CrewChiefUseCase {
	return &CrewChiefUseCase{repo: repo, companyRepo: companyRepo}
}

// FindOrCreate devuelve el crew chief (name, company) existente o lo crea.
// La carrera de dos peticiones creando el mismo nombre a la vez la resuelve el
// constraint único: el perdedor recibe ErrConflict y re-consulta.
func (uc *CrewChiefUseCase) FindOrCreate(ctx context.Context, in dto.CreateCrewChiefRequest) (*dto.CrewChiefResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.repo.GetByNameAndCompany(ctx, name, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		resp := toCrewChiefResponse(existing)
		resp.Existed = true
		return resp, nil
	}

	chief := &entity.CrewChief{
		ID:           uuid.New().String(),
		Name:         name,
		EmployeeCode: strings.TrimSpace(in.EmployeeCode),
		CompanyID:    in.CompanyID,
		CreatedAt:    time.Now(),
	}
	err = uc.repo.Create(ctx, chief)
	if err == nil {
		return toCrewChiefResponse(chief), nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return nil, err
	}

	// Perdimos la carrera: otra petición lo creó primero. Tratarlo como "ya existía".
	existing, err = uc.repo.GetByNameAndCompany(ctx, name, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("crew chief %q desapareció tras el conflicto de inserción", name)
	}
	resp := toCrewChiefResponse(existing)
	resp.Existed = true
	return resp, nil
}

// List lista crew chiefs, opcionalmente filtrados por company.
func (uc *CrewChiefUseCase) List(ctx context.Context, companyID string) ([]dto.CrewChiefResponse, error) {
	list, err := uc.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CrewChiefResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCrewChiefResponse(c))
	}
	return items, nil
}

// Delete elimina un crew chief por ID.
func (uc *CrewChiefUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCrewChiefResponse(c *entity.CrewChief) *dto.CrewChiefResponse {
	if c == nil {
		return nil
	}
	return &dto.CrewChiefResponse{
		ID:           c.ID,
		Name:         c.Name,
		EmployeeCode: c.EmployeeCode,
		CompanyID:    c.CompanyID,
		CreatedAt:    c.CreatedAt,
	}
}
