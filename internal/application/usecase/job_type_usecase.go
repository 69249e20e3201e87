package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
	"github.com/jhoicas/timesheet-api/internal/domain/timesheet"
)

// JobTypeUseCase reglas de negocio para job types.
type JobTypeUseCase struct {
	repo repository.JobTypeRepository
	log  zerolog.Logger
}

// NewJobTypeUseCase construye el caso de uso con el puerto de persistencia.
func NewJobTypeUseCase(repo repository.JobTypeRepository, log zerolog.Logger) *JobTypeUseCase {
	return &JobTypeUseCase{repo: repo, log: log}
}

// Create crea un job type. Código duplicado → domain.ErrConflict.
func (uc *JobTypeUseCase) Create(ctx context.Context, in dto.CreateJobTypeRequest) (*dto.JobTypeResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	jt := &entity.JobType{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, jt); err != nil {
		return nil, err
	}
	return toJobTypeResponse(jt), nil
}

// List devuelve el registro de job types; si la consulta falla o no hay filas,
// sirve el catálogo fijo de 6 códigos en su orden documentado. La UI de
// captura no puede quedarse sin tipos.
func (uc *JobTypeUseCase) List(ctx context.Context) []dto.JobTypeResponse {
	list, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("consulta de job types falló, sirviendo catálogo fijo")
		return builtinJobTypeResponses()
	}
	if len(list) == 0 {
		return builtinJobTypeResponses()
	}
	items := make([]dto.JobTypeResponse, 0, len(list))
	for _, jt := range list {
		items = append(items, *toJobTypeResponse(jt))
	}
	return items
}

// Delete elimina un job type por ID.
func (uc *JobTypeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func builtinJobTypeResponses() []dto.JobTypeResponse {
	builtin := timesheet.BuiltinJobTypes()
	items := make([]dto.JobTypeResponse, 0, len(builtin))
	for i := range builtin {
		items = append(items, *toJobTypeResponse(&builtin[i]))
	}
	return items
}

func toJobTypeResponse(jt *entity.JobType) *dto.JobTypeResponse {
	if jt == nil {
		return nil
	}
	return &dto.JobTypeResponse{
		ID:          jt.ID,
		Code:        jt.Code,
		Name:        jt.Name,
		Description: jt.Description,
	}
}
