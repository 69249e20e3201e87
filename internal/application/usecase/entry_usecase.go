package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/timesheet-api/internal/application/auth"
	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
	"github.com/jhoicas/timesheet-api/internal/domain/timesheet"
)

// EntryNotifier puerto de notificación de entries creadas. Lo implementa el
// notifier SMTP de infraestructura; el dispatch aquí es fire-and-forget.
type EntryNotifier interface {
	EntryCreated(ctx context.Context, entry *entity.TimesheetEntry, company *entity.Company) error
}

// EntryUseCase núcleo del sistema: creación bulk anidada de timesheet entries
// con resultado por unidad, listado con visibilidad por rol y edición con
// chequeo de propiedad.
type EntryUseCase struct {
	entryRepo   repository.EntryRepository
	companyRepo repository.CompanyRepository
	crewRepo    repository.CrewChiefRepository
	crewUC      *CrewChiefUseCase
	notifier    EntryNotifier
	log         zerolog.Logger
}

// NewEntryUseCase construye el caso de uso de entries con sus puertos.
func NewEntryUseCase(
	entryRepo repository.EntryRepository,
	companyRepo repository.CompanyRepository,
	crewRepo repository.CrewChiefRepository,
	crewUC *CrewChiefUseCase,
	notifier EntryNotifier,
	log zerolog.Logger,
) *EntryUseCase {
	return &EntryUseCase{
		entryRepo:   entryRepo,
		companyRepo: companyRepo,
		crewRepo:    crewRepo,
		crewUC:      crewUC,
		notifier:    notifier,
		log:         log,
	}
}

// CreateBulk procesa la petición anidada company → jobs → crews creando una
// entry por cada unidad (job × crew line), secuencialmente y cada una en su
// propia transacción. Una unidad fallida no revierte a las ya persistidas:
// la respuesta detalla el resultado de cada una y cuántas se crearon.
//
// El job_id de cada bloque debe no existir en entries previas; las N crew
// lines del mismo bloque sí lo comparten entre ellas.
func (uc *EntryUseCase) CreateBulk(ctx context.Context, p *auth.Principal, in dto.CreateEntriesRequest) (*dto.CreateEntriesResponse, error) {
	if in.CompanyID == "" || len(in.Jobs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", in.EntryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	resp := &dto.CreateEntriesResponse{Results: []dto.UnitResult{}}
	for _, job := range in.Jobs {
		jobID, jobErr := uc.resolveJobID(ctx, company, date, job)
		if len(job.Crews) == 0 {
			resp.Results = append(resp.Results, dto.UnitResult{
				JobID: jobID,
				Error: "el job no tiene crews",
			})
			continue
		}
		for _, crew := range job.Crews {
			res := dto.UnitResult{JobID: jobID, CrewChief: crewLabel(crew)}
			if jobErr != nil {
				res.Error = jobErr.Error()
				resp.Results = append(resp.Results, res)
				continue
			}
			entry, err := uc.createUnit(ctx, p, company, date, jobID, job, crew)
			if err != nil {
				res.Error = err.Error()
				resp.Results = append(resp.Results, res)
				continue
			}
			res.EntryID = entry.ID
			res.UniqueID = entry.UniqueID
			resp.Results = append(resp.Results, res)
			resp.Created++

			go uc.notify(entry, company)
		}
	}
	return resp, nil
}

// resolveJobID devuelve el job_id del bloque: el texto libre provisto, o el
// construido desde sequence + job_type con la abreviatura de la company. En
// ambos casos verifica que no exista ya en entries de peticiones anteriores.
func (uc *EntryUseCase) resolveJobID(ctx context.Context, company *entity.Company, date time.Time, job dto.JobBlock) (string, error) {
	jobID := strings.TrimSpace(job.JobID)
	if jobID == "" {
		if strings.TrimSpace(job.Sequence) == "" {
			return "", errors.New("se requiere job_id, o sequence + job_type")
		}
		built, err := timesheet.BuildJobID(company.Abbreviation, date, job.Sequence, job.JobType)
		if err != nil {
			return "", err
		}
		jobID = built
	}
	exists, err := uc.entryRepo.ExistsByJobID(ctx, jobID)
	if err != nil {
		return jobID, err
	}
	if exists {
		return jobID, fmt.Errorf("el job id %q ya existe", jobID)
	}
	return jobID, nil
}

// createUnit valida y persiste una unidad job × crew line.
func (uc *EntryUseCase) createUnit(ctx context.Context, p *auth.Principal, company *entity.Company, date time.Time, jobID string, job dto.JobBlock, crew dto.CrewLine) (*entity.TimesheetEntry, error) {
	if err := timesheet.ValidateInterval(crew.TimeIn, crew.TimeOut); err != nil {
		return nil, err
	}
	chief, err := uc.resolveCrew(ctx, company.ID, crew)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &entity.TimesheetEntry{
		ID:          uuid.New().String(),
		UniqueID:    timesheet.NewUniqueID(date, nil),
		JobID:       jobID,
		JobTypeCode: strings.ToUpper(strings.TrimSpace(job.JobType)),
		CompanyID:   company.ID,
		CrewChiefID: chief.ID,
		CreatedBy:   p.UserID,
		EntryDate:   date,
		CreatedAt:   now,
		UpdatedAt:   now,
		Intervals: []entity.TimeInterval{
			{TimeIn: crew.TimeIn, TimeOut: crew.TimeOut},
		},
		CompanyName:   company.Name,
		CompanyAbbr:   company.Abbreviation,
		CrewChiefName: chief.Name,
		EmployeeCode:  chief.EmployeeCode,
	}

	// unique_id es aleatorio: ante la colisión improbable, regenerar y reintentar.
	for attempt := 0; ; attempt++ {
		err = uc.entryRepo.Create(ctx, entry)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt >= 2 {
			return nil, err
		}
		entry.UniqueID = timesheet.NewUniqueID(date, nil)
	}
}

// resolveCrew obtiene el crew chief de la línea: por id si viene referenciado,
// o por nombre con find-or-create contra la company de la petición.
func (uc *EntryUseCase) resolveCrew(ctx context.Context, companyID string, crew dto.CrewLine) (*entity.CrewChief, error) {
	if crew.CrewChiefID != "" {
		chief, err := uc.crewRepo.GetByID(ctx, crew.CrewChiefID)
		if err != nil {
			return nil, err
		}
		if chief == nil {
			return nil, errors.New("crew chief no encontrado")
		}
		return chief, nil
	}
	if strings.TrimSpace(crew.Name) == "" {
		return nil, errors.New("se requiere crew_chief_id o name")
	}
	resp, err := uc.crewUC.FindOrCreate(ctx, dto.CreateCrewChiefRequest{
		Name:         crew.Name,
		EmployeeCode: crew.EmployeeCode,
		CompanyID:    companyID,
	})
	if err != nil {
		return nil, err
	}
	return &entity.CrewChief{
		ID:           resp.ID,
		Name:         resp.Name,
		EmployeeCode: resp.EmployeeCode,
		CompanyID:    resp.CompanyID,
	}, nil
}

func (uc *EntryUseCase) notify(entry *entity.TimesheetEntry, company *entity.Company) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := uc.notifier.EntryCreated(ctx, entry, company); err != nil {
		uc.log.Error().Err(err).
			Str("unique_id", entry.UniqueID).
			Msg("fallo al notificar la entry creada")
	}
}

func crewLabel(crew dto.CrewLine) string {
	if name := strings.TrimSpace(crew.Name); name != "" {
		return name
	}
	return crew.CrewChiefID
}

// List lista entries en el rango opcional de fechas. Los program managers
// solo ven las suyas; el filtro se aplica en la consulta, no después.
func (uc *EntryUseCase) List(ctx context.Context, p *auth.Principal, startDate, endDate string) ([]dto.EntryResponse, error) {
	entries, err := uc.ListEntities(ctx, p, startDate, endDate)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *toEntryResponse(e))
	}
	return items, nil
}

// ListEntities variante que devuelve las entidades con joins e intervalos,
// para el listado JSON y para el reporte Excel.
func (uc *EntryUseCase) ListEntities(ctx context.Context, p *auth.Principal, startDate, endDate string) ([]*entity.TimesheetEntry, error) {
	filter := repository.EntryFilter{}
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.Start = &t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.End = &t
	}
	if p.Role == entity.RoleProgramManager {
		filter.CreatedBy = p.UserID
	}
	return uc.entryRepo.List(ctx, filter)
}

// GetByID obtiene una entry. Un program manager pidiendo una entry ajena
// recibe domain.ErrForbidden, no ErrNotFound: la entry existe, no es suya.
func (uc *EntryUseCase) GetByID(ctx context.Context, p *auth.Principal, id string) (*dto.EntryResponse, error) {
	entry, err := uc.ownedEntry(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// Update reemplaza los escalares de la entry y el conjunto completo de
// intervalos. Si el job_id cambia, el nuevo no puede existir en otra entry.
func (uc *EntryUseCase) Update(ctx context.Context, p *auth.Principal, id string, in dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	entry, err := uc.ownedEntry(ctx, p, id)
	if err != nil {
		return nil, err
	}

	jobID := strings.TrimSpace(in.JobID)
	if in.CompanyID == "" || in.CrewChiefID == "" || jobID == "" || len(in.TimeEntries) == 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", in.EntryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	for _, iv := range in.TimeEntries {
		if err := timesheet.ValidateInterval(iv.TimeIn, iv.TimeOut); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
		}
	}
	if jobID != entry.JobID {
		exists, err := uc.entryRepo.ExistsByJobID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrConflict
		}
	}

	entry.JobID = jobID
	entry.JobTypeCode = strings.ToUpper(strings.TrimSpace(in.JobType))
	entry.CompanyID = in.CompanyID
	entry.CrewChiefID = in.CrewChiefID
	entry.EntryDate = date
	entry.UpdatedAt = time.Now()
	entry.Intervals = make([]entity.TimeInterval, 0, len(in.TimeEntries))
	for _, iv := range in.TimeEntries {
		entry.Intervals = append(entry.Intervals, entity.TimeInterval{TimeIn: iv.TimeIn, TimeOut: iv.TimeOut})
	}

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	updated, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return toEntryResponse(updated), nil
}

// Delete elimina la entry y sus intervalos (cascada del esquema), con el mismo
// chequeo de propiedad que Update.
func (uc *EntryUseCase) Delete(ctx context.Context, p *auth.Principal, id string) error {
	if _, err := uc.ownedEntry(ctx, p, id); err != nil {
		return err
	}
	return uc.entryRepo.Delete(ctx, id)
}

// ownedEntry carga la entry y aplica la regla de propiedad: los program
// managers solo acceden a las que crearon.
func (uc *EntryUseCase) ownedEntry(ctx context.Context, p *auth.Principal, id string) (*entity.TimesheetEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if p.Role == entity.RoleProgramManager && entry.CreatedBy != p.UserID {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}

func toEntryResponse(e *entity.TimesheetEntry) *dto.EntryResponse {
	if e == nil {
		return nil
	}
	intervals := make([]dto.IntervalDTO, 0, len(e.Intervals))
	for _, iv := range e.Intervals {
		intervals = append(intervals, dto.IntervalDTO{TimeIn: iv.TimeIn, TimeOut: iv.TimeOut})
	}
	return &dto.EntryResponse{
		ID:            e.ID,
		UniqueID:      e.UniqueID,
		JobID:         e.JobID,
		JobType:       e.JobTypeCode,
		CompanyID:     e.CompanyID,
		CompanyName:   e.CompanyName,
		CrewChiefID:   e.CrewChiefID,
		CrewChiefName: e.CrewChiefName,
		EmployeeCode:  e.EmployeeCode,
		EntryDate:     e.EntryDate.Format("2006-01-02"),
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		TimeEntries:   intervals,
	}
}
