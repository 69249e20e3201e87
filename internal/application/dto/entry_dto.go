package dto

import "time"

// IntervalDTO un tramo horario (hora de pared, la fecha la pone la entry).
type IntervalDTO struct {
	TimeIn  string `json:"time_in" validate:"required"`
	TimeOut string `json:"time_out" validate:"required"`
}

// CrewLine una asignación dentro de un job block: crew existente por id o
// nuevo por nombre literal (find-or-create), más su tramo horario.
type CrewLine struct {
	CrewChiefID  string `json:"crew_chief_id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	TimeIn       string `json:"time_in"`
	TimeOut      string `json:"time_out"`
}

// JobBlock un job dentro de la petición bulk. JobID libre, o Sequence+JobType
// para que el servidor construya {ABBR}-{YY}-{NNNN}-{TYPE} con chequeo de unicidad.
type JobBlock struct {
	JobID    string     `json:"job_id"`
	Sequence string     `json:"sequence"`
	JobType  string     `json:"job_type"`
	Crews    []CrewLine `json:"crews"`
}

// CreateEntriesRequest petición bulk anidada: company → jobs → crews.
type CreateEntriesRequest struct {
	CompanyID string     `json:"company_id" validate:"required"`
	EntryDate string     `json:"entry_date" validate:"required"` // YYYY-MM-DD
	Jobs      []JobBlock `json:"jobs" validate:"required,min=1"`
}

// UnitResult resultado de una unidad (job × crew line) de la petición bulk.
// Error vacío = la unidad se persistió.
type UnitResult struct {
	JobID     string `json:"job_id"`
	CrewChief string `json:"crew_chief"`
	EntryID   string `json:"entry_id,omitempty"`
	UniqueID  string `json:"unique_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CreateEntriesResponse respuesta bulk: cuántas unidades se persistieron y el
// detalle por unidad (las fallidas no revierten a las exitosas).
type CreateEntriesResponse struct {
	Created int          `json:"created"`
	Results []UnitResult `json:"results"`
}

// UpdateEntryRequest reemplaza los escalares de la entry y el conjunto
// completo de intervalos (no es un diff).
type UpdateEntryRequest struct {
	CompanyID   string        `json:"company_id" validate:"required"`
	CrewChiefID string        `json:"crew_chief_id" validate:"required"`
	JobID       string        `json:"job_id" validate:"required"`
	JobType     string        `json:"job_type"`
	EntryDate   string        `json:"entry_date" validate:"required"`
	TimeEntries []IntervalDTO `json:"time_entries" validate:"required,min=1"`
}

// EntryResponse salida de una entry con referencias resueltas e intervalos.
type EntryResponse struct {
	ID            string        `json:"id"`
	UniqueID      string        `json:"unique_id"`
	JobID         string        `json:"job_id"`
	JobType       string        `json:"job_type,omitempty"`
	CompanyID     string        `json:"company_id"`
	CompanyName   string        `json:"company_name"`
	CrewChiefID   string        `json:"crew_chief_id"`
	CrewChiefName string        `json:"crew_chief_name"`
	EmployeeCode  string        `json:"employee_code,omitempty"`
	EntryDate     string        `json:"entry_date"`
	CreatedBy     string        `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	TimeEntries   []IntervalDTO `json:"time_entries"`
}
