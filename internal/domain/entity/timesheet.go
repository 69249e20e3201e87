package entity

import "time"

// TimesheetEntry es una jornada reportada: un crew chief, una company, una fecha
// y al menos un intervalo de tiempo. JobID es el identificador visible y único
// de por vida (sin reuso tras borrar); UniqueID es la referencia interna de
// auditoría/email con formato TS-{YYYYMMDD}-{NNNN}.
type TimesheetEntry struct {
	ID          string
	UniqueID    string
	JobID       string
	JobTypeCode string // opcional
	CompanyID   string
	CrewChiefID string
	CreatedBy   string // user id del creador; delimita la visibilidad de los program managers
	EntryDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Intervals []TimeInterval

	// Campos de solo lectura poblados por joins.
	CompanyName   string
	CompanyAbbr   string
	CrewChiefName string
	EmployeeCode  string
}

// TimeInterval es un tramo horario de una entry (hora de pared HH:MM, sin fecha;
// la fecha la aporta la entry). Una entry puede tener varios (turnos partidos).
type TimeInterval struct {
	ID      string
	EntryID string
	TimeIn  string // "HH:MM"
	TimeOut string // "HH:MM"
}
