package repository

import (
	"context"
	"time"

	"github.com/jhoicas/timesheet-api/internal/domain/entity"
)

// EntryFilter delimita un listado de entries. El filtro de visibilidad por rol
// se aplica aquí, en la consulta, para no filtrar filas después de leerlas.
type EntryFilter struct {
	Start     *time.Time // inclusive
	End       *time.Time // inclusive
	CreatedBy string     // "" = sin restricción (admin/accountant)
}

// EntryRepository puerto de persistencia para TimesheetEntry y sus intervalos.
// Create persiste la entry con sus intervalos; devuelve domain.ErrConflict si
// el unique_id colisiona. La unicidad del job_id entre bloques la verifica el
// caso de uso con ExistsByJobID (varias entries de un mismo job block lo comparten).
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.TimesheetEntry) error
	GetByID(ctx context.Context, id string) (*entity.TimesheetEntry, error)
	List(ctx context.Context, filter EntryFilter) ([]*entity.TimesheetEntry, error)
	ExistsByJobID(ctx context.Context, jobID string) (bool, error)
	// Update reemplaza los escalares y el conjunto completo de intervalos
	// (delete-then-insert, no diff) en una sola transacción.
	Update(ctx context.Context, entry *entity.TimesheetEntry) error
	// Delete elimina la entry y sus intervalos en cascada, atómicamente.
	Delete(ctx context.Context, id string) error
}
