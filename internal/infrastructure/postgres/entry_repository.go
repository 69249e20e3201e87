package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación del puerto EntryRepository sobre PostgreSQL.
// Entry e intervalos se escriben siempre dentro de la misma transacción.
type EntryRepo struct {
	pool *pgxpool.Pool
}

// NewEntryRepository construye el adaptador de persistencia para timesheet entries.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepo {
	return &EntryRepo{pool: pool}
}

const entrySelect = `
	SELECT te.id, te.unique_id, te.job_id, te.job_type_code, te.company_id,
	       te.crew_chief_id, te.created_by, te.entry_date, te.created_at, te.updated_at,
	       c.name, c.abbreviation, cc.name, cc.employee_code
	FROM timesheet_entries te
	JOIN companies c ON te.company_id = c.id
	JOIN crew_chiefs cc ON te.crew_chief_id = cc.id`

// Create persiste la entry con sus intervalos en una transacción.
// unique_id duplicado → domain.ErrConflict (la tx completa se revierte:
// cero escrituras parciales para esa unidad).
func (r *EntryRepo) Create(ctx context.Context, entry *entity.TimesheetEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO timesheet_entries (id, unique_id, job_id, job_type_code, company_id,
		       crew_chief_id, created_by, entry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = tx.Exec(ctx, query,
		entry.ID, entry.UniqueID, entry.JobID, entry.JobTypeCode, entry.CompanyID,
		entry.CrewChiefID, entry.CreatedBy, entry.EntryDate, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert entry: %w", err)
	}

	if err := insertIntervals(ctx, tx, entry.ID, entry.Intervals); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertIntervals(ctx context.Context, tx pgx.Tx, entryID string, intervals []entity.TimeInterval) error {
	query := `INSERT INTO time_intervals (id, entry_id, time_in, time_out) VALUES ($1, $2, $3, $4)`
	for i := range intervals {
		iv := &intervals[i]
		if iv.ID == "" {
			iv.ID = uuid.New().String()
		}
		iv.EntryID = entryID
		if _, err := tx.Exec(ctx, query, iv.ID, iv.EntryID, iv.TimeIn, iv.TimeOut); err != nil {
			return fmt.Errorf("insert interval: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una entry con joins e intervalos. Devuelve nil, nil si no existe.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.TimesheetEntry, error) {
	var e entity.TimesheetEntry
	err := r.pool.QueryRow(ctx, entrySelect+` WHERE te.id = $1`, id).Scan(
		&e.ID, &e.UniqueID, &e.JobID, &e.JobTypeCode, &e.CompanyID,
		&e.CrewChiefID, &e.CreatedBy, &e.EntryDate, &e.CreatedAt, &e.UpdatedAt,
		&e.CompanyName, &e.CompanyAbbr, &e.CrewChiefName, &e.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	intervals, err := r.loadIntervals(ctx, []string{e.ID})
	if err != nil {
		return nil, err
	}
	e.Intervals = intervals[e.ID]
	return &e, nil
}

// ExistsByJobID indica si ya hay una entry con ese job_id.
func (r *EntryRepo) ExistsByJobID(ctx context.Context, jobID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM timesheet_entries WHERE job_id = $1)`, jobID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by job id: %w", err)
	}
	return exists, nil
}

// List lista entries con el filtro de fechas y de creador aplicado en la consulta,
// ordenadas por fecha descendente, con sus intervalos.
func (r *EntryRepo) List(ctx context.Context, filter repository.EntryFilter) ([]*entity.TimesheetEntry, error) {
	query := entrySelect + `
	WHERE ($1::date IS NULL OR te.entry_date >= $1)
	  AND ($2::date IS NULL OR te.entry_date <= $2)
	  AND ($3 = '' OR te.created_by::text = $3)
	ORDER BY te.entry_date DESC, te.created_at DESC`

	rows, err := r.pool.Query(ctx, query, filter.Start, filter.End, filter.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.TimesheetEntry
	var ids []string
	for rows.Next() {
		var e entity.TimesheetEntry
		if err := rows.Scan(
			&e.ID, &e.UniqueID, &e.JobID, &e.JobTypeCode, &e.CompanyID,
			&e.CrewChiefID, &e.CreatedBy, &e.EntryDate, &e.CreatedAt, &e.UpdatedAt,
			&e.CompanyName, &e.CompanyAbbr, &e.CrewChiefName, &e.EmployeeCode,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, &e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	intervals, err := r.loadIntervals(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		e.Intervals = intervals[e.ID]
	}
	return list, nil
}

func (r *EntryRepo) loadIntervals(ctx context.Context, entryIDs []string) (map[string][]entity.TimeInterval, error) {
	query := `
		SELECT id, entry_id, time_in, time_out
		FROM time_intervals
		WHERE entry_id = ANY($1)
		ORDER BY time_in`
	rows, err := r.pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("load intervals: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.TimeInterval, len(entryIDs))
	for rows.Next() {
		var iv entity.TimeInterval
		if err := rows.Scan(&iv.ID, &iv.EntryID, &iv.TimeIn, &iv.TimeOut); err != nil {
			return nil, fmt.Errorf("scan interval: %w", err)
		}
		out[iv.EntryID] = append(out[iv.EntryID], iv)
	}
	return out, rows.Err()
}

// Update reemplaza los escalares de la entry y el conjunto completo de
// intervalos (delete-then-insert) en una transacción.
func (r *EntryRepo) Update(ctx context.Context, entry *entity.TimesheetEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE timesheet_entries
		SET job_id = $2, job_type_code = $3, company_id = $4, crew_chief_id = $5,
		    entry_date = $6, updated_at = $7
		WHERE id = $1`
	tag, err := tx.Exec(ctx, query,
		entry.ID, entry.JobID, entry.JobTypeCode, entry.CompanyID, entry.CrewChiefID,
		entry.EntryDate, entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM time_intervals WHERE entry_id = $1`, entry.ID); err != nil {
		return fmt.Errorf("delete intervals: %w", err)
	}
	for i := range entry.Intervals {
		entry.Intervals[i].ID = "" // filas nuevas, no reuso de ids
	}
	if err := insertIntervals(ctx, tx, entry.ID, entry.Intervals); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete elimina la entry; los intervalos caen por el ON DELETE CASCADE del esquema.
func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM timesheet_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
