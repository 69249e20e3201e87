package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
)

var _ repository.JobTypeRepository = (*JobTypeRepo)(nil)

// JobTypeRepo implementación del puerto JobTypeRepository sobre PostgreSQL.
type JobTypeRepo struct {
	pool *pgxpool.Pool
}

// NewJobTypeRepository construye el adaptador de persistencia para job types.
func NewJobTypeRepository(pool *pgxpool.Pool) *JobTypeRepo {
	return &JobTypeRepo{pool: pool}
}

// Create persiste un job type. Código duplicado → domain.ErrConflict.
func (r *JobTypeRepo) Create(ctx context.Context, jobType *entity.JobType) error {
	query := `
		INSERT INTO job_types (id, code, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		jobType.ID, jobType.Code, jobType.Name, jobType.Description, jobType.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert job type: %w", err)
	}
	return nil
}

// List lista los job types ordenados por código.
func (r *JobTypeRepo) List(ctx context.Context) ([]*entity.JobType, error) {
	query := `
		SELECT id, code, name, description, created_at
		FROM job_types ORDER BY code`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list job types: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobType
	for rows.Next() {
		var jt entity.JobType
		if err := rows.Scan(&jt.ID, &jt.Code, &jt.Name, &jt.Description, &jt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan job type: %w", err)
		}
		list = append(list, &jt)
	}
	return list, rows.Err()
}

// Delete elimina un job type por ID.
func (r *JobTypeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM job_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
