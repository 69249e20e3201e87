package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
)

var _ repository.CrewChiefRepository = (*CrewChiefRepo)(nil)

// CrewChiefRepo implementación del puerto CrewChiefRepository sobre PostgreSQL.
type CrewChiefRepo struct {
	pool *pgxpool.Pool
}

// NewCrewChiefRepository construye el adaptador de persistencia para crew chiefs.
func NewCrewChiefRepository(pool *pgxpool.Pool) *CrewChiefRepo {
	return &CrewChiefRepo{pool: pool}
}

// Create persiste un crew chief. (company_id, name) duplicado → domain.ErrConflict;
// el caller lo trata como "ya existía" y re-consulta.
func (r *CrewChiefRepo) Create(ctx context.Context, chief *entity.CrewChief) error {
	query := `
		INSERT INTO crew_chiefs (id, name, employee_code, company_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		chief.ID, chief.Name, chief.EmployeeCode, chief.CompanyID, chief.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert crew chief: %w", err)
	}
	return nil
}

// GetByID obtiene un crew chief por ID. Devuelve nil, nil si no existe.
func (r *CrewChiefRepo) GetByID(ctx context.Context, id string) (*entity.CrewChief, error) {
	query := `
		SELECT id, name, employee_code, company_id, created_at
		FROM crew_chiefs WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByNameAndCompany busca por el par único (name, company_id). Devuelve nil, nil si no existe.
func (r *CrewChiefRepo) GetByNameAndCompany(ctx context.Context, name, companyID string) (*entity.CrewChief, error) {
	query := `
		SELECT id, name, employee_code, company_id, created_at
		FROM crew_chiefs WHERE name = $1 AND company_id = $2`
	var c entity.CrewChief
	err := r.pool.QueryRow(ctx, query, name, companyID).Scan(
		&c.ID, &c.Name, &c.EmployeeCode, &c.CompanyID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crew chief by name: %w", err)
	}
	return &c, nil
}

func (r *CrewChiefRepo) scanOne(ctx context.Context, query string, arg any) (*entity.CrewChief, error) {
	var c entity.CrewChief
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.EmployeeCode, &c.CompanyID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crew chief: %w", err)
	}
	return &c, nil
}

// List lista crew chiefs ordenados por nombre; companyID "" lista todos.
func (r *CrewChiefRepo) List(ctx context.Context, companyID string) ([]*entity.CrewChief, error) {
	query := `
		SELECT id, name, employee_code, company_id, created_at
		FROM crew_chiefs
		WHERE ($1 = '' OR company_id::text = $1)
		ORDER BY name`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list crew chiefs: %w", err)
	}
	defer rows.Close()
	var list []*entity.CrewChief
	for rows.Next() {
		var c entity.CrewChief
		if err := rows.Scan(&c.ID, &c.Name, &c.EmployeeCode, &c.CompanyID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan crew chief: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un crew chief por ID.
func (r *CrewChiefRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM crew_chiefs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete crew chief: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
