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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario. Username duplicado → domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, full_name, email, role, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.FullName, user.Email, user.Role,
		nullIfEmpty(user.CompanyID), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, company_id, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByUsername obtiene un usuario por username. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, company_id, created_at, updated_at
		FROM users WHERE username = $1`
	return r.scanOne(ctx, query, username)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	var companyID *string
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email, &u.Role,
		&companyID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CompanyID = orEmpty(companyID)
	return &u, nil
}

// ListByRole lista usuarios de un rol con su company (join), ordenados por username.
// role "" lista todos.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.full_name, u.email, u.role, u.company_id,
		       u.created_at, u.updated_at, c.name, c.abbreviation
		FROM users u
		LEFT JOIN companies c ON u.company_id = c.id
		WHERE ($1 = '' OR u.role = $1)
		ORDER BY u.username`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var companyID, companyName, companyAbbr *string
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Email, &u.Role,
			&companyID, &u.CreatedAt, &u.UpdatedAt, &companyName, &companyAbbr); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.CompanyID = orEmpty(companyID)
		u.CompanyName = orEmpty(companyName)
		u.CompanyAbbr = orEmpty(companyAbbr)
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update actualiza un usuario. Username duplicado → domain.ErrConflict.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET username = $2, password_hash = $3, full_name = $4, email = $5,
		       company_id = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.FullName, user.Email,
		nullIfEmpty(user.CompanyID), user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
