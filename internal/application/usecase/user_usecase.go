package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios (operaciones solo-admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista los program managers con su company resuelta.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserListItem, error) {
	list, err := uc.repo.ListByRole(ctx, entity.RoleProgramManager)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserListItem, 0, len(list))
	for _, u := range list {
		items = append(items, dto.UserListItem{
			ID:          u.ID,
			Username:    u.Username,
			FullName:    u.FullName,
			Email:       u.Email,
			Role:        u.Role,
			CompanyID:   u.CompanyID,
			CompanyName: u.CompanyName,
			CompanyAbbr: u.CompanyAbbr,
			CreatedAt:   u.CreatedAt,
		})
	}
	return items, nil
}

// Create crea un usuario nuevo. Rol vacío = program_manager.
// Username duplicado → domain.ErrConflict.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleProgramManager
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.TrimSpace(in.Email),
		Role:         role,
		CompanyID:    in.CompanyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}, nil
}

// Update modifica un usuario. Los admins no se editan por esta vía; password
// vacío conserva la actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.Role == entity.RoleAdmin {
		return domain.ErrForbidden
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return domain.ErrInvalidInput
	}

	user.Username = username
	user.FullName = strings.TrimSpace(in.FullName)
	user.Email = strings.TrimSpace(in.Email)
	user.CompanyID = in.CompanyID
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()

	return uc.repo.Update(ctx, user)
}

// Delete elimina un usuario. Borrarse a sí mismo o borrar admins está prohibido.
func (uc *UserUseCase) Delete(ctx context.Context, id, requesterID string) error {
	if id == requesterID {
		return domain.ErrSelfDelete
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.Role == entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}
