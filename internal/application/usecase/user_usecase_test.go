package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return domain.ErrConflict
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func newUserFixture(t *testing.T) (*UserUseCase, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	for _, spec := range []struct{ id, username, role string }{
		{"u-admin", "admin", entity.RoleAdmin},
		{"u-pm1", "pm1", entity.RoleProgramManager},
		{"u-pm2", "pm2", entity.RoleProgramManager},
	} {
		repo.users[spec.id] = &entity.User{
			ID:           spec.id,
			Username:     spec.username,
			PasswordHash: string(hash),
			Role:         spec.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}
	return NewUserUseCase(repo), repo
}

func TestUserDeleteSelfForbidden(t *testing.T) {
	uc, repo := newUserFixture(t)

	err := uc.Delete(context.Background(), "u-admin", "u-admin")
	assert.ErrorIs(t, err, domain.ErrSelfDelete,
		"borrarse a sí mismo debe rechazarse incluso siendo admin")
	assert.NotNil(t, repo.users["u-admin"], "la fila del usuario debe sobrevivir intacta")

	// el mismo guard aplica a roles no-admin
	err = uc.Delete(context.Background(), "u-pm1", "u-pm1")
	assert.ErrorIs(t, err, domain.ErrSelfDelete)
	assert.NotNil(t, repo.users["u-pm1"])
}

func TestUserDeleteAdminProtegido(t *testing.T) {
	uc, repo := newUserFixture(t)

	err := uc.Delete(context.Background(), "u-admin", "u-pm1")
	assert.ErrorIs(t, err, domain.ErrForbidden, "los admins no se borran por esta vía")
	assert.NotNil(t, repo.users["u-admin"])
}

func TestUserDeleteOtroUsuario(t *testing.T) {
	uc, repo := newUserFixture(t)

	require.NoError(t, uc.Delete(context.Background(), "u-pm2", "u-admin"))
	assert.Nil(t, repo.users["u-pm2"])

	err := uc.Delete(context.Background(), "no-such", "u-admin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserCreateRolPorDefecto(t *testing.T) {
	uc, repo := newUserFixture(t)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Username: "nuevo",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProgramManager, out.Role, "rol vacío crea un program manager")

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{
		Username: "nuevo",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "username duplicado debe rechazarse")

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{
		Username: "otro",
		Password: "secret123",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol fuera del catálogo debe rechazarse")
	assert.Len(t, repo.users, 4)
}

func TestUserUpdatePasswordOpcional(t *testing.T) {
	uc, repo := newUserFixture(t)
	originalHash := repo.users["u-pm1"].PasswordHash

	err := uc.Update(context.Background(), "u-pm1", dto.UpdateUserRequest{
		Username: "pm1-renombrado",
	})
	require.NoError(t, err)
	assert.Equal(t, originalHash, repo.users["u-pm1"].PasswordHash,
		"password vacío conserva el hash actual")
	assert.Equal(t, "pm1-renombrado", repo.users["u-pm1"].Username)

	err = uc.Update(context.Background(), "u-pm1", dto.UpdateUserRequest{
		Username: "pm1-renombrado",
		Password: "nueva-password",
	})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, repo.users["u-pm1"].PasswordHash,
		"password no vacío debe re-hashearse")
}

func TestUserUpdateAdminProtegido(t *testing.T) {
	uc, _ := newUserFixture(t)

	err := uc.Update(context.Background(), "u-admin", dto.UpdateUserRequest{Username: "root"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "los admins no se editan por esta vía")
}
