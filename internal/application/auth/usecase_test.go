package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerpro/taller-api/internal/application/auth"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	copia := *u
	f.users[u.ID] = &copia
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copia := *u
	return &copia, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copia := *u
			return &copia, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copia := *u
	f.users[u.ID] = &copia
	return nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		copia := *u
		out = append(out, &copia)
	}
	return out, nil
}

func (f *fakeUserRepo) Count() (int, error) { return len(f.users), nil }

func buildAuthUseCase() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "taller-api-test",
	})
	return uc, repo
}

func registrar(t *testing.T, uc *auth.AuthUseCase, email, role string) *dto.UserResponse {
	t.Helper()
	out, err := uc.RegisterUser(&dto.RegisterUserRequest{
		Email:    email,
		Password: "clave-segura-123",
		Name:     "Usuario de Prueba",
		Role:     role,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateUser_CambiaNombreYRol(t *testing.T) {
	uc, repo := buildAuthUseCase()
	creado := registrar(t, uc, "mecanico@taller.com", entity.RoleMecanico)

	out, err := uc.UpdateUser(creado.ID, &dto.UpdateUserRequest{
		Name: "Juana Pérez",
		Role: entity.RoleRecepcion,
	})
	require.NoError(t, err)

	assert.Equal(t, "Juana Pérez", out.Name)
	assert.Equal(t, entity.RoleRecepcion, out.Role)
	assert.Equal(t, creado.Email, out.Email, "el email no cambia por esta vía")

	stored, _ := repo.GetByID(creado.ID)
	assert.Equal(t, entity.RoleRecepcion, stored.Role)
}

func TestUpdateUser_Inexistente(t *testing.T) {
	uc, _ := buildAuthUseCase()
	_, err := uc.UpdateUser("no-existe", &dto.UpdateUserRequest{
		Name: "Nadie",
		Role: entity.RoleMecanico,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateUserStatus_InactivoNoPuedeLoguear(t *testing.T) {
	uc, _ := buildAuthUseCase()
	creado := registrar(t, uc, "recepcion@taller.com", entity.RoleRecepcion)

	out, err := uc.UpdateUserStatus(creado.ID, "inactive")
	require.NoError(t, err)
	assert.Equal(t, "inactive", out.Status)

	_, err = uc.Login(&dto.LoginRequest{
		Email:    "recepcion@taller.com",
		Password: "clave-segura-123",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListUsers_Total(t *testing.T) {
	uc, _ := buildAuthUseCase()
	registrar(t, uc, "a@taller.com", entity.RoleAdmin)
	registrar(t, uc, "b@taller.com", entity.RoleMecanico)

	out, err := uc.ListUsers(20, 0)
	require.NoError(t, err)
	assert.Len(t, out.Users, 2)
	assert.Equal(t, 2, out.Page.Total)
}
