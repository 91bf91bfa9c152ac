package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inspectos-api/internal/application/auth"
	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/domain"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	"github.com/jhoicas/inspectos-api/internal/domain/repository"
	"github.com/jhoicas/inspectos-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	users     []*entity.User
	createErr error
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByEmailAndTenant(_ context.Context, email, tenantID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.TenantID == tenantID {
			return u, nil
		}
	}
	return nil, nil
}

type fakeTenants struct {
	tenants map[string]*entity.Tenant
}

func (f *fakeTenants) Create(_ context.Context, t *entity.Tenant) error {
	f.tenants[t.ID] = t
	return nil
}

func (f *fakeTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.tenants[id], nil
}

// fakeTx ejecuta el callback sobre los mismos fakes, sin transacción real.
type fakeTx struct {
	tenants *fakeTenants
	users   *fakeUsers
	calls   int
}

func (f *fakeTx) RunRegistration(_ context.Context, fn func(repository.TenantRepository, repository.UserRepository) error) error {
	f.calls++
	return fn(f.tenants, f.users)
}

func newUseCase() (*auth.AuthUseCase, *fakeUsers, *fakeTenants, *fakeTx) {
	users := &fakeUsers{}
	tenants := &fakeTenants{tenants: map[string]*entity.Tenant{
		"t-1": {ID: "t-1", Name: "Acme Inspections", Status: "active"},
	}}
	tx := &fakeTx{tenants: tenants, users: users}
	uc := auth.NewAuthUseCase(users, tenants, tx, auth.JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "inspectos"})
	return uc, users, tenants, tx
}

// ── Registro ──────────────────────────────────────────────────────────────────

func TestRegisterUser_EnTenantExistente(t *testing.T) {
	uc, users, _, tx := newUseCase()

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:    " Ana@Example.com ",
		Password: "password123",
		TenantID: "t-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "t-1", out.TenantID)
	assert.Equal(t, "ana@example.com", out.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RoleInspector, out.Role, "rol por defecto")
	assert.Equal(t, "ana@example.com", out.Name, "sin nombre se usa el email")
	assert.Equal(t, 0, tx.calls, "unirse a un tenant no abre transacción")
	require.Len(t, users.users, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.users[0].PasswordHash), []byte("password123")))
}

func TestRegisterUser_EmailDuplicadoEnTenant(t *testing.T) {
	uc, users, _, _ := newUseCase()
	users.users = append(users.users, &entity.User{ID: "u-1", TenantID: "t-1", Email: "ana@example.com"})

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Password: "password123", TenantID: "t-1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_TenantInexistente(t *testing.T) {
	uc, _, _, _ := newUseCase()

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Password: "password123", TenantID: "t-404",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterUser_CreaTenantYOwner(t *testing.T) {
	uc, users, tenants, tx := newUseCase()

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email:      "owner@acme.com",
		Password:   "password123",
		TenantName: "  Sunrise Home Inspections, LLC ",
		Name:       "Olga",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, entity.RoleOwner, out.Role)
	created := tenants.tenants[out.TenantID]
	require.NotNil(t, created)
	assert.Equal(t, "Sunrise Home Inspections, LLC", created.Name)
	assert.Equal(t, "sunrise-home-inspections-llc", created.Slug)
	require.Len(t, users.users, 1)
	assert.Equal(t, "Olga", users.users[0].Name)
}

func TestRegisterUser_EntradaInvalida(t *testing.T) {
	uc, _, _, _ := newUseCase()
	ctx := context.Background()

	cases := map[string]dto.RegisterRequest{
		"password corto":       {Email: "a@b.com", Password: "corto", TenantID: "t-1"},
		"sin email":            {Email: "  ", Password: "password123", TenantID: "t-1"},
		"sin tenant ni nombre": {Email: "a@b.com", Password: "password123"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.RegisterUser(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterUser_ErrorAlPersistirSePropaga(t *testing.T) {
	uc, users, _, _ := newUseCase()
	users.createErr = errors.New("db caída")

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "owner@acme.com", Password: "password123", TenantName: "Acme",
	})
	assert.EqualError(t, err, "db caída")
}

// ── Login ─────────────────────────────────────────────────────────────────────

func seedUser(t *testing.T, users *fakeUsers, status string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	users.users = append(users.users, &entity.User{
		ID: "u-1", TenantID: "t-1", Email: "ana@example.com",
		PasswordHash: string(hash), Role: entity.RoleAdmin, Status: status,
	})
}

func TestLogin_GeneraTokenConTenantYRol(t *testing.T) {
	uc, users, _, _ := newUseCase()
	seedUser(t, users, "active")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@example.com", Password: "password123"})
	require.NoError(t, err)

	userID, tenantID, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "t-1", tenantID)
	assert.Equal(t, entity.RoleAdmin, role)
	assert.Equal(t, "ana@example.com", out.User.Email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, users, _, _ := newUseCase()
	seedUser(t, users, "active")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _, _ := newUseCase()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, _, _ := newUseCase()
	seedUser(t, users, "suspended")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_FiltraPorTenant(t *testing.T) {
	uc, users, _, _ := newUseCase()
	seedUser(t, users, "active")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "password123", TenantID: "t-2"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
