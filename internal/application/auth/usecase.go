package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/domain"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	"github.com/jhoicas/inspectos-api/internal/domain/repository"
	"github.com/jhoicas/inspectos-api/pkg/jwt"
)

const minPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta el alta de empresa + dueño en una sola transacción.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		tenantRepo repository.TenantRepository,
		userRepo repository.UserRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	tx         TxRunner
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, tx TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, tx: tx, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
//   - Con TenantID: el tenant debe existir y el email ser único en él (ErrEmailAlreadyExists).
//   - Con TenantName: crea tenant + usuario owner en una transacción.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	if in.TenantID == "" && strings.TrimSpace(in.TenantName) == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.TenantID != "" {
		if err := uc.joinTenant(ctx, in, user); err != nil {
			return nil, err
		}
		return toUserResponse(user), nil
	}

	tenantName := strings.TrimSpace(in.TenantName)
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      tenantName,
		Slug:      slugify(tenantName),
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.TenantID = tenant.ID
	user.Role = entity.RoleOwner

	err = uc.tx.RunRegistration(ctx, func(tenantRepo repository.TenantRepository, userRepo repository.UserRepository) error {
		if err := tenantRepo.Create(ctx, tenant); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) joinTenant(ctx context.Context, in dto.RegisterRequest, user *entity.User) error {
	existing, err := uc.userRepo.GetByEmailAndTenant(ctx, in.Email, in.TenantID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, in.TenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return domain.ErrNotFound // empresa no existe
	}
	role := in.Role
	if role == "" {
		role = entity.RoleInspector
	}
	user.TenantID = tenant.ID
	user.Role = role
	return uc.userRepo.Create(ctx, user)
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	var (
		user *entity.User
		err  error
	)
	if in.TenantID != "" {
		user, err = uc.userRepo.GetByEmailAndTenant(ctx, email, in.TenantID)
	} else {
		user, err = uc.userRepo.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

var slugInvalidRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify "Acme Home Inspections, LLC" → "acme-home-inspections-llc".
func slugify(name string) string {
	return strings.Trim(slugInvalidRe.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		TenantID:  u.TenantID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
