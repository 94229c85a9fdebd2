package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/domain"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
	"github.com/jhoicas/receituario-api/internal/domain/repository"
	"github.com/jhoicas/receituario-api/pkg/jwt"
	"github.com/jhoicas/receituario-api/pkg/registro"
)

// DefaultPasswordCost rondas de bcrypt para passwords nuevos.
const DefaultPasswordCost = 12

const minPasswordLength = 6

// Mismo error para CPF inexistente y password incorrecto.
var errInvalidCredentials = fmt.Errorf("%w: CPF o password incorrectos", domain.ErrUnauthorized)

// Config configuración para generación de tokens y hashing.
type Config struct {
	Secret       string
	ExpMinutes   int
	Issuer       string
	PasswordCost int // 0 = DefaultPasswordCost
}

// AuthUseCase casos de uso de autenticación: registro, login y resolución del usuario del token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cfg      Config

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, cfg Config) *AuthUseCase {
	if cfg.PasswordCost == 0 {
		cfg.PasswordCost = DefaultPasswordCost
	}
	return &AuthUseCase{userRepo: userRepo, cfg: cfg}
}

// Register valida CPF/CRM, hashea el password con bcrypt y persiste el usuario.
// Devuelve domain.ErrConflict si el CPF o el CRM ya están registrados.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	cpf := strings.TrimSpace(in.CPF)
	crm := registro.NormalizeCRM(in.CRM)
	if name == "" || cpf == "" || crm == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, cpf, crm y password son requeridos", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password debe tener al menos %d caracteres", domain.ErrValidation, minPasswordLength)
	}
	if err := registro.ValidateCRM(crm); err != nil {
		return nil, fmt.Errorf("%w: formato de CRM inválido, use CRM/UF XXXXXX", domain.ErrValidation)
	}
	if err := registro.ValidateCPF(cpf); err != nil {
		return nil, fmt.Errorf("%w: formato de CPF inválido, use 000.000.000-00", domain.ErrValidation)
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = entity.RoleProfessional
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q no permitido", domain.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cfg.PasswordCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		CPF:          cpf,
		CRM:          crm,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// La unicidad la garantiza el índice único del store; no hay lectura previa.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: CPF o CRM ya registrado", domain.ErrConflict)
		}
		return nil, err
	}
	return uc.issue(user)
}

// Login verifica CPF/password y emite el token. Usuario inexistente y password
// incorrecto producen el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	cpf := strings.TrimSpace(in.CPF)
	if cpf == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: informe CPF y password", domain.ErrValidation)
	}
	user, err := uc.userRepo.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Mismo costo de CPU que un password incorrecto.
		_ = bcrypt.CompareHashAndPassword(uc.dummy(), []byte(in.Password))
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	return uc.issue(user)
}

// Authenticate valida el token y confirma que el usuario todavía existe.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: el usuario de este token ya no existe", domain.ErrUnauthorized)
	}
	return user, nil
}

// CurrentUser devuelve la proyección pública del usuario autenticado.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	out := ToUserResponse(user)
	return &out, nil
}

// ListUsers listado administrativo (la restricción de rol la aplica el router).
func (uc *AuthUseCase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, ToUserResponse(u))
	}
	out.Results = len(out.Users)
	return out, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Role, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: ToUserResponse(user)}, nil
}

func (uc *AuthUseCase) dummy() []byte {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), uc.cfg.PasswordCost)
	})
	return uc.dummyHash
}

// ToUserResponse proyección pública: nunca incluye el hash.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		CPF:       u.CPF,
		CRM:       u.CRM,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
