package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

// TokenIssuer firma tokens de acceso. Lo implementa *jwt.Manager.
type TokenIssuer interface {
	Generate(empID, username, roleType string) (string, error)
}

// errInvalidCredentials mismo error para usuario inexistente, inactivo o password incorrecto.
var errInvalidCredentials = domain.Unauthorized("credenciales inválidas")

// AuthUseCase casos de uso de autenticación: login con username/email y password.
type AuthUseCase struct {
	empRepo repository.EmployeeRepository
	tokens  TokenIssuer
	log     *logger.Logger
	now     func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(empRepo repository.EmployeeRepository, tokens TokenIssuer, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{empRepo: empRepo, tokens: tokens, log: log.Component("auth"), now: time.Now}
}

// Login verifica las credenciales, registra last_login y emite el token.
// No distingue entre identidad desconocida, empleado inactivo y password incorrecto.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.Validation("", "username, email y password son requeridos")
	}

	emp, err := uc.empRepo.FindByLogin(ctx, username, email)
	if err != nil {
		uc.log.Error().Err(err).Msg("buscar empleado para login")
		return nil, domain.Internal("login", err)
	}
	if emp == nil {
		uc.log.Warn().Str("username", username).Msg("login fallido: usuario no encontrado")
		return nil, errInvalidCredentials
	}
	if !emp.CanLogin() {
		uc.log.Warn().Str("emp_id", emp.ID).Str("status", emp.Status).Msg("login fallido: empleado inactivo")
		return nil, errInvalidCredentials
	}
	if emp.PasswordHash == nil || bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(in.Password)) != nil {
		uc.log.Warn().Str("emp_id", emp.ID).Msg("login fallido: password incorrecto")
		return nil, errInvalidCredentials
	}

	if err := uc.empRepo.TouchLastLogin(ctx, emp.ID, uc.now()); err != nil {
		uc.log.Error().Err(err).Str("emp_id", emp.ID).Msg("actualizar last_login")
		return nil, domain.Internal("login", err)
	}

	name := deref(emp.Username)
	token, err := uc.tokens.Generate(emp.ID, name, emp.RoleID)
	if err != nil {
		uc.log.Error().Err(err).Msg("firmar token")
		return nil, domain.Internal("login", err)
	}
	uc.log.Info().Str("emp_id", emp.ID).Str("role", emp.RoleID).Msg("login exitoso")
	return &dto.LoginResponse{
		AccessToken: token,
		EmpID:       emp.ID,
		Username:    name,
		Email:       deref(emp.Email),
		RoleType:    emp.RoleID,
	}, nil
}

// HashPassword hashea un password con bcrypt (alta y reseteo de empleados).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
