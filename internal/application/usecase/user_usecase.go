package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/presales-crm/internal/application/auth"
	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/internal/domain/repository"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

// createdByDefault autor registrado cuando el alta llega sin token.
const createdByDefault = "ADMIN"

// UserUseCase registro de empleados (usuarios del CRM). Los empleados no se eliminan, se desactivan.
type UserUseCase struct {
	txRunner EmployeeTxRunner
	repo     repository.EmployeeRepository
	refs     CacheInvalidator
	log      *logger.Logger
	now      func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia. refs puede ser nil.
func NewUserUseCase(txRunner EmployeeTxRunner, repo repository.EmployeeRepository, refs CacheInvalidator, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{txRunner: txRunner, repo: repo, refs: refs, log: log.Component("users"), now: time.Now}
}

// Register da de alta un empleado. Sin emp_id se reserva el siguiente EMP###.
// Devuelve el emp_id asignado.
func (uc *UserUseCase) Register(ctx context.Context, actorID string, in dto.RegisterEmployeeRequest) (string, error) {
	first := strings.TrimSpace(in.EmpFirstName)
	last := strings.TrimSpace(in.EmpLastName)
	switch {
	case first == "":
		return "", domain.Validation("emp_first_name", "emp_first_name es requerido")
	case last == "":
		return "", domain.Validation("emp_last_name", "emp_last_name es requerido")
	case strings.TrimSpace(in.RoleID) == "":
		return "", domain.Validation("role_id", "role_id es requerido")
	case !entity.ValidEmployeeStatus(in.EmpStatus):
		return "", domain.Validation("emp_status", "emp_status debe ser Active o Inactive")
	}

	createdBy := actorID
	if createdBy == "" {
		createdBy = createdByDefault
	}
	emp := &entity.Employee{
		ID:         strings.TrimSpace(in.EmpID),
		FirstName:  first,
		MiddleName: optionalString(in.EmpMiddleName),
		LastName:   last,
		RoleID:     strings.TrimSpace(in.RoleID),
		Status:     in.EmpStatus,
		Username:   optionalString(strings.ToLower(in.Username)),
		Email:      optionalString(strings.ToLower(in.Email)),
		CreatedBy:  createdBy,
		CreatedOn:  uc.now(),
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return "", uc.fail("hashear password", err)
		}
		emp.PasswordHash = &hash
	}

	err := uc.txRunner.RunEmployees(ctx, func(empRepo repository.EmployeeRepository, seqRepo repository.SequenceRepository) error {
		if emp.ID == "" {
			id, err := seqRepo.Next(ctx, entity.SequenceEmployee)
			if err != nil {
				return fmt.Errorf("generar emp_id: %w", err)
			}
			emp.ID = id
		}
		return empRepo.Create(ctx, emp)
	})
	if err != nil {
		return "", uc.fail("registrar empleado", err)
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("emp_id", emp.ID).Str("created_by", createdBy).Msg("empleado registrado")
	return emp.ID, nil
}

// List todos los empleados, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, uc.fail("listar empleados", err)
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, entityToEmployeeResponse(e))
	}
	return out, nil
}

// GetByID obtiene un empleado por emp_id.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.fail("obtener empleado", err)
	}
	if emp == nil {
		return nil, domain.NotFound("empleado no encontrado")
	}
	resp := entityToEmployeeResponse(emp)
	return &resp, nil
}

// Update reemplaza nombre, rol y estado del empleado.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateEmployeeRequest) error {
	if !entity.ValidEmployeeStatus(in.EmpStatus) {
		return domain.Validation("emp_status", "emp_status debe ser Active o Inactive")
	}
	now := uc.now()
	emp := &entity.Employee{
		ID:         id,
		FirstName:  strings.TrimSpace(in.EmpFirstName),
		MiddleName: optionalString(in.EmpMiddleName),
		LastName:   strings.TrimSpace(in.EmpLastName),
		RoleID:     strings.TrimSpace(in.RoleID),
		Status:     in.EmpStatus,
		ModifiedBy: optionalString(actorID),
		ModifiedOn: &now,
	}
	if emp.FirstName == "" || emp.LastName == "" || emp.RoleID == "" {
		return domain.Validation("", "emp_first_name, emp_last_name y role_id son requeridos")
	}
	ok, err := uc.repo.Update(ctx, emp)
	if err != nil {
		return uc.fail("actualizar empleado", err)
	}
	if !ok {
		return domain.NotFound("empleado no encontrado")
	}
	uc.invalidate(ctx)
	return nil
}

// UpdateStatus activa o desactiva al empleado.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, actorID, id, status string) error {
	if !entity.ValidEmployeeStatus(status) {
		return domain.Validation("emp_status", "emp_status debe ser Active o Inactive")
	}
	ok, err := uc.repo.UpdateStatus(ctx, id, status, actorID, uc.now())
	if err != nil {
		return uc.fail("actualizar estado de empleado", err)
	}
	if !ok {
		return domain.NotFound("empleado no encontrado")
	}
	uc.log.Info().Str("emp_id", id).Str("status", status).Msg("estado de empleado actualizado")
	return nil
}

func (uc *UserUseCase) invalidate(ctx context.Context) {
	if uc.refs != nil {
		uc.refs.Invalidate(ctx)
	}
}

func (uc *UserUseCase) fail(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	uc.log.Error().Err(err).Str("op", op).Msg("operación de empleados fallida")
	return domain.Internal(op, err)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func entityToEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		EmpID:         e.ID,
		EmpFirstName:  e.FirstName,
		EmpMiddleName: e.MiddleName,
		EmpLastName:   e.LastName,
		RoleID:        e.RoleID,
		EmpStatus:     e.Status,
		Username:      e.Username,
		Email:         e.Email,
		LastLogin:     e.LastLogin,
		CreatedBy:     e.CreatedBy,
		CreatedOn:     e.CreatedOn,
		ModifiedBy:    e.ModifiedBy,
		ModifiedOn:    e.ModifiedOn,
	}
}
