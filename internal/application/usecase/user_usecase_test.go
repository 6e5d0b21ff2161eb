package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/application/usecase"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

func newUserUC() (*usecase.UserUseCase, *memEmployees) {
	repo := newMemEmployees()
	return usecase.NewUserUseCase(repo, repo, nil, logger.Nop()), repo
}

func registerReq() dto.RegisterEmployeeRequest {
	return dto.RegisterEmployeeRequest{
		EmpFirstName: "Asha", EmpLastName: "Rao", RoleID: "ROLE_SALES", EmpStatus: entity.EmployeeStatusActive,
		Username: "Asha", Email: "Asha@CRM.test", Password: "s3cret!",
	}
}

func TestUser_RegisterGeneraEmpID(t *testing.T) {
	uc, repo := newUserUC()

	id, err := uc.Register(context.Background(), "", registerReq())
	require.NoError(t, err)
	assert.Equal(t, "EMP001", id)

	id, err = uc.Register(context.Background(), "EMP001", registerReq())
	require.NoError(t, err)
	assert.Equal(t, "EMP002", id)

	first := repo.byID["EMP001"]
	assert.Equal(t, "ADMIN", first.CreatedBy)
	assert.Equal(t, "EMP001", repo.byID["EMP002"].CreatedBy)
	assert.Equal(t, "asha", *first.Username)
	assert.Equal(t, "asha@crm.test", *first.Email)
	require.NotNil(t, first.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*first.PasswordHash), []byte("s3cret!")))
}

func TestUser_RegisterDuplicado_Conflicto(t *testing.T) {
	uc, _ := newUserUC()
	in := registerReq()
	in.EmpID = "EMP010"
	_, err := uc.Register(context.Background(), "", in)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "", in)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestUser_RegisterEstadoInvalido(t *testing.T) {
	uc, repo := newUserUC()
	in := registerReq()
	in.EmpStatus = "Suspended"
	_, err := uc.Register(context.Background(), "", in)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Empty(t, repo.byID)
}

func TestUser_UpdateStatus(t *testing.T) {
	uc, repo := newUserUC()
	id, err := uc.Register(context.Background(), "", registerReq())
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(context.Background(), "EMP009", id, entity.EmployeeStatusInactive))
	assert.Equal(t, entity.EmployeeStatusInactive, repo.byID[id].Status)
	assert.Equal(t, "EMP009", *repo.byID[id].ModifiedBy)

	assert.Equal(t, domain.KindValidation, domain.KindOf(uc.UpdateStatus(context.Background(), "", id, "Gone")))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(uc.UpdateStatus(context.Background(), "", "EMP404", entity.EmployeeStatusActive)))
}

func TestUser_UpdateYGet(t *testing.T) {
	uc, _ := newUserUC()
	id, err := uc.Register(context.Background(), "", registerReq())
	require.NoError(t, err)

	err = uc.Update(context.Background(), "EMP001", id, dto.UpdateEmployeeRequest{
		EmpFirstName: "Asha", EmpMiddleName: "K", EmpLastName: "Rao", RoleID: "ROLE_ADMIN", EmpStatus: entity.EmployeeStatusActive,
	})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ROLE_ADMIN", got.RoleID)
	assert.Equal(t, "K", *got.EmpMiddleName)

	_, err = uc.GetByID(context.Background(), "EMP404")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = uc.Update(context.Background(), "", "EMP404", dto.UpdateEmployeeRequest{
		EmpFirstName: "X", EmpLastName: "Y", RoleID: "R", EmpStatus: entity.EmployeeStatusActive,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
