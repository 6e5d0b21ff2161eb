package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/application/usecase"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

func strPtr(s string) *string { return &s }

func newProjectUC() (*usecase.ProjectUseCase, *memProjects, *invalidations) {
	repo := newMemProjects()
	inv := &invalidations{}
	return usecase.NewProjectUseCase(repo, inv, logger.Nop()), repo, inv
}

func TestProject_CreateGeneraUUID(t *testing.T) {
	uc, repo, inv := newProjectUC()
	id, err := uc.Create(context.Background(), "EMP001", dto.CreateProjectRequest{
		ProjectName: "Green Villas", ProjectType: "Villa", Status: entity.ProjectStatusPreLaunch,
	})
	require.NoError(t, err)
	assert.Len(t, id, 36)
	require.Contains(t, repo.byID, id)
	assert.Equal(t, "EMP001", *repo.byID[id].CreatedBy)
	assert.Equal(t, 1, inv.n, "crear proyecto invalida el caché")
}

func TestProject_CreateCompletadoSinRERA(t *testing.T) {
	uc, repo, _ := newProjectUC()
	_, err := uc.Create(context.Background(), "EMP001", dto.CreateProjectRequest{
		ProjectID: "P1", ProjectName: "Sky Towers", ProjectType: "Apartment", Status: entity.ProjectStatusCompleted,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, repo.byID)
}

func TestProject_CreateTipoInvalido(t *testing.T) {
	uc, _, _ := newProjectUC()
	_, err := uc.Create(context.Background(), "", dto.CreateProjectRequest{
		ProjectName: "X", ProjectType: "Castle", Status: entity.ProjectStatusPreLaunch,
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestProject_UpdateRechazaStatus(t *testing.T) {
	uc, _, _ := newProjectUC()
	_, err := uc.Update(context.Background(), "P1", dto.UpdateProjectRequest{Status: strPtr("COMPLETED")})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestProject_UpdateNadaQueActualizar(t *testing.T) {
	uc, _, _ := newProjectUC()
	msg, err := uc.Update(context.Background(), "P1", dto.UpdateProjectRequest{})
	require.NoError(t, err)
	assert.Equal(t, "nada que actualizar", msg)
}

func TestProject_UpdateParcialEInexistente(t *testing.T) {
	uc, repo, _ := newProjectUC()
	id, err := uc.Create(context.Background(), "", dto.CreateProjectRequest{
		ProjectID: "P1", ProjectName: "Sky Towers", ProjectType: "Apartment", Status: entity.ProjectStatusPreLaunch,
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), id, dto.UpdateProjectRequest{City: strPtr("Pune")})
	require.NoError(t, err)
	assert.Equal(t, "Pune", *repo.byID[id].City)
	assert.Equal(t, "Sky Towers", repo.byID[id].Name)

	_, err = uc.Update(context.Background(), "P404", dto.UpdateProjectRequest{City: strPtr("Pune")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProject_UpdateStatusExigeRERA(t *testing.T) {
	uc, repo, _ := newProjectUC()
	_, err := uc.Create(context.Background(), "", dto.CreateProjectRequest{
		ProjectID: "P1", ProjectName: "Sky Towers", ProjectType: "Apartment", Status: entity.ProjectStatusPreLaunch,
	})
	require.NoError(t, err)

	err = uc.UpdateStatus(context.Background(), "P1", entity.ProjectStatusCompleted)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, entity.ProjectStatusPreLaunch, repo.byID["P1"].Status, "no debe persistirse el cambio")

	_, err = uc.Update(context.Background(), "P1", dto.UpdateProjectRequest{RERANumber: strPtr("RERA/2026/01")})
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(context.Background(), "P1", entity.ProjectStatusCompleted))
	assert.Equal(t, entity.ProjectStatusCompleted, repo.byID["P1"].Status)
}

func TestProject_UpdateStatusInvalidoOInexistente(t *testing.T) {
	uc, _, _ := newProjectUC()
	assert.Equal(t, domain.KindValidation, domain.KindOf(uc.UpdateStatus(context.Background(), "P1", "SOLD")))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(uc.UpdateStatus(context.Background(), "P404", entity.ProjectStatusPreLaunch)))
}

func TestProject_GetInexistente(t *testing.T) {
	uc, _, _ := newProjectUC()
	_, err := uc.Get(context.Background(), "P404")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
