package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/presales-crm/internal/application/usecase"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/internal/domain/entity"
	"github.com/jhoicas/presales-crm/pkg/logger"
)

func newCallUC() (*usecase.CallLogUseCase, *memCalls) {
	calls := newMemCalls()
	leads := stubLeads{views: map[string]*entity.LeadView{
		"L001": {ID: "L001", IsActive: true},
		"L002": {ID: "L002", IsActive: false},
	}}
	return usecase.NewCallLogUseCase(calls, leads, logger.Nop()), calls
}

func TestCall_StartYEnd(t *testing.T) {
	uc, calls := newCallUC()
	id, err := uc.Start(context.Background(), "EMP001", "L001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, entity.CallStatusConnected, calls.byID[id].Status)
	assert.Equal(t, entity.CallSourceCRM, calls.byID[id].Source)

	// la llamada empezó hace 95 s
	calls.byID[id].CallTime = time.Now().Add(-95 * time.Second)
	d, err := uc.End(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 95, d, 2)

	_, err = uc.End(context.Background(), id)
	assert.True(t, errors.Is(err, domain.ErrConflict), "segunda finalización es conflicto")
}

func TestCall_StartLeadInactivoOSinActor(t *testing.T) {
	uc, _ := newCallUC()
	_, err := uc.Start(context.Background(), "EMP001", "L002")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = uc.Start(context.Background(), "", "L001")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestCall_EndInexistente(t *testing.T) {
	uc, _ := newCallUC()
	_, err := uc.End(context.Background(), 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCall_ListFormateaDuracion(t *testing.T) {
	uc, calls := newCallUC()
	d := 125
	calls.views = []*entity.CallLogView{
		{UserName: "Asha Rao", LeadName: "Priya Nair", DurationSeconds: &d, CallType: "CRM", CallStatus: "Connected"},
		{UserName: "Asha Rao", LeadName: "Karan Mehta"},
	}
	rows := uc.List(context.Background())
	require.Len(t, rows, 2)
	assert.Equal(t, "2m 5s", rows[0].CallDuration)
	assert.Equal(t, "-", rows[1].CallDuration)

	calls.err = errDB
	assert.Empty(t, uc.List(context.Background()))
}
