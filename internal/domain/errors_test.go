package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/presales-crm/internal/domain"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.KindValidation, domain.KindOf(domain.Validation("name", "name es requerido")))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(fmt.Errorf("get lead: %w", domain.NotFound("lead no encontrado"))))
	assert.Equal(t, domain.KindInternal, domain.KindOf(errors.New("conexión rechazada")))
}

func TestCentinelaCoincidePorKind(t *testing.T) {
	err := fmt.Errorf("update: %w", domain.NotFound("lead L009 no encontrado"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))

	assert.True(t, errors.Is(domain.Validation("phone", "phone es requerido"), domain.ErrInvalidInput))
	assert.False(t, errors.Is(domain.NotFound("x"), domain.NotFound("x")), "solo los centinelas comparan por Kind")
}

func TestInternalConservaCausa(t *testing.T) {
	cause := errors.New("23505")
	err := domain.Internal("crear lead", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "crear lead: 23505", err.Error())
}
