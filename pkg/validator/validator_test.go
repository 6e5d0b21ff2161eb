package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/presales-crm/pkg/validator"
)

type muestra struct {
	Name   string `json:"name" validate:"required"`
	Status string `json:"emp_status" validate:"omitempty,oneof=Active Inactive"`
}

func TestStruct_ReportaNombreJSON(t *testing.T) {
	v := validator.New()

	err := v.Struct(muestra{})
	var fe *validator.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "name", fe.Field)
	assert.Equal(t, "required", fe.Tag)
	assert.Equal(t, "name es requerido", fe.Error())
}

func TestStruct_Oneof(t *testing.T) {
	v := validator.New()

	err := v.Struct(muestra{Name: "x", Status: "Borrado"})
	var fe *validator.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "emp_status", fe.Field)
	assert.Contains(t, fe.Error(), "Active Inactive")
}

func TestStruct_Valido(t *testing.T) {
	assert.NoError(t, validator.New().Struct(muestra{Name: "x", Status: "Active"}))
}
