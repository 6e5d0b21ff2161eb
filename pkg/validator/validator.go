package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator envuelve go-playground/validator. Los nombres de campo reportados
// son los del tag json, que es lo que ve el cliente.
type Validator struct {
	v *validator.Validate
}

// FieldError primer error de validación de un struct.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	switch e.Tag {
	case "required":
		return e.Field + " es requerido"
	case "oneof":
		return e.Field + " debe ser uno de: " + e.Param
	case "email":
		return e.Field + " no es un email válido"
	case "min":
		return e.Field + " debe tener al menos " + e.Param + " caracteres"
	case "max":
		return e.Field + " excede " + e.Param + " caracteres"
	default:
		return e.Field + " inválido"
	}
}

// New crea el validador.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct valida s según sus tags. Devuelve *FieldError con el primer campo inválido.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
	}
	return err
}
