package domain

import "errors"

// Kind clasifica un error de dominio. La capa HTTP traduce cada Kind a un status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// Error es un error de dominio con categoría explícita.
// Field indica el campo de entrada responsable (solo para validación).
type Error struct {
	Kind     Kind
	Field    string
	Message  string
	Err      error
	sentinel bool
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrNotFound): un centinela coincide con cualquier error de su Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel {
		return false
	}
	return t.Kind == e.Kind
}

// Errores centinela (sin dependencias externas).
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "recurso no encontrado", sentinel: true}
	ErrInvalidInput = &Error{Kind: KindValidation, Message: "entrada inválida", sentinel: true}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "no autorizado", sentinel: true}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "acceso denegado", sentinel: true}
	ErrDuplicate    = &Error{Kind: KindConflict, Message: "recurso duplicado", sentinel: true}
	ErrConflict     = &Error{Kind: KindConflict, Message: "conflicto con el estado actual", sentinel: true}
)

// Validation error de validación asociado a un campo.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFound recurso inexistente o inactivo.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unauthorized credencial ausente o inválida.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Conflict choque con el estado persistido (duplicados, transiciones no permitidas).
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal falla de persistencia o inesperada; err se conserva para el log.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf devuelve la categoría de err. Errores que no son de dominio cuentan como internos.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
