package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/internal/domain"
	"github.com/jhoicas/presales-crm/pkg/validator"
)

// statusOf traduce la categoría del error de dominio a status HTTP.
func statusOf(k domain.Kind) int {
	switch k {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// errorBody cuerpo de error. Los internos nunca exponen la causa.
func errorBody(err error) (int, dto.ErrorResponse) {
	var de *domain.Error
	if !errors.As(err, &de) {
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
	if de.Kind == domain.KindInternal {
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: de.Message}
	}
	return statusOf(de.Kind), dto.ErrorResponse{Code: de.Kind.String(), Message: de.Message, Field: de.Field}
}

// writeError responde con el status y cuerpo correspondientes a err.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	return c.Status(status).JSON(body)
}

// writeEnvelopeError igual que writeError pero con el sobre {success:false, error}.
func writeEnvelopeError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	return c.Status(status).JSON(dto.Envelope{Success: false, Error: body.Message})
}

// bindBody parsea el JSON y aplica los tags validate. Devuelve un error de dominio listo para writeError.
func bindBody(c *fiber.Ctx, v *validator.Validator, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Validation("", "cuerpo inválido")
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(out); err != nil {
		var fe *validator.FieldError
		if errors.As(err, &fe) {
			return domain.Validation(fe.Field, fe.Error())
		}
		return domain.Validation("", err.Error())
	}
	return nil
}

// requireActor el actor sale siempre del token, nunca del cuerpo.
func requireActor(c *fiber.Ctx) (string, error) {
	id := GetUserID(c)
	if id == "" {
		return "", domain.Unauthorized("autenticación requerida")
	}
	return id, nil
}
