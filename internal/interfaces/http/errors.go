package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/eproc-api/internal/application/dto"
	"github.com/jhoicas/eproc-api/internal/domain"
)

func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}

func validationFailed(c *fiber.Ctx, fields []dto.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "datos inválidos", Fields: fields,
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", msg)
}

// fail traduce errores de dominio a respuestas HTTP. Lo no reconocido es 500.
func fail(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return validationFailed(c, fieldErrors(ve))
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrDraftNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrSupplierHasProducts), errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "FORBIDDEN", "cuenta inactiva o suspendida")
	default:
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

// pathID devuelve el parámetro :id si es un UUID válido.
func pathID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
