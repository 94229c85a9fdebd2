package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/receituario-api/internal/application/dto"
	"github.com/jhoicas/receituario-api/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // vacío = mensaje del error
}

// Orden de evaluación: el primero que coincida con errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrConflict, fiber.StatusBadRequest, "CONFLICT", ""},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", ""},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "no tiene permiso para esta acción"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", ""},
	{domain.ErrUpstream, fiber.StatusInternalServerError, "UPSTREAM", "el proveedor de firma no respondió correctamente"},
}

// writeError traduce errores de dominio a {status, code, message}.
// Los 5xx nunca exponen el detalle; queda solo en el log.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = publicMessage(err)
			}
			if m.status >= fiber.StatusInternalServerError {
				loggerFrom(c).Error().Err(err).Str("path", c.Path()).Msg("error de proveedor externo")
			}
			return c.Status(m.status).JSON(newErrorResponse(m.status, m.code, msg))
		}
	}
	loggerFrom(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(newErrorResponse(fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"))
}

func newErrorResponse(status int, code, message string) dto.ErrorResponse {
	st := dto.StatusFail
	if status >= fiber.StatusInternalServerError {
		st = dto.StatusError
	}
	return dto.ErrorResponse{Status: st, Code: code, Message: message}
}

// publicMessage quita el prefijo del sentinel: "datos inválidos: tipo ..." → "tipo ...".
func publicMessage(err error) string {
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, ": "); ok && rest != "" {
		return rest
	}
	return msg
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(newErrorResponse(fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido"))
}

// ErrorHandler manejador global de fiber: rutas inexistentes, body demasiado grande y panics recuperados.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "HTTP_ERROR"
			if fe.Code == fiber.StatusNotFound {
				code = "NOT_FOUND"
			}
			return c.Status(fe.Code).JSON(newErrorResponse(fe.Code, code, fe.Message))
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no manejado")
		return c.Status(fiber.StatusInternalServerError).JSON(newErrorResponse(fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"))
	}
}
