package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/domain"
)

// mapDomainError traduce errores de dominio a respuestas HTTP. Cualquier error
// no reconocido es un 500.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
	case errors.Is(err, domain.ErrWineNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "WINE_NOT_FOUND", Message: "vino no encontrado en el inventario"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrNotProvisioned):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PROVISIONED", Message: "el tenant no tiene almacenamiento aprovisionado"})
	case errors.Is(err, domain.ErrEmptyInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_INPUT", Message: "archivo vacío o sin filas"})
	case errors.Is(err, domain.ErrUnsupportedFile):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FILE", Message: "tipo de archivo no soportado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
