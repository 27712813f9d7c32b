package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/application/movement"
)

// MovementHandler maneja los mensajes de texto libre con movimientos.
type MovementHandler struct {
	uc *movement.UseCase
}

func NewMovementHandler(uc *movement.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Process analiza el texto del mensaje y aplica los movimientos reconocidos.
// Un texto sin movimientos responde 200 con recognized=false.
func (h *MovementHandler) Process(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TelegramID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id es requerido"})
	}
	if strings.TrimSpace(in.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "text es requerido"})
	}

	result, err := h.uc.Process(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}
