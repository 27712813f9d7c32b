package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/application/provision"
)

// adminCallerHeader identifica al administrador que pide la operación.
const adminCallerHeader = "X-Admin-Telegram-ID"

// AdminHandler operaciones administrativas restringidas a la allow-list.
type AdminHandler struct {
	uc *provision.UseCase
}

func NewAdminHandler(uc *provision.UseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// TeardownTenant elimina las cuatro tablas del tenant objetivo. Irreversible.
func (h *AdminHandler) TeardownTenant(c *fiber.Ctx) error {
	caller, err := strconv.ParseInt(c.Get(adminCallerHeader), 10, 64)
	if err != nil || caller == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cabecera " + adminCallerHeader + " requerida"})
	}
	target, err := pathTelegramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id inválido"})
	}

	if err := h.uc.Teardown(c.Context(), caller, target); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "almacenamiento del tenant eliminado"})
}
