package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/application/inventory"
)

// InventoryHandler expone las consultas de solo lectura del almacenamiento de
// un tenant.
type InventoryHandler struct {
	uc *inventory.QueryUseCase
}

func NewInventoryHandler(uc *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List devuelve el inventario completo del tenant.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	telegramID, err := pathTelegramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id inválido"})
	}
	wines, err := h.uc.Inventory(telegramID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(wines), "wines": wines})
}

// LowStock devuelve los vinos en o por debajo de su scorta minima.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	telegramID, err := pathTelegramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id inválido"})
	}
	wines, err := h.uc.LowStock(telegramID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(wines), "wines": wines})
}

// Movements devuelve las últimas entradas del ledger.
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	telegramID, err := pathTelegramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id inválido"})
	}
	movements, err := h.uc.RecentMovements(telegramID, c.QueryInt("limit"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

// Backups devuelve los últimos snapshots de inventario.
func (h *InventoryHandler) Backups(c *fiber.Ctx) error {
	telegramID, err := pathTelegramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id inválido"})
	}
	backups, err := h.uc.RecentBackups(telegramID, c.QueryInt("limit"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(backups), "backups": backups})
}

// Interactions devuelve los últimos intercambios conversacionales.
func (h *InventoryHandler) Interactions(c *fiber.Ctx) error {
	telegramID, err := pathTelegramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id inválido"})
	}
	interactions, err := h.uc.RecentInteractions(telegramID, c.QueryInt("limit"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(interactions), "interactions": interactions})
}
