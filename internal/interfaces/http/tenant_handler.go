package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/application/provision"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
)

// TenantHandler maneja el alta, onboarding y estado de aprovisionamiento.
type TenantHandler struct {
	uc *provision.UseCase
}

func NewTenantHandler(uc *provision.UseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Register da de alta un tenant.
func (h *TenantHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TelegramID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id es requerido"})
	}

	tenant := &entity.Tenant{
		TelegramID: in.TelegramID,
		Username:   in.Username,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
	}
	if err := h.uc.Register(c.Context(), tenant); err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tenantResponse(tenant))
}

// CompleteOnboarding fija el negocio y aprovisiona el almacenamiento.
func (h *TenantHandler) CompleteOnboarding(c *fiber.Ctx) error {
	telegramID, err := pathTelegramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id inválido"})
	}
	var in dto.CompleteOnboardingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BusinessName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "business_name es requerido"})
	}

	tenant, err := h.uc.CompleteOnboarding(c.Context(), telegramID, in.BusinessName, in.BusinessType, in.Location)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(tenantResponse(tenant))
}

// ProvisioningStatus informa si las tablas del tenant existen.
func (h *TenantHandler) ProvisioningStatus(c *fiber.Ctx) error {
	telegramID, err := pathTelegramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "telegram_id inválido"})
	}

	provisioned, err := h.uc.Status(c.Context(), telegramID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ProvisioningStatusResponse{TelegramID: telegramID, Provisioned: provisioned})
}

func tenantResponse(tenant *entity.Tenant) dto.TenantResponse {
	out := dto.TenantResponse{
		TelegramID:   tenant.TelegramID,
		Username:     tenant.Username,
		BusinessName: tenant.BusinessName,
		BusinessType: tenant.BusinessType,
		Location:     tenant.Location,
		Onboarded:    tenant.Onboarded,
	}
	if tenant.Provisionable() {
		out.Namespace = tenant.Namespace()
	}
	return out
}

func pathTelegramID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
