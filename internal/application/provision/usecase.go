package provision

import (
	"context"
	"fmt"

	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
	"github.com/jhoicas/cantina-engine/pkg/config"
	"github.com/jhoicas/cantina-engine/pkg/logger"
)

// UseCase expone las operaciones de aprovisionamiento hacia el exterior:
// consulta de estado para el onboarding y teardown administrativo.
type UseCase struct {
	provisioner Provisioner
	tenantRepo  repository.TenantRepository
	admin       config.AdminConfig
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(p Provisioner, tenantRepo repository.TenantRepository, admin config.AdminConfig, log *logger.Logger) *UseCase {
	return &UseCase{provisioner: p, tenantRepo: tenantRepo, admin: admin, log: log}
}

// Register da de alta un tenant en su primer contacto. Los datos del negocio
// llegan después, con CompleteOnboarding.
func (uc *UseCase) Register(ctx context.Context, tenant *entity.Tenant) error {
	if tenant.TelegramID == 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.tenantRepo.Create(tenant); err != nil {
		return err
	}
	uc.log.Info().Int64("telegram_id", tenant.TelegramID).Msg("Tenant registrado")
	return nil
}

// CompleteOnboarding fija los datos del negocio y aprovisiona el almacenamiento
// del tenant en el mismo paso. El nombre del negocio queda congelado: forma
// parte del namespace de las tablas.
func (uc *UseCase) CompleteOnboarding(ctx context.Context, telegramID int64, businessName, businessType, location string) (*entity.Tenant, error) {
	// El nombre se valida antes de persistir: un namespace demasiado largo
	// produciría tablas truncadas por el límite de identificadores de PostgreSQL.
	candidate := entity.Tenant{TelegramID: telegramID, BusinessName: businessName}
	if !candidate.NamespaceFits() {
		return nil, fmt.Errorf("%w: nombre de negocio demasiado largo", domain.ErrInvalidInput)
	}
	if err := uc.tenantRepo.CompleteOnboarding(telegramID, businessName, businessType, location); err != nil {
		return nil, err
	}
	tenant, err := uc.tenantRepo.GetByTelegramID(telegramID)
	if err != nil {
		return nil, fmt.Errorf("buscar tenant: %w", err)
	}
	if err := uc.EnsureForTenant(ctx, *tenant); err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("telegram_id", telegramID).
		Str("namespace", tenant.Namespace()).
		Msg("Onboarding completado y almacenamiento aprovisionado")
	return tenant, nil
}

// Status indica si las cuatro tablas del tenant existen. Lo usa el flujo de
// onboarding para confirmar antes de pedir la subida del inventario.
func (uc *UseCase) Status(ctx context.Context, telegramID int64) (bool, error) {
	tenant, err := uc.tenantRepo.GetByTelegramID(telegramID)
	if err != nil {
		return false, fmt.Errorf("buscar tenant: %w", err)
	}
	if tenant == nil {
		return false, domain.ErrTenantNotFound
	}
	if !tenant.Provisionable() {
		return false, nil
	}
	return uc.provisioner.Exists(ctx, *tenant)
}

// EnsureForTenant aprovisiona el almacenamiento del tenant. Se invoca cuando el
// tenant fija su nombre de negocio; es seguro repetirla (re-onboarding).
func (uc *UseCase) EnsureForTenant(ctx context.Context, tenant entity.Tenant) error {
	if !tenant.Provisionable() || !tenant.NamespaceFits() {
		return domain.ErrInvalidInput
	}
	if err := uc.provisioner.Ensure(ctx, tenant); err != nil {
		return fmt.Errorf("aprovisionar almacenamiento: %w", err)
	}
	return nil
}

// Teardown elimina las cuatro tablas del tenant objetivo. Restringido a la
// allow-list de administradores; irreversible y siempre auditado en el log.
func (uc *UseCase) Teardown(ctx context.Context, callerTelegramID, targetTelegramID int64) error {
	if !uc.admin.IsAdmin(callerTelegramID) {
		uc.log.Warn().
			Int64("caller", callerTelegramID).
			Int64("target", targetTelegramID).
			Msg("teardown rechazado: caller no privilegiado")
		return domain.ErrForbidden
	}

	tenant, err := uc.tenantRepo.GetByTelegramID(targetTelegramID)
	if err != nil {
		return fmt.Errorf("buscar tenant: %w", err)
	}
	if tenant == nil {
		return domain.ErrTenantNotFound
	}

	if err := uc.provisioner.Drop(ctx, *tenant); err != nil {
		return fmt.Errorf("teardown del tenant %d: %w", targetTelegramID, err)
	}
	uc.log.Warn().
		Int64("caller", callerTelegramID).
		Int64("target", targetTelegramID).
		Str("namespace", tenant.Namespace()).
		Msg("almacenamiento del tenant eliminado")
	return nil
}
