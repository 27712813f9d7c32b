package repository

import "github.com/jhoicas/cantina-engine/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant (DIP).
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByTelegramID(telegramID int64) (*entity.Tenant, error)
	// CompleteOnboarding fija el nombre del negocio y marca el onboarding
	// como terminado. Renombrar el negocio tras el aprovisionamiento no
	// está soportado.
	CompleteOnboarding(telegramID int64, businessName, businessType, location string) error
}
