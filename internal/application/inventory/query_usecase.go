package inventory

import (
	"fmt"

	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
)

// defaultListLimit acota los listados históricos cuando el caller no pide otro.
const defaultListLimit = 50

// QueryUseCase expone las consultas de solo lectura sobre el almacenamiento de
// un tenant: inventario, scorte minime, ledger, backups e interacciones.
type QueryUseCase struct {
	tenants      repository.TenantRepository
	wines        repository.WineRepository
	movements    repository.MovementLogRepository
	backups      repository.BackupRepository
	interactions repository.InteractionLogRepository
}

func NewQueryUseCase(
	tenants repository.TenantRepository,
	wines repository.WineRepository,
	movements repository.MovementLogRepository,
	backups repository.BackupRepository,
	interactions repository.InteractionLogRepository,
) *QueryUseCase {
	return &QueryUseCase{
		tenants:      tenants,
		wines:        wines,
		movements:    movements,
		backups:      backups,
		interactions: interactions,
	}
}

func (uc *QueryUseCase) tenant(telegramID int64) (*entity.Tenant, error) {
	tenant, err := uc.tenants.GetByTelegramID(telegramID)
	if err != nil {
		return nil, fmt.Errorf("buscar tenant: %w", err)
	}
	return tenant, nil
}

// Inventory devuelve el inventario completo del tenant.
func (uc *QueryUseCase) Inventory(telegramID int64) ([]*entity.Wine, error) {
	tenant, err := uc.tenant(telegramID)
	if err != nil {
		return nil, err
	}
	return uc.wines.ListByTenant(*tenant)
}

// LowStock devuelve los vinos en o por debajo de su scorta minima.
func (uc *QueryUseCase) LowStock(telegramID int64) ([]*entity.Wine, error) {
	tenant, err := uc.tenant(telegramID)
	if err != nil {
		return nil, err
	}
	return uc.wines.LowStock(*tenant)
}

// RecentMovements devuelve las últimas entradas del ledger.
func (uc *QueryUseCase) RecentMovements(telegramID int64, limit int) ([]*entity.MovementLog, error) {
	tenant, err := uc.tenant(telegramID)
	if err != nil {
		return nil, err
	}
	return uc.movements.ListRecent(*tenant, normalizeLimit(limit))
}

// RecentBackups devuelve los últimos snapshots de inventario.
func (uc *QueryUseCase) RecentBackups(telegramID int64, limit int) ([]*entity.InventoryBackup, error) {
	tenant, err := uc.tenant(telegramID)
	if err != nil {
		return nil, err
	}
	return uc.backups.ListRecent(*tenant, normalizeLimit(limit))
}

// RecentInteractions devuelve los últimos intercambios conversacionales.
func (uc *QueryUseCase) RecentInteractions(telegramID int64, limit int) ([]*entity.InteractionLog, error) {
	tenant, err := uc.tenant(telegramID)
	if err != nil {
		return nil, err
	}
	return uc.interactions.ListRecent(*tenant, normalizeLimit(limit))
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return defaultListLimit
	}
	return limit
}
