package repository

import "github.com/jhoicas/cantina-engine/internal/domain/entity"

// MovementLogRepository define el puerto del ledger inmutable de movimientos
// ("{namespace} Consumi e rifornimenti"). Solo inserta y lee; nunca actualiza.
type MovementLogRepository interface {
	Create(tenant entity.Tenant, log *entity.MovementLog) error
	ListRecent(tenant entity.Tenant, limit int) ([]*entity.MovementLog, error)
}
