package repository

import "github.com/jhoicas/cantina-engine/internal/domain/entity"

// InteractionLogRepository define el puerto del log conversacional
// ("{namespace} LOG interazione").
type InteractionLogRepository interface {
	Create(tenant entity.Tenant, log *entity.InteractionLog) error
	ListRecent(tenant entity.Tenant, limit int) ([]*entity.InteractionLog, error)
}
