package repository

import "github.com/jhoicas/cantina-engine/internal/domain/entity"

// BackupRepository define el puerto de los snapshots inmutables de inventario
// ("{namespace} BACKUP inventario").
type BackupRepository interface {
	Create(tenant entity.Tenant, backup *entity.InventoryBackup) error
	ListRecent(tenant entity.Tenant, limit int) ([]*entity.InventoryBackup, error)
}
