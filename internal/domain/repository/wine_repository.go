package repository

import "github.com/jhoicas/cantina-engine/internal/domain/entity"

// WineRepository define el puerto de persistencia del inventario de un tenant.
// Cada método opera sobre la tabla dinámica "{namespace} INVENTARIO" del tenant;
// una tabla inexistente se reporta como domain.ErrNotProvisioned.
type WineRepository interface {
	ListByTenant(tenant entity.Tenant) ([]*entity.Wine, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) para serializar el
	// read-modify-write de cantidades por (tenant, vino). Solo válido dentro
	// de una transacción.
	GetForUpdate(tenant entity.Tenant, wineID int64) (*entity.Wine, error)
	UpdateQuantity(tenant entity.Tenant, wineID int64, quantity int) error
	// Upsert inserta o reemplaza por clave natural (lower(trim(name)), vintage):
	// re-ingerir el mismo archivo no duplica líneas.
	Upsert(tenant entity.Tenant, wine *entity.Wine) error
	LowStock(tenant entity.Tenant) ([]*entity.Wine, error)
}
