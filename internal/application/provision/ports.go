package provision

import (
	"context"

	"github.com/jhoicas/cantina-engine/internal/domain/entity"
)

// Provisioner define el puerto de aprovisionamiento del almacenamiento por
// tenant: las cuatro tablas (inventario, backup, ledger de movimientos, log
// de interacción) bajo el namespace del tenant.
type Provisioner interface {
	// Ensure crea las cuatro tablas como un conjunto atómico si no existen.
	// Idempotente: repetir la llamada sobre un tenant ya aprovisionado es un
	// no-op. Un fallo a mitad no deja al tenant con un subconjunto de tablas.
	Ensure(ctx context.Context, tenant entity.Tenant) error
	// Exists informa si las cuatro tablas del tenant existen.
	Exists(ctx context.Context, tenant entity.Tenant) (bool, error)
	// Drop elimina las cuatro tablas. Irreversible; el caller ya debe haber
	// verificado los privilegios del solicitante.
	Drop(ctx context.Context, tenant entity.Tenant) error
}
