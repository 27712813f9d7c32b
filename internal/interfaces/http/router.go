package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cantina-engine/internal/application/ingest"
	"github.com/jhoicas/cantina-engine/internal/application/inventory"
	"github.com/jhoicas/cantina-engine/internal/application/movement"
	"github.com/jhoicas/cantina-engine/internal/application/provision"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngestUC    *ingest.UseCase
	MovementUC  *movement.UseCase
	ProvisionUC *provision.UseCase
	QueryUC     *inventory.QueryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Tenants y onboarding
	tenants := api.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.ProvisionUC)
	tenants.Post("/", tenantHandler.Register)
	tenants.Post("/:id/onboarding", tenantHandler.CompleteOnboarding)
	tenants.Get("/:id/provisioning", tenantHandler.ProvisioningStatus)

	// Consultas de inventario por tenant
	inventoryHandler := NewInventoryHandler(deps.QueryUC)
	tenants.Get("/:id/inventory", inventoryHandler.List)
	tenants.Get("/:id/inventory/low-stock", inventoryHandler.LowStock)
	tenants.Get("/:id/movements", inventoryHandler.Movements)
	tenants.Get("/:id/backups", inventoryHandler.Backups)
	tenants.Get("/:id/interactions", inventoryHandler.Interactions)

	// Ingestión de archivos
	ingestHandler := NewIngestHandler(deps.IngestUC)
	api.Post("/ingest", ingestHandler.Ingest)

	// Movimientos en texto libre
	movementHandler := NewMovementHandler(deps.MovementUC)
	api.Post("/movements", movementHandler.Process)

	// Administración (allow-list)
	adminHandler := NewAdminHandler(deps.ProvisionUC)
	api.Delete("/admin/tenants/:id", adminHandler.TeardownTenant)
}
