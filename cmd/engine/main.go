package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cantina-engine/internal/application/ingest"
	"github.com/jhoicas/cantina-engine/internal/application/inventory"
	"github.com/jhoicas/cantina-engine/internal/application/mapping"
	"github.com/jhoicas/cantina-engine/internal/application/movement"
	"github.com/jhoicas/cantina-engine/internal/application/ports"
	"github.com/jhoicas/cantina-engine/internal/application/provision"
	infraai "github.com/jhoicas/cantina-engine/internal/infrastructure/ai"
	"github.com/jhoicas/cantina-engine/internal/infrastructure/filereader"
	"github.com/jhoicas/cantina-engine/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cantina-engine/internal/interfaces/http"
	"github.com/jhoicas/cantina-engine/pkg/config"
	"github.com/jhoicas/cantina-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando motor de ingestión")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	wineRepo := postgres.NewWineRepository(pool)
	movementRepo := postgres.NewMovementLogRepository(pool)
	backupRepo := postgres.NewBackupRepository(pool)
	interactionRepo := postgres.NewInteractionLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	provisioner := postgres.NewProvisioner(pool, log)
	if err := provisioner.EnsureBaseSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("esquema base")
	}

	// Proveedor AI para el mapeo de columnas; sin clave configurada todo el
	// mapeo cae a la heurística.
	var llm ports.LLMService
	switch cfg.AI.Provider {
	case "anthropic":
		if cfg.AI.AnthropicAPIKey != "" {
			llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
		}
	case "openai":
		if cfg.AI.OpenAIAPIKey != "" {
			llm = infraai.NewOpenAIService(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel)
		}
	}
	if llm == nil {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("mapeo AI deshabilitado, solo heurística")
	}
	mapper := mapping.NewService(llm, log,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second, cfg.AI.MaxConcurrent)

	readers := []ingest.FileReader{
		filereader.NewCSVReader(),
		filereader.NewExcelReader(),
		filereader.NewOCRReader(),
	}

	ingestUC := ingest.NewUseCase(tenantRepo, readers, mapper, provisioner, txRunner, log)
	movementUC := movement.NewUseCase(tenantRepo, wineRepo, interactionRepo, txRunner, log)
	provisionUC := provision.NewUseCase(provisioner, tenantRepo, cfg.Admin, log)
	queryUC := inventory.NewQueryUseCase(tenantRepo, wineRepo, movementRepo, backupRepo, interactionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    25 * 1024 * 1024,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngestUC:    ingestUC,
		MovementUC:  movementUC,
		ProvisionUC: provisionUC,
		QueryUC:     queryUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("motor detenido")
}
