package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cantina-engine/internal/application/ingest"
	"github.com/jhoicas/cantina-engine/internal/application/provision"
	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/pkg/logger"
)

var _ provision.Provisioner = (*Provisioner)(nil)
var _ ingest.Provisioner = (*Provisioner)(nil)

// Provisioner crea y destruye el juego de tablas dinámicas de un tenant:
// inventario, backup, ledger de movimientos y log de interacción. Las cuatro
// se crean (o se eliminan) en una sola transacción: nunca queda un tenant con
// el juego a medias.
type Provisioner struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewProvisioner(pool *pgxpool.Pool, log *logger.Logger) *Provisioner {
	return &Provisioner{pool: pool, log: log}
}

// EnsureBaseSchema crea la tabla estática users si no existe. Se invoca una
// vez en el arranque.
func (p *Provisioner) EnsureBaseSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			telegram_id BIGINT NOT NULL UNIQUE,
			username TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			business_name TEXT NOT NULL DEFAULT '',
			business_type TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			onboarded BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := p.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("crear tabla users: %w", err)
	}
	return nil
}

// Ensure crea las cuatro tablas del tenant si no existen. Idempotente:
// llamarlo sobre un tenant ya aprovisionado no toca nada.
func (p *Provisioner) Ensure(ctx context.Context, tenant entity.Tenant) error {
	if !tenant.Provisionable() {
		return fmt.Errorf("tenant %d sin business name: %w", tenant.TelegramID, domain.ErrInvalidInput)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				producer TEXT NOT NULL DEFAULT '',
				vintage INTEGER,
				grape_variety TEXT NOT NULL DEFAULT '',
				region TEXT NOT NULL DEFAULT '',
				country TEXT NOT NULL DEFAULT '',
				wine_type TEXT NOT NULL DEFAULT 'rosso',
				classification TEXT NOT NULL DEFAULT '',
				quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
				min_quantity INTEGER NOT NULL DEFAULT 1,
				cost_price NUMERIC(10,2),
				selling_price NUMERIC(10,2),
				alcohol_content DOUBLE PRECISION,
				description TEXT NOT NULL DEFAULT '',
				notes TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, inventoryTable(tenant)),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (lower(trim(name)), COALESCE(vintage, 0))`,
			quoteIdent(tableName(tenant, suffixInventory)+" natural_key"), inventoryTable(tenant)),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				backup_name TEXT NOT NULL,
				backup_type TEXT NOT NULL,
				backup_data TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, backupTable(tenant)),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				wine_name TEXT NOT NULL,
				wine_producer TEXT NOT NULL DEFAULT '',
				movement_type TEXT NOT NULL,
				quantity_change INTEGER NOT NULL,
				quantity_before INTEGER NOT NULL,
				quantity_after INTEGER NOT NULL,
				source_text TEXT NOT NULL DEFAULT '',
				notes TEXT NOT NULL DEFAULT '',
				movement_date TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, movementsTable(tenant)),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				role TEXT NOT NULL,
				content TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, interactionsTable(tenant)),
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("aprovisionar tablas de %q: %w", tenant.Namespace(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	p.log.Debug().Str("namespace", tenant.Namespace()).Msg("Tablas del tenant verificadas")
	return nil
}

// Exists comprueba si el tenant ya tiene su tabla de inventario. Como el juego
// se crea atómico, la de inventario responde por las cuatro.
func (p *Provisioner) Exists(ctx context.Context, tenant entity.Tenant) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = $1
		)`
	var exists bool
	if err := p.pool.QueryRow(ctx, query, tableName(tenant, suffixInventory)).Scan(&exists); err != nil {
		return false, fmt.Errorf("consultar aprovisionamiento: %w", err)
	}
	return exists, nil
}

// Drop elimina las cuatro tablas del tenant en una transacción. Operación
// administrativa destructiva; la autorización la valida el caso de uso.
func (p *Provisioner) Drop(ctx context.Context, tenant entity.Tenant) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tables := []string{
		inventoryTable(tenant),
		backupTable(tenant),
		movementsTable(tenant),
		interactionsTable(tenant),
	}
	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
			return fmt.Errorf("eliminar %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	p.log.Warn().Str("namespace", tenant.Namespace()).Msg("Tablas del tenant eliminadas")
	return nil
}
