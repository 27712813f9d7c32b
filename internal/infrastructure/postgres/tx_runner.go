package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cantina-engine/internal/application/ingest"
	"github.com/jhoicas/cantina-engine/internal/application/movement"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
)

var _ ingest.TxRunner = (*TxRunner)(nil)
var _ movement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIngestion inicia una transacción con los repos de un lote de ingestión y
// hace Commit o Rollback según el resultado de fn.
func (r *TxRunner) RunIngestion(ctx context.Context, fn func(
	wines repository.WineRepository,
	backups repository.BackupRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWineRepository(tx), NewBackupRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunMovement inicia una transacción con los repos de un movimiento: la fila
// del vino bloqueada con FOR UPDATE y la entrada del ledger viajan juntas.
// Un fallo transitorio (serialization o deadlock) se reintenta una vez con
// una transacción nueva: fn relee la cantidad con FOR UPDATE, así que el
// reintento es seguro.
func (r *TxRunner) RunMovement(ctx context.Context, fn func(
	wines repository.WineRepository,
	ledger repository.MovementLogRepository,
) error) error {
	err := r.runMovementOnce(ctx, fn)
	if err != nil && isRetryableTxError(err) {
		return r.runMovementOnce(ctx, fn)
	}
	return err
}

func (r *TxRunner) runMovementOnce(ctx context.Context, fn func(
	wines repository.WineRepository,
	ledger repository.MovementLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWineRepository(tx), NewMovementLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
