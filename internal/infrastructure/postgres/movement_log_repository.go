package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
)

var _ repository.MovementLogRepository = (*MovementLogRepo)(nil)

// MovementLogRepo implementación del ledger de movimientos sobre la tabla
// dinámica "{namespace} Consumi e rifornimenti" (usable con pool o tx).
type MovementLogRepo struct {
	q Querier
}

func NewMovementLogRepository(q Querier) *MovementLogRepo {
	return &MovementLogRepo{q: q}
}

// Create inserta una entrada del ledger. Solo inserción: las entradas nunca
// se actualizan ni se borran.
func (r *MovementLogRepo) Create(tenant entity.Tenant, log *entity.MovementLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, wine_name, wine_producer, movement_type, quantity_change, quantity_before, quantity_after, source_text, notes, movement_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, movementsTable(tenant))
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.WineName, log.WineProducer, log.MovementType,
		log.QuantityChange, log.QuantityBefore, log.QuantityAfter,
		log.SourceText, log.Notes, log.MovementDate,
	)
	if err != nil {
		if isUndefinedTable(err) {
			return domain.ErrNotProvisioned
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListRecent devuelve los últimos movimientos, el más reciente primero.
func (r *MovementLogRepo) ListRecent(tenant entity.Tenant, limit int) ([]*entity.MovementLog, error) {
	query := fmt.Sprintf(`
		SELECT id, wine_name, wine_producer, movement_type, quantity_change, quantity_before, quantity_after, source_text, notes, movement_date
		FROM %s ORDER BY movement_date DESC LIMIT $1`, movementsTable(tenant))
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, domain.ErrNotProvisioned
		}
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var logs []*entity.MovementLog
	for rows.Next() {
		var l entity.MovementLog
		if err := rows.Scan(
			&l.ID, &l.WineName, &l.WineProducer, &l.MovementType,
			&l.QuantityChange, &l.QuantityBefore, &l.QuantityAfter,
			&l.SourceText, &l.Notes, &l.MovementDate,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return logs, nil
}
