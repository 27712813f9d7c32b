package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
)

var _ repository.InteractionLogRepository = (*InteractionLogRepo)(nil)

// InteractionLogRepo implementación del log conversacional sobre la tabla
// dinámica "{namespace} LOG interazione" (usable con pool o tx).
type InteractionLogRepo struct {
	q Querier
}

func NewInteractionLogRepository(q Querier) *InteractionLogRepo {
	return &InteractionLogRepo{q: q}
}

func (r *InteractionLogRepo) Create(tenant entity.Tenant, log *entity.InteractionLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, role, content, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING created_at`, interactionsTable(tenant))
	err := r.q.QueryRow(context.Background(), query, log.ID, log.Role, log.Content).Scan(&log.CreatedAt)
	if err != nil {
		if isUndefinedTable(err) {
			return domain.ErrNotProvisioned
		}
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

func (r *InteractionLogRepo) ListRecent(tenant entity.Tenant, limit int) ([]*entity.InteractionLog, error) {
	query := fmt.Sprintf(`
		SELECT id, role, content, created_at
		FROM %s ORDER BY created_at DESC LIMIT $1`, interactionsTable(tenant))
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, domain.ErrNotProvisioned
		}
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var logs []*entity.InteractionLog
	for rows.Next() {
		var l entity.InteractionLog
		if err := rows.Scan(&l.ID, &l.Role, &l.Content, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return logs, nil
}
