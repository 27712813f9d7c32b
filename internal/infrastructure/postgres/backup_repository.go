package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
)

var _ repository.BackupRepository = (*BackupRepo)(nil)

// BackupRepo implementación de los snapshots de inventario sobre la tabla
// dinámica "{namespace} BACKUP inventario" (usable con pool o tx).
type BackupRepo struct {
	q Querier
}

func NewBackupRepository(q Querier) *BackupRepo {
	return &BackupRepo{q: q}
}

func (r *BackupRepo) Create(tenant entity.Tenant, backup *entity.InventoryBackup) error {
	if backup.ID == "" {
		backup.ID = uuid.NewString()
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, backup_name, backup_type, backup_data, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING created_at`, backupTable(tenant))
	err := r.q.QueryRow(context.Background(), query,
		backup.ID, backup.BackupName, backup.BackupType, backup.BackupData,
	).Scan(&backup.CreatedAt)
	if err != nil {
		if isUndefinedTable(err) {
			return domain.ErrNotProvisioned
		}
		return fmt.Errorf("insert backup: %w", err)
	}
	return nil
}

func (r *BackupRepo) ListRecent(tenant entity.Tenant, limit int) ([]*entity.InventoryBackup, error) {
	query := fmt.Sprintf(`
		SELECT id, backup_name, backup_type, backup_data, created_at
		FROM %s ORDER BY created_at DESC LIMIT $1`, backupTable(tenant))
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, domain.ErrNotProvisioned
		}
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var backups []*entity.InventoryBackup
	for rows.Next() {
		var b entity.InventoryBackup
		if err := rows.Scan(&b.ID, &b.BackupName, &b.BackupType, &b.BackupData, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return backups, nil
}
