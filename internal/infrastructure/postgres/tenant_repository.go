package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL
// (usable con pool o tx). Los tenants viven en la tabla estática users.
type TenantRepo struct {
	q Querier
}

func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create registra un tenant nuevo tras el primer contacto.
func (r *TenantRepo) Create(tenant *entity.Tenant) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name, business_name, business_type, location, onboarded, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		tenant.TelegramID, tenant.Username, tenant.FirstName, tenant.LastName,
		tenant.BusinessName, tenant.BusinessType, tenant.Location, tenant.Onboarded,
	).Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByTelegramID obtiene un tenant por su Telegram ID.
func (r *TenantRepo) GetByTelegramID(telegramID int64) (*entity.Tenant, error) {
	query := `
		SELECT id, telegram_id, username, first_name, last_name, business_name, business_type, location, onboarded, created_at, updated_at
		FROM users WHERE telegram_id = $1`
	var t entity.Tenant
	err := r.q.QueryRow(context.Background(), query, telegramID).Scan(
		&t.ID, &t.TelegramID, &t.Username, &t.FirstName, &t.LastName,
		&t.BusinessName, &t.BusinessType, &t.Location, &t.Onboarded,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// CompleteOnboarding fija los datos del negocio y marca el onboarding como
// terminado. No se puede rehacer: el nombre del negocio forma parte del
// namespace de las tablas ya aprovisionadas.
func (r *TenantRepo) CompleteOnboarding(telegramID int64, businessName, businessType, location string) error {
	query := `
		UPDATE users
		SET business_name = $2, business_type = $3, location = $4, onboarded = true, updated_at = now()
		WHERE telegram_id = $1 AND onboarded = false`
	cmd, err := r.q.Exec(context.Background(), query, telegramID, businessName, businessType, location)
	if err != nil {
		return fmt.Errorf("complete onboarding: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByTelegramID(telegramID); err != nil {
			return err
		}
		// El tenant existe pero ya completó el onboarding.
		return domain.ErrDuplicate
	}
	return nil
}
