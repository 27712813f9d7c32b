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

var _ repository.WineRepository = (*WineRepo)(nil)

const wineColumns = `id, name, producer, vintage, grape_variety, region, country, wine_type, classification, quantity, min_quantity, cost_price, selling_price, alcohol_content, description, notes, created_at, updated_at`

// WineRepo implementación del puerto WineRepository sobre la tabla dinámica
// "{namespace} INVENTARIO" de cada tenant (usable con pool o tx).
type WineRepo struct {
	q Querier
}

func NewWineRepository(q Querier) *WineRepo {
	return &WineRepo{q: q}
}

// ListByTenant devuelve el inventario completo ordenado por nombre.
func (r *WineRepo) ListByTenant(tenant entity.Tenant) ([]*entity.Wine, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name, vintage NULLS LAST`, wineColumns, inventoryTable(tenant))
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, domain.ErrNotProvisioned
		}
		return nil, fmt.Errorf("list wines: %w", err)
	}
	defer rows.Close()

	var wines []*entity.Wine
	for rows.Next() {
		w, err := scanWine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wine: %w", err)
		}
		wines = append(wines, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list wines: %w", err)
	}
	return wines, nil
}

// GetForUpdate bloquea la fila del vino para serializar el read-modify-write
// de la cantidad. Solo tiene sentido dentro de una transacción.
func (r *WineRepo) GetForUpdate(tenant entity.Tenant, wineID int64) (*entity.Wine, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, wineColumns, inventoryTable(tenant))
	w, err := scanWine(r.q.QueryRow(context.Background(), query, wineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWineNotFound
		}
		if isUndefinedTable(err) {
			return nil, domain.ErrNotProvisioned
		}
		return nil, fmt.Errorf("get wine for update: %w", err)
	}
	return w, nil
}

// UpdateQuantity fija la cantidad absoluta de un vino.
func (r *WineRepo) UpdateQuantity(tenant entity.Tenant, wineID int64, quantity int) error {
	query := fmt.Sprintf(`UPDATE %s SET quantity = $2, updated_at = now() WHERE id = $1`, inventoryTable(tenant))
	cmd, err := r.q.Exec(context.Background(), query, wineID, quantity)
	if err != nil {
		if isUndefinedTable(err) {
			return domain.ErrNotProvisioned
		}
		return fmt.Errorf("update quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrWineNotFound
	}
	return nil
}

// Upsert inserta o reemplaza por clave natural (lower(trim(name)), annata):
// re-ingerir el mismo archivo actualiza las líneas en vez de duplicarlas.
// Las notas también se reemplazan, así la re-ingestión es idempotente.
func (r *WineRepo) Upsert(tenant entity.Tenant, wine *entity.Wine) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, producer, vintage, grape_variety, region, country, wine_type, classification, quantity, min_quantity, cost_price, selling_price, alcohol_content, description, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
		ON CONFLICT (lower(trim(name)), COALESCE(vintage, 0)) DO UPDATE SET
			producer = EXCLUDED.producer,
			grape_variety = EXCLUDED.grape_variety,
			region = EXCLUDED.region,
			country = EXCLUDED.country,
			wine_type = EXCLUDED.wine_type,
			classification = EXCLUDED.classification,
			quantity = EXCLUDED.quantity,
			min_quantity = EXCLUDED.min_quantity,
			cost_price = EXCLUDED.cost_price,
			selling_price = EXCLUDED.selling_price,
			alcohol_content = EXCLUDED.alcohol_content,
			description = EXCLUDED.description,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING id, created_at, updated_at`, inventoryTable(tenant))
	err := r.q.QueryRow(context.Background(), query,
		wine.Name, wine.Producer, wine.Vintage, wine.GrapeVariety, wine.Region,
		wine.Country, wine.WineType, wine.Classification, wine.Quantity, wine.MinQuantity,
		wine.CostPrice, wine.SellingPrice, wine.AlcoholContent, wine.Description, wine.Notes,
	).Scan(&wine.ID, &wine.CreatedAt, &wine.UpdatedAt)
	if err != nil {
		if isUndefinedTable(err) {
			return domain.ErrNotProvisioned
		}
		return fmt.Errorf("upsert wine: %w", err)
	}
	return nil
}

// LowStock devuelve los vinos en o por debajo de su scorta minima.
func (r *WineRepo) LowStock(tenant entity.Tenant) ([]*entity.Wine, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE quantity <= min_quantity ORDER BY quantity, name`, wineColumns, inventoryTable(tenant))
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, domain.ErrNotProvisioned
		}
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var wines []*entity.Wine
	for rows.Next() {
		w, err := scanWine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wine: %w", err)
		}
		wines = append(wines, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return wines, nil
}

func scanWine(row pgx.Row) (*entity.Wine, error) {
	var w entity.Wine
	err := row.Scan(
		&w.ID, &w.Name, &w.Producer, &w.Vintage, &w.GrapeVariety, &w.Region,
		&w.Country, &w.WineType, &w.Classification, &w.Quantity, &w.MinQuantity,
		&w.CostPrice, &w.SellingPrice, &w.AlcoholContent, &w.Description, &w.Notes,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
