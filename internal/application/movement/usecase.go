package movement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
	"github.com/jhoicas/cantina-engine/pkg/logger"
)

// UseCase procesa mensajes de texto libre en italiano, reconoce movimientos de
// inventario y los aplica al ledger. Cada movimiento se aplica en su propia
// transacción con la fila del vino bloqueada (FOR UPDATE): dos movimientos
// concurrentes sobre el mismo vino se serializan y ninguno se pierde.
type UseCase struct {
	tenants      repository.TenantRepository
	wines        repository.WineRepository
	interactions repository.InteractionLogRepository
	tx           TxRunner
	log          *logger.Logger
}

func NewUseCase(
	tenants repository.TenantRepository,
	wines repository.WineRepository,
	interactions repository.InteractionLogRepository,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tenants:      tenants,
		wines:        wines,
		interactions: interactions,
		tx:           tx,
		log:          log,
	}
}

// Process analiza el texto y aplica los movimientos reconocidos. Un texto sin
// movimientos devuelve Recognized=false, no un error: el caller decide qué
// hacer con los mensajes que no son movimientos. Un tenant sin tablas
// aprovisionadas sí es un error.
func (uc *UseCase) Process(ctx context.Context, req dto.MovementRequest) (*dto.MovementResult, error) {
	tenant, err := uc.tenants.GetByTelegramID(req.TelegramID)
	if err != nil {
		return nil, err
	}
	if !tenant.Provisionable() {
		return nil, fmt.Errorf("tenant %d sin onboarding completo: %w", req.TelegramID, domain.ErrNotProvisioned)
	}

	parsed, unparsed := ParseMovements(req.Text)
	result := &dto.MovementResult{
		Recognized: len(parsed) > 0,
		Unresolved: unparsed,
	}
	if len(parsed) == 0 {
		return result, nil
	}

	// La lista para la resolución fuzzy se lee fuera de la transacción; la
	// cantidad autoritativa se relee con FOR UPDATE dentro.
	inventory, err := uc.wines.ListByTenant(*tenant)
	if err != nil {
		return nil, fmt.Errorf("error leyendo inventario: %w", err)
	}

	for _, p := range parsed {
		wine, ok := ResolveWine(inventory, p.WineQuery)
		if !ok {
			uc.log.Warn().
				Int64("telegram_id", req.TelegramID).
				Str("query", p.WineQuery).
				Msg("Vino no encontrado en inventario")
			result.Unresolved = append(result.Unresolved,
				fmt.Sprintf("vino non trovato: %q", p.WineQuery))
			continue
		}

		applied, err := uc.applyOne(ctx, *tenant, wine.ID, p, req.Text)
		if err != nil {
			return nil, err
		}
		result.Applied = append(result.Applied, *applied)
	}

	uc.recordInteraction(*tenant, req.Text, result)
	return result, nil
}

// applyOne aplica un movimiento dentro de una transacción: relee la cantidad
// con la fila bloqueada, calcula el delta, recorta a cero si haría negativo el
// stock y escribe cantidad y ledger atómicamente.
func (uc *UseCase) applyOne(ctx context.Context, tenant entity.Tenant, wineID int64, p ParsedMovement, sourceText string) (*dto.AppliedMovement, error) {
	var applied dto.AppliedMovement

	err := uc.tx.RunMovement(ctx, func(wines repository.WineRepository, ledger repository.MovementLogRepository) error {
		wine, err := wines.GetForUpdate(tenant, wineID)
		if err != nil {
			return err
		}

		delta := p.Quantity
		if p.Type == entity.MovementConsumo {
			delta = -delta
		}

		before := wine.Quantity
		after := before + delta
		var warning string
		if after < 0 {
			// Nunca stock negativo: se recorta a cero y el déficit queda
			// registrado en las notas del ledger.
			warning = fmt.Sprintf("quantità insufficiente: richieste %d, disponibili %d", -delta, before)
			after = 0
			delta = -before
		}

		if err := wines.UpdateQuantity(tenant, wineID, after); err != nil {
			return fmt.Errorf("error actualizando cantidad de %q: %w", wine.Name, err)
		}

		logEntry := &entity.MovementLog{
			ID:             uuid.NewString(),
			WineName:       wine.Name,
			WineProducer:   wine.Producer,
			MovementType:   p.Type,
			QuantityChange: delta,
			QuantityBefore: before,
			QuantityAfter:  after,
			SourceText:     sourceText,
			Notes:          warning,
			MovementDate:   time.Now().UTC(),
		}
		if err := ledger.Create(tenant, logEntry); err != nil {
			return fmt.Errorf("error registrando movimiento de %q: %w", wine.Name, err)
		}

		applied = dto.AppliedMovement{
			WineName:       wine.Name,
			MovementType:   p.Type,
			QuantityChange: delta,
			QuantityBefore: before,
			QuantityAfter:  after,
			Clamped:        warning != "",
			Warning:        warning,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("wine", applied.WineName).
		Str("type", applied.MovementType).
		Int("before", applied.QuantityBefore).
		Int("after", applied.QuantityAfter).
		Msg("Movimiento aplicado")
	return &applied, nil
}

// recordInteraction guarda el intercambio en el log conversacional del tenant.
// Best effort: un fallo aquí no invalida los movimientos ya aplicados.
func (uc *UseCase) recordInteraction(tenant entity.Tenant, text string, result *dto.MovementResult) {
	if err := uc.interactions.Create(tenant, &entity.InteractionLog{
		Role:    entity.InteractionRoleUser,
		Content: text,
	}); err != nil {
		uc.log.Warn().Err(err).Msg("No se pudo guardar la interacción del usuario")
		return
	}
	if err := uc.interactions.Create(tenant, &entity.InteractionLog{
		Role:    entity.InteractionRoleAssistant,
		Content: summarize(result),
	}); err != nil {
		uc.log.Warn().Err(err).Msg("No se pudo guardar la respuesta en el log")
	}
}

func summarize(result *dto.MovementResult) string {
	if !result.Recognized {
		return "nessun movimento riconosciuto"
	}
	parts := make([]string, 0, len(result.Applied))
	for _, a := range result.Applied {
		parts = append(parts, fmt.Sprintf("%s %+d %s (%d→%d)",
			a.MovementType, a.QuantityChange, a.WineName, a.QuantityBefore, a.QuantityAfter))
	}
	if len(result.Unresolved) > 0 {
		parts = append(parts, fmt.Sprintf("non risolti: %d", len(result.Unresolved)))
	}
	return strings.Join(parts, "; ")
}
