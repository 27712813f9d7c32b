package movement

import (
	"context"

	"github.com/jhoicas/cantina-engine/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción. El read-modify-write de la
// cantidad (GetForUpdate, UpdateQuantity, inserción en el ledger) sucede
// completo dentro de fn o no sucede.
type TxRunner interface {
	RunMovement(ctx context.Context, fn func(wines repository.WineRepository, ledger repository.MovementLogRepository) error) error
}
