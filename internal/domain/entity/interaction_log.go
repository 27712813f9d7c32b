package entity

import "time"

// Roles de una entrada del log de interacción.
const (
	InteractionRoleUser      = "user"
	InteractionRoleAssistant = "assistant"
)

// InteractionLog registra un intercambio conversacional: el texto del usuario
// y el resumen de lo que el motor hizo con él.
type InteractionLog struct {
	ID        string // uuid
	Role      string
	Content   string
	CreatedAt time.Time
}
