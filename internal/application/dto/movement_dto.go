package dto

// MovementRequest es un mensaje de texto libre del tenant que puede contener
// uno o varios movimientos de inventario.
type MovementRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Text       string `json:"text"`
}

// AppliedMovement es un movimiento reconocido y aplicado al inventario.
type AppliedMovement struct {
	WineName       string `json:"wine_name"`
	MovementType   string `json:"movement_type"`
	QuantityChange int    `json:"quantity_change"`
	QuantityBefore int    `json:"quantity_before"`
	QuantityAfter  int    `json:"quantity_after"`
	Clamped        bool   `json:"clamped,omitempty"`
	Warning        string `json:"warning,omitempty"`
}

// MovementResult agrupa los movimientos aplicados y los fragmentos que no se
// pudieron reconocer o resolver. Un texto sin movimientos no es un error.
type MovementResult struct {
	Recognized bool              `json:"recognized"`
	Applied    []AppliedMovement `json:"applied,omitempty"`
	Unresolved []string          `json:"unresolved,omitempty"`
}
