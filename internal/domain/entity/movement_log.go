package entity

import "time"

// Tipos de movimiento reconocidos desde texto libre.
const (
	MovementConsumo      = "consumo"      // venta/consumo: delta negativo
	MovementRifornimento = "rifornimento" // reposición: delta positivo
	MovementRettifica    = "rettifica"    // ajuste con delta explícito con signo
)

// MovementLog registra un movimiento aplicado al inventario. Inmutable una vez
// escrito: se inserta en la misma transacción que actualiza la cantidad del vino.
type MovementLog struct {
	ID             string // uuid
	WineName       string
	WineProducer   string
	MovementType   string
	QuantityChange int // con signo: negativo consumo, positivo rifornimento
	QuantityBefore int
	QuantityAfter  int
	SourceText     string // frase original del usuario
	Notes          string // ej. aviso de clamp a cero
	MovementDate   time.Time
}
