package entity

import "time"

// Tipos de backup de inventario.
const (
	BackupTypeInitial       = "initial"
	BackupTypePostIngestion = "post_ingestion"
	BackupTypeManual        = "manual"
)

// InventoryBackup es una serialización inmutable del inventario completo de un
// tenant en un instante dado. Se crea automáticamente tras cada lote de
// ingestión exitoso, en la misma transacción que persiste el lote.
type InventoryBackup struct {
	ID         string // uuid
	BackupName string
	BackupType string
	BackupData string // JSON con todos los vinos
	CreatedAt  time.Time
}
