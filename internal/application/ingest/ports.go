package ingest

import (
	"context"

	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción: los repositorios que recibe
// fn operan sobre la misma tx, y un error de fn revierte todo el lote.
type TxRunner interface {
	RunIngestion(ctx context.Context, fn func(wines repository.WineRepository, backups repository.BackupRepository) error) error
}

// FileReader extrae cabeceras y filas crudas de un archivo subido. Cada
// implementación cubre un formato (CSV, Excel, texto OCR).
type FileReader interface {
	Supports(filename string) bool
	Read(data []byte) (headers []string, rows []map[string]string, err error)
}

// Provisioner garantiza la existencia del juego de tablas del tenant antes de
// persistir. Idempotente.
type Provisioner interface {
	Ensure(ctx context.Context, tenant entity.Tenant) error
}
