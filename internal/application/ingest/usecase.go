package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/application/mapping"
	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
	"github.com/jhoicas/cantina-engine/pkg/logger"
)

// sampleRowLimit acota las filas de muestra enviadas al servicio de IA.
const sampleRowLimit = 5

// UseCase orquesta la ingestión completa: lectura del archivo, resolución del
// mapeo de columnas, reconciliación fila a fila y persistencia transaccional
// del lote con su backup.
type UseCase struct {
	tenants     repository.TenantRepository
	readers     []FileReader
	mapper      *mapping.Service
	provisioner Provisioner
	tx          TxRunner
	log         *logger.Logger
}

func NewUseCase(
	tenants repository.TenantRepository,
	readers []FileReader,
	mapper *mapping.Service,
	provisioner Provisioner,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tenants:     tenants,
		readers:     readers,
		mapper:      mapper,
		provisioner: provisioner,
		tx:          tx,
		log:         log,
	}
}

// Ingest procesa un archivo de inventario para un tenant. El lote completo se
// persiste en una sola transacción junto con el backup post-ingestión, así
// que repetir la llamada tras un fallo es seguro.
func (uc *UseCase) Ingest(ctx context.Context, req dto.IngestRequest) (*dto.IngestResult, error) {
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("archivo vacío: %w", domain.ErrEmptyInput)
	}

	reader := uc.readerFor(req.Filename)
	if reader == nil {
		return nil, fmt.Errorf("formato no soportado %q: %w", req.Filename, domain.ErrUnsupportedFile)
	}

	headers, rows, err := reader.Read(req.Data)
	if err != nil {
		return nil, fmt.Errorf("error leyendo %q: %w", req.Filename, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("el archivo no contiene filas: %w", domain.ErrEmptyInput)
	}

	tenant, err := uc.tenants.GetByTelegramID(req.TelegramID)
	if err != nil {
		return nil, err
	}
	if !tenant.Provisionable() {
		return nil, fmt.Errorf("tenant %d sin onboarding completo: %w", req.TelegramID, domain.ErrNotProvisioned)
	}

	if err := uc.provisioner.Ensure(ctx, *tenant); err != nil {
		return nil, fmt.Errorf("error aprovisionando tablas: %w", err)
	}

	fieldMapping := uc.mapper.Resolve(ctx, headers, sampleRows(rows))
	reconciled := ReconcileBatch(rows, fieldMapping)

	degraded := 0
	for _, r := range reconciled {
		if r.Degraded() {
			degraded++
		}
	}

	var backupID string
	err = uc.tx.RunIngestion(ctx, func(wines repository.WineRepository, backups repository.BackupRepository) error {
		for _, r := range reconciled {
			if err := wines.Upsert(*tenant, r.Wine); err != nil {
				return fmt.Errorf("error guardando %q: %w", r.Wine.Name, err)
			}
		}
		snapshot, err := wines.ListByTenant(*tenant)
		if err != nil {
			return fmt.Errorf("error leyendo inventario para backup: %w", err)
		}
		data, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("error serializando backup: %w", err)
		}
		backup := &entity.InventoryBackup{
			BackupName: fmt.Sprintf("post_ingestion_%s", time.Now().UTC().Format("20060102_150405")),
			BackupType: entity.BackupTypePostIngestion,
			BackupData: string(data),
		}
		if err := backups.Create(*tenant, backup); err != nil {
			return fmt.Errorf("error creando backup: %w", err)
		}
		backupID = backup.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("telegram_id", req.TelegramID).
		Int("rows", len(rows)).
		Int("degraded", degraded).
		Str("backup_id", backupID).
		Msg("Ingestión completada")

	return &dto.IngestResult{
		RowsRead:    len(rows),
		RowsSaved:   len(reconciled),
		Degraded:    degraded,
		Warnings:    SummarizeWarnings(reconciled),
		BackupID:    backupID,
		ColumnsUsed: mappedColumns(fieldMapping),
	}, nil
}

func (uc *UseCase) readerFor(filename string) FileReader {
	for _, r := range uc.readers {
		if r.Supports(filename) {
			return r
		}
	}
	return nil
}

func sampleRows(rows []map[string]string) []map[string]string {
	if len(rows) <= sampleRowLimit {
		return rows
	}
	return rows[:sampleRowLimit]
}

func mappedColumns(m mapping.FieldMapping) int {
	n := 0
	for _, col := range m {
		if col != "" {
			n++
		}
	}
	return n
}
