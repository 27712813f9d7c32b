package dto

// IngestRequest describe un archivo de inventario subido por un tenant.
type IngestRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Filename   string `json:"filename"`
	Data       []byte `json:"-"`
}

// IngestResult resume la ingestión: cuántas filas entraron, cuántas se
// guardaron (siempre iguales: el motor no descarta filas) y los avisos de
// degradación acumulados.
type IngestResult struct {
	RowsRead    int      `json:"rows_read"`
	RowsSaved   int      `json:"rows_saved"`
	Degraded    int      `json:"degraded"`
	Warnings    []string `json:"warnings,omitempty"`
	BackupID    string   `json:"backup_id,omitempty"`
	ColumnsUsed int      `json:"columns_used"`
}
