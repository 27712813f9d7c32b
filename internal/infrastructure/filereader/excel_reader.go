package filereader

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/cantina-engine/internal/application/ingest"
	"github.com/jhoicas/cantina-engine/internal/domain"
)

var _ ingest.FileReader = (*ExcelReader)(nil)

// ExcelReader lee libros xlsx. Usa la primera hoja; la primera fila no vacía
// es la cabecera.
type ExcelReader struct{}

func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

func (r *ExcelReader) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".xlsx" || ext == ".xlsm"
}

func (r *ExcelReader) Read(data []byte) ([]string, []map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, domain.ErrEmptyInput
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}

	// Saltar filas en blanco iniciales antes de la cabecera.
	start := -1
	for i, record := range records {
		if !isBlankRecord(record) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, nil, domain.ErrEmptyInput
	}

	headers := make([]string, 0, len(records[start]))
	for _, h := range records[start] {
		headers = append(headers, strings.TrimSpace(h))
	}

	rows := make([]map[string]string, 0, len(records)-start-1)
	for _, record := range records[start+1:] {
		if isBlankRecord(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
