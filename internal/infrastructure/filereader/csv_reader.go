package filereader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jhoicas/cantina-engine/internal/application/ingest"
	"github.com/jhoicas/cantina-engine/internal/domain"
)

var _ ingest.FileReader = (*CSVReader)(nil)

// CSVReader lee archivos CSV con cabecera en la primera fila. Detecta el
// separador (coma o punto y coma: los export italianos de Excel usan ';').
type CSVReader struct{}

func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

func (r *CSVReader) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".csv"
}

func (r *CSVReader) Read(data []byte) ([]string, []map[string]string, error) {
	// BOM de UTF-8: frecuente en archivos guardados desde Excel.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsear CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, domain.ErrEmptyInput
	}

	headers := make([]string, 0, len(records[0]))
	for _, h := range records[0] {
		headers = append(headers, strings.TrimSpace(h))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
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

// detectDelimiter elige entre ';' y ',' contando ocurrencias en la primera línea.
func detectDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx != -1 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
