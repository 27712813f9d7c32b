package filereader

import (
	"regexp"
	"strings"

	"github.com/jhoicas/cantina-engine/internal/application/ingest"
	"github.com/jhoicas/cantina-engine/internal/domain"
)

var _ ingest.FileReader = (*OCRReader)(nil)

// headerMarkers son las palabras que identifican la línea de cabecera dentro
// de un texto OCR de inventario.
var headerMarkers = []string{"etichetta", "produttore", "nome", "vino"}

// columnSplit divide por tabuladores o dos o más espacios: el OCR de una tabla
// suele conservar la separación visual de columnas.
var columnSplit = regexp.MustCompile(`\t+| {2,}`)

// OCRReader lee texto plano extraído por OCR de una foto de inventario. Busca
// la línea de cabecera por palabras clave y trata las líneas siguientes como
// filas con columnas separadas por tabuladores o espacios múltiples.
type OCRReader struct{}

func NewOCRReader() *OCRReader {
	return &OCRReader{}
}

func (r *OCRReader) Supports(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".txt")
}

func (r *OCRReader) Read(data []byte) ([]string, []map[string]string, error) {
	lines := strings.Split(string(data), "\n")

	headerIdx := -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, marker := range headerMarkers {
			if strings.Contains(lower, marker) {
				headerIdx = i
				break
			}
		}
		if headerIdx != -1 {
			break
		}
	}
	if headerIdx == -1 {
		return nil, nil, domain.ErrEmptyInput
	}

	headers := splitColumns(lines[headerIdx])
	if len(headers) == 0 {
		return nil, nil, domain.ErrEmptyInput
	}

	var rows []map[string]string
	for _, line := range lines[headerIdx+1:] {
		parts := splitColumns(line)
		if len(parts) == 0 {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(parts) {
				row[h] = parts[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func splitColumns(line string) []string {
	var out []string
	for _, part := range columnSplit.Split(line, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
