package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// mappingSystemPrompt instruye al modelo para mapear campo canónico -> columna
// del archivo. La orientación es crítica: las claves son SIEMPRE los campos
// canónicos y los valores las cabeceras del archivo, nunca al revés.
const mappingSystemPrompt = `Sei un esperto di inventari di vini per ristoranti ed enoteche italiane.
Ricevi le intestazioni di colonna di un file di inventario e alcune righe di esempio.
Devi mappare i campi canonici dell'inventario alle colonne del file.

Restituisci SOLO un oggetto JSON valido (senza markdown, senza blocchi di codice) con questa struttura:
{"name": "<intestazione colonna>", "producer": "<intestazione colonna>", ...}

Regole:
- Le CHIAVI sono i campi canonici: name, producer, vintage, quantity, price, cost_price, alcohol_content, grape_variety, region, country, classification, min_quantity, notes.
- I VALORI sono le intestazioni di colonna del file, copiate ESATTAMENTE come appaiono.
- Ometti i campi che non hanno una colonna corrispondente. Non inventare colonne.
- Non includere testo fuori dal JSON.`

// buildMappingPrompt arma el mensaje de usuario con cabeceras y filas de muestra.
func buildMappingPrompt(headers []string, sampleRows []map[string]string) string {
	var b strings.Builder
	b.WriteString("Intestazioni: ")
	b.WriteString(strings.Join(headers, " | "))
	for i, row := range sampleRows {
		data, err := json.Marshal(row)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "\nRiga %d: %s", i+1, data)
	}
	return b.String()
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo
// envuelva en markdown. Captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}

// parseMappingJSON deserializa la respuesta del modelo a un mapa plano
// campo -> columna, descartando valores que no sean string.
func parseMappingJSON(raw string) (map[string]string, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", raw)
	}
	var generic map[string]any
	if err := json.Unmarshal([]byte(clean), &generic); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de mapeo: %w (JSON extraído: %s)", err, clean)
	}
	mapping := make(map[string]string, len(generic))
	for field, v := range generic {
		if col, ok := v.(string); ok && strings.TrimSpace(col) != "" {
			mapping[field] = col
		}
	}
	return mapping, nil
}
