package ports

import "context"

// LLMService define el puerto de salida hacia el oráculo de mapeo de columnas.
// Cualquier adaptador (OpenAI, Anthropic, mock) debe implementar esta interfaz.
//
// El contrato fija la orientación de forma explícita: el mapa devuelto va de
// CAMPO CANÓNICO -> NOMBRE DE COLUMNA DE ORIGEN. Versiones tempranas del
// sistema devolvían la orientación invertida (columna -> campo), así que el
// caller valida cada columna contra la cabecera antes de usar el resultado y
// descarta la respuesta completa si no es utilizable.
//
// La llamada es best-effort: puede fallar por timeout, respuesta malformada o
// mapeo parcial. El caller siempre tiene listo el fallback heurístico, por lo
// que un error aquí nunca detiene un lote.
type LLMService interface {
	// SuggestColumnMapping recibe la cabecera de la tabla subida y una muestra
	// de filas para desambiguar, y devuelve campo canónico -> columna origen.
	// Campos sin columna plausible se omiten del mapa. El contexto debe llevar
	// timeout para no bloquear la ingestión en un servicio externo.
	SuggestColumnMapping(ctx context.Context, headers []string, sampleRows []map[string]string) (map[string]string, error)
}
