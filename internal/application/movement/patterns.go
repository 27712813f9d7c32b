package movement

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/cantina-engine/internal/domain/entity"
)

// wordNumbers mapea numerales italianos escritos a enteros: del 1 al 20 y las
// decenas hasta 100.
var wordNumbers = map[string]int{
	"un": 1, "uno": 1, "una": 1,
	"due": 2, "tre": 3, "quattro": 4, "cinque": 5,
	"sei": 6, "sette": 7, "otto": 8, "nove": 9,
	"dieci": 10, "undici": 11, "dodici": 12,
	"tredici": 13, "quattordici": 14, "quindici": 15,
	"sedici": 16, "diciassette": 17, "diciotto": 18,
	"diciannove": 19, "venti": 20,
	"trenta": 30, "quaranta": 40, "cinquanta": 50,
	"sessanta": 60, "settanta": 70, "ottanta": 80,
	"novanta": 90, "cento": 100,
}

const numberPattern = `(\d+|un|uno|una|due|tre|quattro|cinque|sei|sette|otto|nove|dieci|undici|dodici|tredici|quattordici|quindici|sedici|diciassette|diciotto|diciannove|venti|trenta|quaranta|cinquanta|sessanta|settanta|ottanta|novanta|cento)`

var (
	// Prefijos verbales que fijan el tipo de movimiento. El orden importa:
	// consumo antes que rifornimento, formas con "ho" antes que sin él.
	consumoPrefix      = regexp.MustCompile(`(?i)\b(?:ho\s+)?(?:venduto|consumato|bevuto)\b`)
	rifornimentoPrefix = regexp.MustCompile(`(?i)(?:aggiungere\s*:|\b(?:ho\s+)?(?:ricevuto|comprato|aggiunto)\b)`)

	// Forma con participio al final: "2 bottiglie di barolo vendute".
	consumoSuffix      = regexp.MustCompile(`(?i)^\s*` + numberPattern + `\s+bottigli[ae]\s+di\s+(.+?)\s+(?:vendut[ei]|consumat[ei]|bevut[ei])\s*$`)
	rifornimentoSuffix = regexp.MustCompile(`(?i)^\s*` + numberPattern + `\s+bottigli[ae]\s+di\s+(.+?)\s+(?:ricevut[ei]|comprat[ei]|aggiunt[ei])\s*$`)

	// Rettifica lleva delta con signo: "rettifica: -3 barolo", "rettifica di +5 fiano".
	rettifica = regexp.MustCompile(`(?i)rettifica\s*:?\s*(?:di\s+)?([+-]?\d+)\s+(?:bottigli[ae]\s+di\s+)?(.+)`)

	// Un fragmento simple: cantidad + "bottiglie di" opcional + nombre.
	fragment = regexp.MustCompile(`(?i)^\s*` + numberPattern + `\s+(?:bottigli[ae]\s+di\s+)?(.+?)\s*$`)

	separators    = regexp.MustCompile(`[\n,;]+`)
	eSplitter     = regexp.MustCompile(`\s+e\s+`)
	trailingPunct = regexp.MustCompile(`[,.;!?]+$`)
)

// ParsedMovement es un movimiento reconocido en texto libre, aún sin resolver
// contra el inventario. Quantity es positivo para consumo y rifornimento; en
// rettifica lleva el signo del delta.
type ParsedMovement struct {
	Type      string
	Quantity  int
	WineQuery string
}

// wordToNumber convierte un numeral italiano o una cifra a entero.
func wordToNumber(word string) (int, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if n, err := strconv.Atoi(word); err == nil {
		return n, true
	}
	n, ok := wordNumbers[word]
	return n, ok
}

// ParseMovements reconoce cero o más movimientos en un mensaje. Soporta
// movimientos múltiples separados por "e", comas o saltos de línea
// ("ho consumato 1 etna e 2 fiano"). Devuelve además los fragmentos que
// parecían movimientos pero no se pudieron interpretar. Determinista: el
// mismo texto produce siempre la misma secuencia.
func ParseMovements(text string) (parsed []ParsedMovement, unparsed []string) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return nil, nil
	}

	if m := rettifica.FindStringSubmatch(lower); m != nil {
		delta, _ := strconv.Atoi(m[1])
		name := cleanWineQuery(m[2])
		if name != "" && delta != 0 {
			return []ParsedMovement{{Type: entity.MovementRettifica, Quantity: delta, WineQuery: name}}, nil
		}
		return nil, []string{strings.TrimSpace(text)}
	}

	movType, rest := detectPrefix(lower)
	if movType == "" {
		if p, ok := matchSuffixForm(lower); ok {
			return []ParsedMovement{p}, nil
		}
		return nil, nil
	}

	// Unifica separadores y divide por " e " para movimientos múltiples.
	rest = separators.ReplaceAllString(rest, " e ")
	for _, part := range eSplitter.Split(rest, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := fragment.FindStringSubmatch(part)
		if m == nil {
			unparsed = append(unparsed, part)
			continue
		}
		qty, ok := wordToNumber(m[1])
		if !ok || qty <= 0 {
			unparsed = append(unparsed, part)
			continue
		}
		name := cleanWineQuery(m[2])
		if name == "" {
			unparsed = append(unparsed, part)
			continue
		}
		parsed = append(parsed, ParsedMovement{Type: movType, Quantity: qty, WineQuery: name})
	}
	return parsed, unparsed
}

// detectPrefix localiza el prefijo verbal y devuelve tipo y resto del mensaje.
func detectPrefix(lower string) (string, string) {
	if loc := consumoPrefix.FindStringIndex(lower); loc != nil {
		return entity.MovementConsumo, lower[loc[1]:]
	}
	if loc := rifornimentoPrefix.FindStringIndex(lower); loc != nil {
		return entity.MovementRifornimento, lower[loc[1]:]
	}
	return "", ""
}

func matchSuffixForm(lower string) (ParsedMovement, bool) {
	for _, c := range []struct {
		re      *regexp.Regexp
		movType string
	}{
		{consumoSuffix, entity.MovementConsumo},
		{rifornimentoSuffix, entity.MovementRifornimento},
	} {
		if m := c.re.FindStringSubmatch(lower); m != nil {
			qty, ok := wordToNumber(m[1])
			if !ok || qty <= 0 {
				continue
			}
			name := cleanWineQuery(m[2])
			if name == "" {
				continue
			}
			return ParsedMovement{Type: c.movType, Quantity: qty, WineQuery: name}, true
		}
	}
	return ParsedMovement{}, false
}

func cleanWineQuery(s string) string {
	return strings.TrimSpace(trailingPunct.ReplaceAllString(strings.TrimSpace(s), ""))
}
