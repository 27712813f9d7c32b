package movement

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/cantina-engine/internal/domain/entity"
)

// foldAccents descompone y elimina marcas diacríticas: "Nerello Mascalese",
// "Rosé" y "rose" comparan igual.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldName(s string) string {
	out, _, err := transform.String(foldAccents, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// ResolveWine busca el vino del inventario que mejor corresponde a la consulta
// de texto libre. Resolución determinista en tres niveles, del más estricto al
// más laxo: igualdad exacta, subcadena (puntúa la longitud coincidente),
// solapamiento de tokens. Empates se rompen por orden alfabético del nombre.
func ResolveWine(wines []*entity.Wine, query string) (*entity.Wine, bool) {
	q := foldName(query)
	if q == "" || len(wines) == 0 {
		return nil, false
	}

	type candidate struct {
		wine  *entity.Wine
		score int
	}
	var candidates []candidate
	for _, w := range wines {
		name := foldName(w.Name)
		if name == "" {
			continue
		}
		score := matchScore(name, q)
		if score > 0 {
			candidates = append(candidates, candidate{wine: w, score: score})
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].wine.Name < candidates[j].wine.Name
	})
	return candidates[0].wine, true
}

func matchScore(name, query string) int {
	if name == query {
		return 1000
	}
	// Subcadena en cualquier dirección: puntúa por la longitud de la
	// coincidencia. Con "chianti" entre "chianti classico" y "chianti
	// riserva" la coincidencia es idéntica y decide el orden alfabético.
	if strings.Contains(name, query) {
		return capScore(450+len(query), 999)
	}
	// Nombre contenido en la consulta ("chianti rufina del 2019" -> "chianti
	// rufina"). Menos fiable que la dirección contraria.
	if strings.Contains(query, name) {
		return capScore(300+len(name), 449)
	}
	// Prefijo de los primeros 4 caracteres, para typos al final del nombre.
	if len(query) >= 4 && strings.HasPrefix(name, query[:4]) {
		return 300
	}
	// Solapamiento de tokens: "barolo conterno" encuentra "Barolo Riserva".
	overlap := 0
	nameTokens := strings.Fields(name)
	for _, qt := range strings.Fields(query) {
		for _, nt := range nameTokens {
			if qt == nt && len(qt) >= 3 {
				overlap++
				break
			}
		}
	}
	if overlap > 0 {
		return 100 + overlap
	}
	return 0
}

func capScore(score, ceiling int) int {
	if score > ceiling {
		return ceiling
	}
	return score
}
