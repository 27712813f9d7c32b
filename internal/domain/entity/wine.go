package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de vino detectables desde el nombre.
const (
	WineTypeRosso    = "rosso"
	WineTypeBianco   = "bianco"
	WineTypeRosato   = "rosato"
	WineTypeSpumante = "spumante"
)

// Marcador fijo que separa los avisos de importación de las notas preexistentes.
// Las notas nunca se sobrescriben, solo se anexa debajo del marcador.
const ImportNotesMarker = "⚠️ Importazione:"

// Wine representa una línea de producto del inventario de un tenant.
// Campos no parseables caen a sus valores por defecto y el motivo queda
// anexado en Notes: un registro degradado se persiste igual que uno limpio.
type Wine struct {
	ID             int64
	Name           string // obligatorio; placeholder si la fila venía sin nombre
	Producer       string
	Vintage        *int // annata, [1900, 2099] o nil
	GrapeVariety   string
	Region         string
	Country        string
	WineType       string // rosso, bianco, rosato, spumante
	Classification string // DOCG, DOC, IGT...
	Quantity       int    // nunca negativo
	MinQuantity    int    // scorta minima
	CostPrice      decimal.NullDecimal // prezzo de compra
	SellingPrice   decimal.NullDecimal // prezzo in carta
	AlcoholContent *float64            // porcentaje [0,100] o nil
	Description    string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AppendImportWarnings anexa avisos bajo el marcador de importación sin tocar
// las notas preexistentes.
func (w *Wine) AppendImportWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	block := ImportNotesMarker + " " + strings.Join(warnings, "; ")
	if strings.TrimSpace(w.Notes) == "" {
		w.Notes = block
		return
	}
	w.Notes = w.Notes + "\n" + block
}

// DetectWineType deduce el tipo de vino a partir del nombre; rosso por defecto.
func DetectWineType(name string) string {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "champagne", "spumante", "prosecco", "franciacorta", "cava"):
		return WineTypeSpumante
	case containsAny(lower, "bianco", "white", "chardonnay", "pinot grigio", "sauvignon"):
		return WineTypeBianco
	case containsAny(lower, "rosato", "rosé", "rose "):
		return WineTypeRosato
	default:
		return WineTypeRosso
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
