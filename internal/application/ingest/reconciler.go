package ingest

import (
	"fmt"
	"strings"

	"github.com/jhoicas/cantina-engine/internal/application/mapping"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/normalize"
)

// PlaceholderName es el nombre asignado a filas sin etiqueta: la fila se
// conserva igualmente, marcada con un aviso de alta severidad en las notas.
const PlaceholderName = "Senza nome"

// ReconciledRow es el resultado de reconciliar una fila: siempre un vino
// completo más los avisos acumulados. Filas limpias y degradadas tienen la
// misma forma; solo difieren las notas.
type ReconciledRow struct {
	Wine     *entity.Wine
	Warnings []string
}

// Degraded indica si la fila acumuló algún aviso.
func (r ReconciledRow) Degraded() bool { return len(r.Warnings) > 0 }

// ReconcileBatch aplica mapeo y normalización a cada fila del lote. Invariante
// central del motor: len(resultado) == len(rows) siempre; ninguna fila se
// descarta por malformada que esté.
func ReconcileBatch(rows []map[string]string, m mapping.FieldMapping) []ReconciledRow {
	out := make([]ReconciledRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ReconcileRow(row, m))
	}
	return out
}

// ReconcileRow transforma una fila cruda en un vino canónico. Transformación
// pura: la persistencia la hace el caller sobre el lote completo, de modo que
// un lote interrumpido puede repetirse sin efectos duplicados.
func ReconcileRow(row map[string]string, m mapping.FieldMapping) ReconciledRow {
	var warnings []string
	collect := func(warn string) {
		if warn != "" {
			warnings = append(warnings, warn)
		}
	}
	value := func(f mapping.CanonicalField) string {
		col := m.Column(f)
		if col == "" {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	wine := &entity.Wine{
		Name:           value(mapping.FieldName),
		Producer:       value(mapping.FieldProducer),
		GrapeVariety:   value(mapping.FieldGrapeVariety),
		Region:         value(mapping.FieldRegion),
		Country:        value(mapping.FieldCountry),
		Classification: value(mapping.FieldClassification),
		Description:    "",
		Notes:          value(mapping.FieldNotes),
	}

	if wine.Name == "" {
		wine.Name = PlaceholderName
		collect("riga senza etichetta: impossibile identificare il vino")
	}

	vintage, warn := normalize.Vintage(value(mapping.FieldVintage))
	collect(warn)
	wine.Vintage = vintage

	qty, warn := normalize.Quantity(value(mapping.FieldQuantity))
	collect(warn)
	wine.Quantity = qty

	minQty, warn := normalize.IntInRange("scorta minima", value(mapping.FieldMinQuantity), 0, normalize.QuantityMax, 0)
	collect(warn)
	if minQty == 0 {
		// Scorta minima: 25% de la cantidad, mínimo 1.
		minQty = max(1, qty/4)
	}
	wine.MinQuantity = minQty

	price, warn := normalize.Price("prezzo in carta", value(mapping.FieldPrice))
	collect(warn)
	wine.SellingPrice = price

	cost, warn := normalize.Price("costo", value(mapping.FieldCostPrice))
	collect(warn)
	wine.CostPrice = cost

	alcohol, warn := normalize.Percent("alcol", value(mapping.FieldAlcoholContent))
	collect(warn)
	wine.AlcoholContent = alcohol

	wine.WineType = entity.DetectWineType(wine.Name)
	wine.AppendImportWarnings(warnings)

	return ReconciledRow{Wine: wine, Warnings: warnings}
}

// SummarizeWarnings compacta los avisos del lote para el resultado de la
// ingestión ("riga 3: quantità non valida ...").
func SummarizeWarnings(rows []ReconciledRow) []string {
	var out []string
	for i, r := range rows {
		for _, w := range r.Warnings {
			out = append(out, fmt.Sprintf("riga %d: %s", i+1, w))
		}
	}
	return out
}
