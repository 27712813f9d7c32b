package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cantina-engine/internal/application/mapping"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
)

func italianMapping() mapping.FieldMapping {
	return mapping.FieldMapping{
		mapping.FieldName:           "Etichetta",
		mapping.FieldProducer:       "Produttore",
		mapping.FieldVintage:        "Annata",
		mapping.FieldQuantity:       "Quantità in magazzino",
		mapping.FieldPrice:          "Prezzo in carta",
		mapping.FieldCostPrice:      "Costo",
		mapping.FieldAlcoholContent: "Alcol",
	}
}

func TestReconcileRow_FilaLimpia(t *testing.T) {
	row := map[string]string{
		"Etichetta":             "Barolo Riserva",
		"Produttore":            "Conterno",
		"Annata":                "2018",
		"Quantità in magazzino": "12",
		"Prezzo in carta":       "€85,00",
		"Costo":                 "40",
		"Alcol":                 "14,5%",
	}

	got := ReconcileRow(row, italianMapping())

	require.NotNil(t, got.Wine)
	assert.False(t, got.Degraded())
	assert.Equal(t, "Barolo Riserva", got.Wine.Name)
	assert.Equal(t, "Conterno", got.Wine.Producer)
	require.NotNil(t, got.Wine.Vintage)
	assert.Equal(t, 2018, *got.Wine.Vintage)
	assert.Equal(t, 12, got.Wine.Quantity)
	assert.Equal(t, 3, got.Wine.MinQuantity)
	assert.Equal(t, "85", got.Wine.SellingPrice.Decimal.String())
	require.NotNil(t, got.Wine.AlcoholContent)
	assert.InDelta(t, 14.5, *got.Wine.AlcoholContent, 0.001)
	assert.Equal(t, entity.WineTypeRosso, got.Wine.WineType)
	assert.Empty(t, got.Wine.Notes)
}

func TestReconcileRow_SinNombre(t *testing.T) {
	row := map[string]string{
		"Etichetta":             "   ",
		"Quantità in magazzino": "x",
	}

	got := ReconcileRow(row, italianMapping())

	assert.Equal(t, PlaceholderName, got.Wine.Name)
	assert.Equal(t, 1, got.Wine.Quantity)
	assert.True(t, got.Degraded())
	assert.Len(t, got.Warnings, 2)
	assert.Contains(t, got.Wine.Notes, entity.ImportNotesMarker)
	assert.Contains(t, got.Wine.Notes, "riga senza etichetta")
}

func TestReconcileRow_ScortaMinimaDerivada(t *testing.T) {
	cases := []struct {
		qty  string
		want int
	}{
		{"2", 1},  // max(1, 2/4)
		{"8", 2},  // 8/4
		{"100", 25},
	}
	for _, tc := range cases {
		got := ReconcileRow(map[string]string{
			"Etichetta":             "Chianti",
			"Quantità in magazzino": tc.qty,
		}, italianMapping())
		assert.Equal(t, tc.want, got.Wine.MinQuantity, "qty=%s", tc.qty)
	}
}

func TestReconcileRow_NotasPreexistentesSeConservan(t *testing.T) {
	m := italianMapping()
	m[mapping.FieldNotes] = "Note"
	row := map[string]string{
		"Etichetta": "Fiano",
		"Note":      "preferito dello chef",
		"Annata":    "abc",
	}

	got := ReconcileRow(row, m)

	assert.Contains(t, got.Wine.Notes, "preferito dello chef")
	assert.Contains(t, got.Wine.Notes, entity.ImportNotesMarker)
}

func TestReconcileBatch_NingunaFilaSePierde(t *testing.T) {
	rows := []map[string]string{
		{"Etichetta": "Barolo", "Quantità in magazzino": "6"},
		{},  // completamente vacía
		{"Etichetta": "", "Annata": "no", "Quantità in magazzino": "-9"},
		{"Etichetta": "Prosecco Valdobbiadene"},
	}

	got := ReconcileBatch(rows, italianMapping())

	require.Len(t, got, len(rows))
	for _, r := range got {
		assert.NotEmpty(t, r.Wine.Name)
		assert.GreaterOrEqual(t, r.Wine.Quantity, 0)
	}
	assert.Equal(t, entity.WineTypeSpumante, got[3].Wine.WineType)
}

func TestReconcileBatch_LoteVacio(t *testing.T) {
	got := ReconcileBatch(nil, italianMapping())
	assert.Empty(t, got)
}

func TestSummarizeWarnings_NumeraFilas(t *testing.T) {
	rows := []map[string]string{
		{"Etichetta": "Barolo"},
		{"Etichetta": "", "Annata": "1700"},
	}
	got := SummarizeWarnings(ReconcileBatch(rows, italianMapping()))

	require.Len(t, got, 2)
	assert.Contains(t, got[0], "riga 2:")
	assert.Contains(t, got[1], "riga 2:")
}
