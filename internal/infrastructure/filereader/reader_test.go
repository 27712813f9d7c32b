package filereader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cantina-engine/internal/domain"
)

func TestCSVReader_ConComas(t *testing.T) {
	data := []byte("Etichetta,Produttore,Quantità in magazzino\nBarolo,Conterno,12\nFiano,Feudi,6\n")

	headers, rows, err := NewCSVReader().Read(data)

	require.NoError(t, err)
	assert.Equal(t, []string{"Etichetta", "Produttore", "Quantità in magazzino"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "Barolo", rows[0]["Etichetta"])
	assert.Equal(t, "6", rows[1]["Quantità in magazzino"])
}

func TestCSVReader_ConPuntoYComa(t *testing.T) {
	data := []byte("Etichetta;Annata;Prezzo in carta\nChianti;2019;25,50\n")

	headers, rows, err := NewCSVReader().Read(data)

	require.NoError(t, err)
	assert.Equal(t, []string{"Etichetta", "Annata", "Prezzo in carta"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "25,50", rows[0]["Prezzo in carta"])
}

func TestCSVReader_ConBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Etichetta\nBarolo\n")...)

	headers, rows, err := NewCSVReader().Read(data)

	require.NoError(t, err)
	assert.Equal(t, []string{"Etichetta"}, headers)
	require.Len(t, rows, 1)
}

func TestCSVReader_FilasEnBlancoIgnoradas(t *testing.T) {
	data := []byte("Etichetta,Quantità\nBarolo,3\n,\n\nFiano,2\n")

	_, rows, err := NewCSVReader().Read(data)

	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCSVReader_FilaCorta(t *testing.T) {
	data := []byte("Etichetta,Produttore,Annata\nBarolo\n")

	headers, rows, err := NewCSVReader().Read(data)

	require.NoError(t, err)
	require.Len(t, headers, 3)
	require.Len(t, rows, 1)
	assert.Equal(t, "Barolo", rows[0]["Etichetta"])
	assert.Equal(t, "", rows[0]["Annata"])
}

func TestCSVReader_Supports(t *testing.T) {
	r := NewCSVReader()
	assert.True(t, r.Supports("inventario.csv"))
	assert.True(t, r.Supports("INVENTARIO.CSV"))
	assert.False(t, r.Supports("inventario.xlsx"))
	assert.False(t, r.Supports("foto.txt"))
}

func TestOCRReader_TablaConTabuladores(t *testing.T) {
	data := []byte("Lista vini cantina\nEtichetta\tProduttore\tQuantità\nBarolo\tConterno\t12\nEtna Rosso\tBenanti\t4\n")

	headers, rows, err := NewOCRReader().Read(data)

	require.NoError(t, err)
	assert.Equal(t, []string{"Etichetta", "Produttore", "Quantità"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "Etna Rosso", rows[1]["Etichetta"])
	assert.Equal(t, "4", rows[1]["Quantità"])
}

func TestOCRReader_EspaciosMultiples(t *testing.T) {
	data := []byte("Etichetta   Produttore   Quantità\nBarolo   Conterno   12\n")

	headers, rows, err := NewOCRReader().Read(data)

	require.NoError(t, err)
	require.Len(t, headers, 3)
	require.Len(t, rows, 1)
	assert.Equal(t, "Conterno", rows[0]["Produttore"])
}

func TestOCRReader_SinCabecera(t *testing.T) {
	_, _, err := NewOCRReader().Read([]byte("solo testo senza struttura\naltra riga\n"))

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestExcelReader_Supports(t *testing.T) {
	r := NewExcelReader()
	assert.True(t, r.Supports("inventario.xlsx"))
	assert.True(t, r.Supports("inventario.XLSM"))
	assert.False(t, r.Supports("inventario.csv"))
}

func TestExcelReader_LeerLibro(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Etichetta", "Annata", "Quantità"},
		{"Barolo", 2018, 12},
		{"Fiano", 2021, 6},
	})

	headers, rows, err := NewExcelReader().Read(data)

	require.NoError(t, err)
	assert.Equal(t, []string{"Etichetta", "Annata", "Quantità"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "2018", rows[0]["Annata"])
	assert.Equal(t, "6", rows[1]["Quantità"])
}
