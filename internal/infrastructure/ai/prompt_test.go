package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_ConBloqueMarkdown(t *testing.T) {
	raw := "Ecco il mapping:\n```json\n{\"name\": \"Etichetta\"}\n```\n"
	assert.Equal(t, `{"name": "Etichetta"}`, extractJSON(raw))
}

func TestExtractJSON_JSONDirecto(t *testing.T) {
	raw := `{"name": "Etichetta", "quantity": "Qta"}`
	assert.Equal(t, raw, extractJSON(raw))
}

func TestExtractJSON_ConTextoAlrededor(t *testing.T) {
	raw := `Il mapping suggerito è {"name": "Vino"} spero sia utile`
	assert.Equal(t, `{"name": "Vino"}`, extractJSON(raw))
}

func TestExtractJSON_SinJSON(t *testing.T) {
	assert.Empty(t, extractJSON("non ho trovato nessuna colonna"))
}

func TestParseMappingJSON_DescartaNoStrings(t *testing.T) {
	raw := `{"name": "Etichetta", "vintage": 2020, "quantity": "", "producer": "Produttore"}`

	got, err := parseMappingJSON(raw)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"name":     "Etichetta",
		"producer": "Produttore",
	}, got)
}

func TestParseMappingJSON_RespuestaInvalida(t *testing.T) {
	_, err := parseMappingJSON("mi dispiace, non posso aiutarti")
	assert.Error(t, err)
}

func TestBuildMappingPrompt_IncluyeCabecerasYMuestras(t *testing.T) {
	got := buildMappingPrompt(
		[]string{"Etichetta", "Annata"},
		[]map[string]string{{"Etichetta": "Barolo", "Annata": "2018"}},
	)

	assert.Contains(t, got, "Etichetta | Annata")
	assert.Contains(t, got, "Riga 1:")
	assert.Contains(t, got, "Barolo")
}
