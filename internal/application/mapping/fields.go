package mapping

// CanonicalField es uno de los campos fijos del inventario a los que se mapean
// las columnas de un archivo subido.
type CanonicalField string

// Campos canónicos del inventario.
const (
	FieldName           CanonicalField = "name"
	FieldProducer       CanonicalField = "producer"
	FieldVintage        CanonicalField = "vintage"
	FieldQuantity       CanonicalField = "quantity"
	FieldPrice          CanonicalField = "price"
	FieldCostPrice      CanonicalField = "cost_price"
	FieldAlcoholContent CanonicalField = "alcohol_content"
	FieldGrapeVariety   CanonicalField = "grape_variety"
	FieldRegion         CanonicalField = "region"
	FieldCountry        CanonicalField = "country"
	FieldClassification CanonicalField = "classification"
	FieldMinQuantity    CanonicalField = "min_quantity"
	FieldNotes          CanonicalField = "notes"
)

// AllFields lista los campos canónicos en orden estable.
var AllFields = []CanonicalField{
	FieldName, FieldProducer, FieldVintage, FieldQuantity,
	FieldPrice, FieldCostPrice, FieldAlcoholContent, FieldGrapeVariety,
	FieldRegion, FieldCountry, FieldClassification, FieldMinQuantity, FieldNotes,
}

// FieldMapping asocia cada campo canónico con el nombre de la columna de origen.
// Cadena vacía = sin mapear: el reconciliador usará el default del campo.
type FieldMapping map[CanonicalField]string

// Column devuelve la columna mapeada para un campo ("" si no está mapeado).
func (m FieldMapping) Column(f CanonicalField) string {
	return m[f]
}

// Validate elimina mapeos que referencian columnas ausentes de la cabecera:
// el campo cae a "sin mapear" en lugar de hacer fallar el lote. Devuelve
// cuántos mapeos sobrevivieron.
func (m FieldMapping) Validate(headers []string) int {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}
	valid := 0
	for field, col := range m {
		if col == "" {
			continue
		}
		if _, ok := known[col]; !ok {
			m[field] = ""
			continue
		}
		valid++
	}
	return valid
}
