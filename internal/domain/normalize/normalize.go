// Package normalize contiene las funciones puras de coerción de tipos usadas
// por la reconciliación de filas. Ninguna función falla: cada una devuelve el
// valor normalizado más un aviso ("" si el valor era limpio), de modo que el
// reconciliador siempre puede producir un registro.
//
// Los avisos son texto visible para el usuario final (italiano), se anexan a
// las notas del vino y nunca abortan el lote.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Rangos y defaults canónicos.
const (
	VintageMin      = 1900
	VintageMax      = 2099
	QuantityDefault = 1
	QuantityMax     = 100000
)

var (
	intRe   = regexp.MustCompile(`-?\d+`)
	moneyRe = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)
)

// IntInRange extrae el primer entero embebido en raw (soporta ruido tipo
// "anno 1998 ca.") y lo valida contra [min, max]. No numérico u out-of-range
// devuelven def más el aviso correspondiente.
func IntInRange(field, raw string, min, max, def int) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, ""
	}
	m := intRe.FindString(raw)
	if m == "" {
		return def, fmt.Sprintf("%s non valido: %q", field, raw)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return def, fmt.Sprintf("%s non valido: %q", field, raw)
	}
	if n < min || n > max {
		return def, fmt.Sprintf("%s fuori intervallo: %q", field, raw)
	}
	return n, ""
}

// Vintage normaliza una annata a [1900, 2099]; devuelve nil si falta o es inválida.
func Vintage(raw string) (*int, string) {
	if strings.TrimSpace(raw) == "" {
		return nil, ""
	}
	n, warn := IntInRange("annata", raw, VintageMin, VintageMax, 0)
	if warn != "" {
		return nil, warn
	}
	return &n, ""
}

// Quantity normaliza una cantidad: entero no negativo, default 1 si no es
// parseable, techo en QuantityMax.
func Quantity(raw string) (int, string) {
	return IntInRange("quantità", raw, 0, QuantityMax, QuantityDefault)
}

// Price parsea un importe desde texto con símbolos de moneda, separadores de
// miles y coma decimal ("€ 1.250,50" -> 1250.50). No parseable o negativo ->
// null más aviso.
func Price(field, raw string) (decimal.NullDecimal, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.NullDecimal{}, ""
	}
	cleaned := stripCurrency(trimmed)
	m := moneyRe.FindString(cleaned)
	if m == "" {
		return decimal.NullDecimal{}, fmt.Sprintf("%s non valido: %q", field, raw)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "."))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Sprintf("%s non valido: %q", field, raw)
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, fmt.Sprintf("%s negativo: %q", field, raw)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, ""
}

// Percent normaliza un porcentaje: quita el "%" final, parsea float y exige
// [0,100]. Fuera de rango o no parseable -> nil más aviso. Un valor ya
// canónico ("14.5") vuelve idéntico.
func Percent(field, raw string) (*float64, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ""
	}
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s non valido: %q", field, raw)
	}
	if f < 0 || f > 100 {
		return nil, fmt.Sprintf("%s fuori intervallo: %q", field, raw)
	}
	return &f, ""
}

// stripCurrency elimina símbolos de moneda, espacios y separadores de miles,
// preservando el último separador decimal ("." o ",").
func stripCurrency(s string) string {
	s = strings.NewReplacer("€", "", "$", "", "£", "", "eur", "", "euro", "", " ", "").Replace(strings.ToLower(s))
	// "1.250,50": los puntos son miles, la coma es decimal
	if lastComma := strings.LastIndex(s, ","); lastComma != -1 && strings.Contains(s[:lastComma], ".") {
		s = strings.ReplaceAll(s[:lastComma], ".", "") + s[lastComma:]
	}
	// "1,250.50": las comas son miles
	if lastDot := strings.LastIndex(s, "."); lastDot != -1 && strings.Contains(s[:lastDot], ",") {
		s = strings.ReplaceAll(s[:lastDot], ",", "") + s[lastDot:]
	}
	return s
}
