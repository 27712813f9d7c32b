package mapping

import "strings"

// fieldAliases asocia cada campo canónico con los nombres de columna conocidos,
// en italiano (cabeceras históricas de inventarios de enotecas) e inglés.
// El orden de la lista es el orden de prioridad del match.
var fieldAliases = map[CanonicalField][]string{
	FieldName:           {"etichetta", "nome", "name", "vino", "wine", "prodotto", "product"},
	FieldProducer:       {"produttore", "producer", "marca", "brand", "casa", "cantina"},
	FieldVintage:        {"annata", "vintage", "anno", "year"},
	FieldQuantity:       {"quantità in magazzino", "quantità", "quantity", "qty", "stock", "magazzino", "bottiglie", "giacenza"},
	FieldPrice:          {"prezzo in carta", "prezzo", "price", "vendita", "selling"},
	FieldCostPrice:      {"costo", "cost", "acquisto", "purchase"},
	FieldAlcoholContent: {"alcol", "alcool", "alcohol", "gradazione", "abv", "vol"},
	FieldGrapeVariety:   {"uvaggio", "vitigno", "grape", "variety", "uva"},
	FieldRegion:         {"regione", "region", "comune", "zona", "area"},
	FieldCountry:        {"nazione", "country", "paese"},
	FieldClassification: {"denominazione", "classification", "docg", "doc", "igt"},
	FieldMinQuantity:    {"scorta minima", "minimo", "min_stock", "min"},
	FieldNotes:          {"note", "notes", "osservazioni", "commenti"},
}

// HeuristicMapping construye un FieldMapping determinista a partir de la
// cabecera: match case-insensitive por substring en ambas direcciones contra
// la tabla de alias. Total: siempre devuelve un mapeo, degradando a "sin
// mapear" los campos sin columna plausible en lugar de adivinar.
//
// Cada columna se asigna a lo sumo a un campo (el primero que la reclama en
// orden de AllFields), para que "Prezzo in carta" no acabe también en costo.
func HeuristicMapping(headers []string) FieldMapping {
	m := make(FieldMapping, len(AllFields))
	claimed := make(map[string]struct{}, len(headers))

	for _, field := range AllFields {
		m[field] = ""
		for _, alias := range fieldAliases[field] {
			col := matchHeader(headers, claimed, alias)
			if col != "" {
				m[field] = col
				claimed[col] = struct{}{}
				break
			}
		}
	}
	return m
}

// matchHeader busca la primera columna libre que contenga el alias o esté
// contenida en él (case-insensitive).
func matchHeader(headers []string, claimed map[string]struct{}, alias string) string {
	for _, h := range headers {
		if _, taken := claimed[h]; taken {
			continue
		}
		lower := strings.ToLower(strings.TrimSpace(h))
		if lower == "" {
			continue
		}
		if strings.Contains(lower, alias) || strings.Contains(alias, lower) {
			return h
		}
	}
	return ""
}
