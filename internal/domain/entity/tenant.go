package entity

import (
	"fmt"
	"strings"
	"time"
)

// Tenant representa un negocio independiente (restaurante, enoteca) identificado
// por su Telegram ID. El par (TelegramID, BusinessName) define el namespace de
// almacenamiento; el componente numérico garantiza por sí solo la unicidad aunque
// dos negocios elijan el mismo nombre.
type Tenant struct {
	ID           int64
	TelegramID   int64
	Username     string
	FirstName    string
	LastName     string
	BusinessName string
	BusinessType string // enoteca, ristorante, bar...
	Location     string
	Onboarded    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Namespace devuelve el token de namespace "{telegramID}/{businessName}" usado
// como prefijo de las cuatro tablas del tenant. Se eliminan comillas dobles para
// que el token sea siempre un identificador SQL citable.
func (t Tenant) Namespace() string {
	name := strings.ReplaceAll(t.BusinessName, `"`, "")
	name = strings.TrimSpace(name)
	return fmt.Sprintf("%d/%s", t.TelegramID, name)
}

// maxNamespaceBytes acota el namespace del tenant. El nombre completo de tabla
// es namespace + sufijo, y el sufijo más largo ("Consumi e rifornimenti") ocupa
// 23 bytes con el espacio separador. PostgreSQL trunca los identificadores a 63
// bytes sin avisar; con un namespace más largo las cuatro tablas del tenant
// compartirían los mismos 63 bytes iniciales y colapsarían en una sola.
const maxNamespaceBytes = 40

// NamespaceFits indica si el namespace cabe dentro del límite de identificadores.
func (t Tenant) NamespaceFits() bool {
	return len(t.Namespace()) <= maxNamespaceBytes
}

// Provisionable indica si el tenant tiene los datos mínimos para crear sus tablas.
func (t Tenant) Provisionable() bool {
	return t.TelegramID != 0 && strings.TrimSpace(t.BusinessName) != ""
}
