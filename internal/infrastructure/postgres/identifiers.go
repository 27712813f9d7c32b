package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/cantina-engine/internal/domain/entity"
)

// Sufijos de las tablas dinámicas de cada tenant. El nombre completo es
// `"{telegram_id}/{business_name} <sufijo>"`, siempre entrecomillado: los
// nombres llevan espacios, barras y mayúsculas.
const (
	suffixInventory    = "INVENTARIO"
	suffixBackup       = "BACKUP inventario"
	suffixMovements    = "Consumi e rifornimenti"
	suffixInteractions = "LOG interazione"
)

// quoteIdent entrecomilla un identificador PostgreSQL, escapando comillas
// dobles internas. Única vía admitida para interpolar nombres de tabla en SQL.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func tableName(tenant entity.Tenant, suffix string) string {
	return fmt.Sprintf("%s %s", tenant.Namespace(), suffix)
}

func inventoryTable(tenant entity.Tenant) string {
	return quoteIdent(tableName(tenant, suffixInventory))
}

func backupTable(tenant entity.Tenant) string {
	return quoteIdent(tableName(tenant, suffixBackup))
}

func movementsTable(tenant entity.Tenant) string {
	return quoteIdent(tableName(tenant, suffixMovements))
}

func interactionsTable(tenant entity.Tenant) string {
	return quoteIdent(tableName(tenant, suffixInteractions))
}
