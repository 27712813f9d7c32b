package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrTenantNotFound  = errors.New("tenant no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrNotProvisioned  = errors.New("almacenamiento del tenant no aprovisionado")
	ErrEmptyInput      = errors.New("archivo vacío o sin cabecera")
	ErrUnsupportedFile = errors.New("tipo de archivo no soportado")
	ErrWineNotFound    = errors.New("vino no encontrado en el inventario")
)
