package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores propios del motor de inventario.
	ErrTenantContext       = errors.New("contexto de taller no establecido")
	ErrInvalidReason       = errors.New("razón de movimiento no reconocida")
	ErrDispositionRequired = errors.New("la línea tiene repuestos asignados: se requiere una disposición")
	ErrInvalidDisposition  = errors.New("disposición no reconocida")
)
