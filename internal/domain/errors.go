package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Taxonomía del motor transaccional:
//   - Validación (ErrValidationFailed, ErrInvalidLine, ErrIllegalTransition): el caller corrige la entrada; nunca se reintenta automáticamente.
//   - Transitorios (ErrAllocationUnavailable, ErrStorageUnavailable): seguro reintentar cuando la tx en vuelo haya concluido.
//   - ErrConflict: el aislamiento del store detectó modificación concurrente; reintentar la operación completa desde cero.
//   - ErrInvariantViolation: chequeo defensivo interno falló; fatal para la operación, se loguea, nunca se corrige en silencio.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	ErrValidationFailed      = errors.New("validación fallida")
	ErrInvalidLine           = errors.New("línea de documento inválida")
	ErrIllegalTransition     = errors.New("transición de estado ilegal")
	ErrAllocationUnavailable = errors.New("asignador de consecutivos no disponible")
	ErrStorageUnavailable    = errors.New("almacenamiento no disponible")
	ErrConflict              = errors.New("conflicto de concurrencia detectado")
	ErrInvariantViolation    = errors.New("violación de invariante del ledger")
)
