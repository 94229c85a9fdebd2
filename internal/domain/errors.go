package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado con errors.Is.
var (
	ErrValidation   = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUpstream     = errors.New("fallo del proveedor externo")
)
