package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrUnavailable falla transitoria del almacenamiento (timeout, conexión caída).
	// Las lecturas se pueden reintentar; la creación de producto con stock inicial no.
	ErrUnavailable = errors.New("almacenamiento no disponible")
)
