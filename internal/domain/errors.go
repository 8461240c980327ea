package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrDataSource    = errors.New("fuente de datos ERP no disponible")
	ErrMalformedData = errors.New("dato numérico mal formado")
)
