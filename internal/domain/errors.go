package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todos son condiciones recuperables por el caller; ninguno tumba el proceso.
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInvalidTerms          = errors.New("términos del crédito inválidos")
	ErrInvalidAmount         = errors.New("monto inválido")
	ErrDuplicateActiveCredit = errors.New("el cliente ya tiene un crédito activo")
	ErrRiskGate              = errors.New("cliente en riesgo alto: requiere autorización")
	ErrOverrideRequired      = errors.New("la operación requiere autorización de administrador")
	ErrPositionOutOfRange    = errors.New("posición de ruta fuera de rango")
	ErrNoGeoData             = errors.New("ningún cliente tiene GPS registrado")
	ErrConcurrentUpdate      = errors.New("conflicto de actualización concurrente: reintentar")
	ErrCajaCerrada           = errors.New("caja cerrada por corte nocturno")
)
