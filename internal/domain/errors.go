package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrEmptySale         = errors.New("la venta no tiene ítems")
	// ErrInventoryInconsistent indica que falló una compensación de stock a mitad
	// de un rollback: el inventario puede haber quedado inconsistente y requiere
	// conciliación manual. Nunca se reporta como un fallo ordinario de venta.
	ErrInventoryInconsistent = errors.New("inventario posiblemente inconsistente: requiere conciliación manual")
)
