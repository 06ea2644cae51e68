package sales

import "context"

// StockLedger es la vista que el módulo de ventas tiene del ledger de
// inventario. CheckAvailable no tiene efectos; Reduce y Add son los primitivos
// atómicos por medicamento que el protocolo de completar venta combina con
// compensaciones manuales.
//
// Implementado por inventory.StockLedger.
type StockLedger interface {
	CheckAvailable(ctx context.Context, medicineID string, quantity int) (bool, error)
	Reduce(ctx context.Context, medicineID string, quantity int) error
	Add(ctx context.Context, medicineID string, quantity int) error
}
