// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, protegidos por un mutex compartido. El chequeo-y-decremento de
// ReduceStock ocurre bajo el lock, lo que cumple el contrato de serialización
// del ledger. Se usa en tests y como almacén de desarrollo sin PostgreSQL.
package memory

import (
	"sync"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// Store contiene el estado compartido de los adaptadores en memoria.
type Store struct {
	mu        sync.RWMutex
	medicines map[string]*entity.Medicine
	sales     map[string]*entity.Sale
	alerts    map[string]*entity.LowStockAlert
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		medicines: make(map[string]*entity.Medicine),
		sales:     make(map[string]*entity.Sale),
		alerts:    make(map[string]*entity.LowStockAlert),
	}
}

// Las copias evitan que los callers muten estado compartido por referencia.

func cloneMedicine(m *entity.Medicine) *entity.Medicine {
	c := *m
	return &c
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Items = make([]entity.SaleItem, len(s.Items))
	copy(c.Items, s.Items)
	return &c
}

func cloneAlert(a *entity.LowStockAlert) *entity.LowStockAlert {
	c := *a
	if a.DismissedAt != nil {
		t := *a.DismissedAt
		c.DismissedAt = &t
	}
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}
