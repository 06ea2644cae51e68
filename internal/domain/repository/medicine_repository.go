package repository

import "github.com/jhoicas/farmacia-pos/internal/domain/entity"

// MedicineRepository es el puerto de persistencia para medicamentos (el
// colaborador de persistencia del núcleo). Create y Update son explícitos:
// el caller decide la operación, la identidad la asigna la fábrica.
//
// ReduceStock es el paso atómico del Stock Ledger: "decrementa si stock >= qty"
// expresado contra la cantidad persistida. Dos llamadas solapadas cuya suma
// exceda el stock deben resultar en exactamente un éxito. Las implementaciones
// devuelven domain.ErrInsufficientStock sin modificar el stock cuando la
// condición no se cumple.
type MedicineRepository interface {
	Create(medicine *entity.Medicine) error
	Update(medicine *entity.Medicine) error
	GetByID(id string) (*entity.Medicine, error)
	List() ([]*entity.Medicine, error)

	// ReduceStock decrementa atómicamente y devuelve el stock resultante.
	ReduceStock(id string, quantity int) (int, error)
	// AddStock incrementa y devuelve el stock resultante.
	AddStock(id string, quantity int) (int, error)
	// SetStock fija el stock en un valor absoluto (override administrativo).
	SetStock(id string, stock int) error
}
