package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL
// (usable con pool o tx). Las mutaciones de stock son updates condicionales:
// el chequeo y el decremento son una sola sentencia, serializada por fila.
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

const medicineColumns = `id, name, category, price, stock, threshold, expiry_date, supplier_id, description, created_at, updated_at`

// Create persiste un medicamento nuevo.
func (r *MedicineRepo) Create(medicine *entity.Medicine) error {
	query := `
		INSERT INTO medicines (` + medicineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		medicine.ID, medicine.Name, medicine.Category, medicine.Price, medicine.Stock,
		medicine.Threshold, medicine.ExpiryDate, medicine.SupplierID, medicine.Description,
		medicine.CreatedAt, medicine.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// Update actualiza los datos del medicamento. No toca el stock: eso entra solo
// por ReduceStock/AddStock/SetStock.
func (r *MedicineRepo) Update(medicine *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $2, category = $3, price = $4, threshold = $5, expiry_date = $6,
		    supplier_id = $7, description = $8, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		medicine.ID, medicine.Name, medicine.Category, medicine.Price, medicine.Threshold,
		medicine.ExpiryDate, medicine.SupplierID, medicine.Description,
	)
	if err != nil {
		return fmt.Errorf("update medicine: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un medicamento por ID (nil si no existe).
func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`
	medicine, err := scanMedicine(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return medicine, nil
}

// List devuelve todo el catálogo ordenado por nombre.
func (r *MedicineRepo) List() ([]*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()

	var result []*entity.Medicine
	for rows.Next() {
		medicine, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		result = append(result, medicine)
	}
	return result, rows.Err()
}

// ReduceStock decrementa si y solo si stock >= quantity, en una sola sentencia
// ("decrementa si alcanza"). Cero filas afectadas se reporta como
// ErrInsufficientStock (o ErrNotFound si el medicamento no existe).
func (r *MedicineRepo) ReduceStock(id string, quantity int) (int, error) {
	var newStock int
	err := r.q.QueryRow(context.Background(), `
		UPDATE medicines
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
		RETURNING stock`, id, quantity).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			exists, exErr := r.exists(id)
			if exErr != nil {
				return 0, exErr
			}
			if !exists {
				return 0, domain.ErrNotFound
			}
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("reduce stock: %w", err)
	}
	return newStock, nil
}

// AddStock incrementa el stock y devuelve el valor resultante.
func (r *MedicineRepo) AddStock(id string, quantity int) (int, error) {
	var newStock int
	err := r.q.QueryRow(context.Background(), `
		UPDATE medicines
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING stock`, id, quantity).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("add stock: %w", err)
	}
	return newStock, nil
}

// SetStock fija el stock en un valor absoluto (override administrativo).
func (r *MedicineRepo) SetStock(id string, stock int) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE medicines SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MedicineRepo) exists(id string) (bool, error) {
	var one int
	err := r.q.QueryRow(context.Background(), `SELECT 1 FROM medicines WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists medicine: %w", err)
	}
	return true, nil
}

func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(
		&m.ID, &m.Name, &m.Category, &m.Price, &m.Stock, &m.Threshold,
		&m.ExpiryDate, &m.SupplierID, &m.Description, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
