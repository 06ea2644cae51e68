package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// La venta es el agregado (cabecera + líneas): Create y Update escriben ambas
// tablas dentro de una transacción propia para que nunca se observe una
// cabecera sin sus líneas.
type SaleRepo struct {
	pool *pgxpool.Pool
}

// NewSaleRepository construye el adaptador con el pool.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

const saleColumns = `id, customer_name, cashier_id, sale_date, discount, total_amount, final_amount, status, created_at, updated_at`

// Create persiste una venta nueva con sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	return r.inTx(func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), `
			INSERT INTO sales (`+saleColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			sale.ID, sale.CustomerName, sale.CashierID, sale.Date, sale.Discount,
			sale.TotalAmount, sale.FinalAmount, sale.Status, sale.CreatedAt, sale.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert sale: %w", err)
		}
		return insertItems(tx, sale)
	})
}

// Update reescribe cabecera y líneas de la venta.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	return r.inTx(func(tx pgx.Tx) error {
		cmd, err := tx.Exec(context.Background(), `
			UPDATE sales
			SET customer_name = $2, discount = $3, total_amount = $4, final_amount = $5,
			    status = $6, updated_at = now()
			WHERE id = $1`,
			sale.ID, sale.CustomerName, sale.Discount, sale.TotalAmount, sale.FinalAmount, sale.Status,
		)
		if err != nil {
			return fmt.Errorf("update sale: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.Exec(context.Background(), `DELETE FROM sale_items WHERE sale_id = $1`, sale.ID); err != nil {
			return fmt.Errorf("delete sale items: %w", err)
		}
		return insertItems(tx, sale)
	})
}

// GetByID obtiene una venta con sus líneas (nil si no existe).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	sale, err := scanSale(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsFor([]string{id})
	if err != nil {
		return nil, err
	}
	sale.Items = items[id]
	if sale.Items == nil {
		sale.Items = []entity.SaleItem{}
	}
	return sale, nil
}

// List devuelve todas las ventas con sus líneas, más recientes primero.
func (r *SaleRepo) List() ([]*entity.Sale, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+saleColumns+` FROM sales ORDER BY sale_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var result []*entity.Sale
	var ids []string
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		result = append(result, sale)
		ids = append(ids, sale.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return result, nil
	}
	items, err := r.itemsFor(ids)
	if err != nil {
		return nil, err
	}
	for _, sale := range result {
		sale.Items = items[sale.ID]
		if sale.Items == nil {
			sale.Items = []entity.SaleItem{}
		}
	}
	return result, nil
}

func (r *SaleRepo) inTx(fn func(tx pgx.Tx) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertItems(tx pgx.Tx, sale *entity.Sale) error {
	for i, item := range sale.Items {
		_, err := tx.Exec(context.Background(), `
			INSERT INTO sale_items (sale_id, position, medicine_id, medicine_name, unit_price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID, i, item.MedicineID, item.MedicineName, item.UnitPrice, item.Quantity, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// itemsFor carga las líneas de varias ventas en orden de posición.
func (r *SaleRepo) itemsFor(saleIDs []string) (map[string][]entity.SaleItem, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT sale_id, medicine_id, medicine_name, unit_price, quantity, subtotal
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, position`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]entity.SaleItem)
	for rows.Next() {
		var saleID string
		var item entity.SaleItem
		if err := rows.Scan(&saleID, &item.MedicineID, &item.MedicineName, &item.UnitPrice, &item.Quantity, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		result[saleID] = append(result[saleID], item)
	}
	return result, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.CustomerName, &s.CashierID, &s.Date, &s.Discount,
		&s.TotalAmount, &s.FinalAmount, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
