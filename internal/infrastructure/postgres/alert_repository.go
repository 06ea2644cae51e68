package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	domainalert "github.com/jhoicas/farmacia-pos/internal/domain/alert"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL
// (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, medicine_id, medicine_name, current_stock, threshold, priority, status, created_at, dismissed_at, dismissed_by, resolved_at`

// Create persiste una alerta nueva.
func (r *AlertRepo) Create(alert *entity.LowStockAlert) error {
	query := `
		INSERT INTO low_stock_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.MedicineID, alert.MedicineName, alert.CurrentStock, alert.Threshold,
		string(alert.Priority), alert.Status, alert.CreatedAt, alert.DismissedAt, alert.DismissedBy, alert.ResolvedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// Update actualiza una alerta existente.
func (r *AlertRepo) Update(alert *entity.LowStockAlert) error {
	query := `
		UPDATE low_stock_alerts
		SET current_stock = $2, threshold = $3, priority = $4, status = $5,
		    dismissed_at = $6, dismissed_by = $7, resolved_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.CurrentStock, alert.Threshold, string(alert.Priority), alert.Status,
		alert.DismissedAt, alert.DismissedBy, alert.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una alerta por ID (nil si no existe).
func (r *AlertRepo) GetByID(id string) (*entity.LowStockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM low_stock_alerts WHERE id = $1`
	alert, err := scanAlert(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return alert, nil
}

// GetOpenByMedicine obtiene la alerta no resuelta del medicamento (nil si no hay).
func (r *AlertRepo) GetOpenByMedicine(medicineID string) (*entity.LowStockAlert, error) {
	query := `
		SELECT ` + alertColumns + ` FROM low_stock_alerts
		WHERE medicine_id = $1 AND status <> $2
		ORDER BY created_at DESC LIMIT 1`
	alert, err := scanAlert(r.q.QueryRow(context.Background(), query, medicineID, entity.AlertStatusResolved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open alert: %w", err)
	}
	return alert, nil
}

// ListActive lista alertas ACTIVE, más críticas primero.
func (r *AlertRepo) ListActive() ([]*entity.LowStockAlert, error) {
	query := `
		SELECT ` + alertColumns + ` FROM low_stock_alerts
		WHERE status = $1
		ORDER BY current_stock ASC, created_at ASC`
	return r.list(query, entity.AlertStatusActive)
}

// List lista todas las alertas.
func (r *AlertRepo) List() ([]*entity.LowStockAlert, error) {
	return r.list(`SELECT ` + alertColumns + ` FROM low_stock_alerts ORDER BY created_at DESC`)
}

func (r *AlertRepo) list(query string, args ...any) ([]*entity.LowStockAlert, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var result []*entity.LowStockAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		result = append(result, alert)
	}
	return result, rows.Err()
}

func scanAlert(row pgx.Row) (*entity.LowStockAlert, error) {
	var a entity.LowStockAlert
	var priority string
	var dismissedAt, resolvedAt *time.Time
	err := row.Scan(
		&a.ID, &a.MedicineID, &a.MedicineName, &a.CurrentStock, &a.Threshold,
		&priority, &a.Status, &a.CreatedAt, &dismissedAt, &a.DismissedBy, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Priority = domainalert.Priority(priority)
	a.DismissedAt = dismissedAt
	a.ResolvedAt = resolvedAt
	return &a, nil
}
