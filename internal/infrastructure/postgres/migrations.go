package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema es idempotente: CREATE TABLE IF NOT EXISTS, aplicado al arrancar.
// El CHECK (stock >= 0) es la última línea de defensa del invariante del
// ledger a nivel de base de datos.
const schema = `
CREATE TABLE IF NOT EXISTS medicines (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
	stock       INTEGER NOT NULL CHECK (stock >= 0),
	threshold   INTEGER NOT NULL CHECK (threshold >= 0),
	expiry_date DATE NOT NULL,
	supplier_id TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sales (
	id            TEXT PRIMARY KEY,
	customer_name TEXT NOT NULL DEFAULT '',
	cashier_id    TEXT NOT NULL,
	sale_date     TIMESTAMPTZ NOT NULL,
	discount      NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (discount >= 0),
	total_amount  NUMERIC(12,2) NOT NULL DEFAULT 0,
	final_amount  NUMERIC(12,2) NOT NULL DEFAULT 0,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sale_items (
	sale_id       TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
	position      INTEGER NOT NULL,
	medicine_id   TEXT NOT NULL,
	medicine_name TEXT NOT NULL,
	unit_price    NUMERIC(12,2) NOT NULL,
	quantity      INTEGER NOT NULL CHECK (quantity > 0),
	subtotal      NUMERIC(12,2) NOT NULL,
	PRIMARY KEY (sale_id, position)
);

CREATE TABLE IF NOT EXISTS low_stock_alerts (
	id            TEXT PRIMARY KEY,
	medicine_id   TEXT NOT NULL,
	medicine_name TEXT NOT NULL,
	current_stock INTEGER NOT NULL,
	threshold     INTEGER NOT NULL,
	priority      TEXT NOT NULL,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	dismissed_at  TIMESTAMPTZ,
	dismissed_by  TEXT NOT NULL DEFAULT '',
	resolved_at   TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_sales_status ON sales(status);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date);
CREATE INDEX IF NOT EXISTS idx_alerts_medicine_open
	ON low_stock_alerts(medicine_id) WHERE status <> 'RESOLVED';
`

// Migrate aplica el esquema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
