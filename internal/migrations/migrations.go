package migrations

import (
	"database/sql"

	"github.com/lopezator/migrator"
)

func Up(db *sql.DB) error {
	m, err := migrator.New(
		migrator.Migrations(
			&migrator.MigrationNoTx{
				Name: "Create orders table",
				Func: createOrdersTable,
			},
		),
	)
	if err != nil {
		return err
	}

	return m.Migrate(db)
}

func createOrdersTable(db *sql.DB) error {
	if _, err := db.Exec("CREATE TYPE order_status AS ENUM ('CREATED', 'PROCESSING', 'COMPLETED', 'FAILED')"); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE orders
(
    id              bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    customer_id     varchar(50)   NOT NULL,
    product_name    varchar(200)  NOT NULL,
    quantity        integer       NOT NULL,
    CHECK (quantity > 0),
    price           numeric(10, 2) NOT NULL,
    CHECK (price > 0),
    status          order_status  NOT NULL DEFAULT 'CREATED',
    idempotency_key varchar(64) UNIQUE,
    failure_reason  varchar(500),
    created_at      timestamptz   NOT NULL DEFAULT now(),
    updated_at      timestamptz   NOT NULL DEFAULT now()
)
	`); err != nil {
		return err
	}

	if _, err := db.Exec("CREATE INDEX idx_orders_customer_id ON orders (customer_id)"); err != nil {
		return err
	}

	_, err := db.Exec("CREATE INDEX idx_orders_status ON orders (status)")

	return err
}
