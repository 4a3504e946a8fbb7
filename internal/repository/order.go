package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ivanpodgorny/orderflow/internal/entity"
	inerr "github.com/ivanpodgorny/orderflow/internal/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Order struct {
	db *sql.DB
}

const orderColumns = "id, customer_id, product_name, quantity, price, status, idempotency_key, failure_reason, created_at, updated_at"

func NewOrder(db *sql.DB) *Order {
	return &Order{db: db}
}

// Create сохраняет новый заказ и заполняет присвоенные хранилищем идентификатор,
// статус и отметки времени. Пустой ключ идемпотентности сохраняется как NULL,
// поэтому заказы без ключа друг с другом не конфликтуют. Если ключ уже занят
// другим заказом, возвращает ошибку errors.ErrOrderExists.
func (r *Order) Create(ctx context.Context, o *entity.Order) error {
	err := r.db.QueryRowContext(ctx, `
INSERT INTO orders (customer_id, product_name, quantity, price, idempotency_key)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, status, created_at, updated_at
	`, o.CustomerID, o.ProductName, o.Quantity, o.Price, nullableString(o.IdempotencyKey)).
		Scan(&o.ID, &o.Status, &o.CreatedAt, &o.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return inerr.ErrOrderExists
	}

	return err
}

// FindByIdempotencyKey возвращает заказ по ключу идемпотентности. Если заказа
// с таким ключом нет, возвращает ошибку errors.ErrOrderNotFound.
func (r *Order) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Order, error) {
	return r.findOne(ctx, "SELECT "+orderColumns+" FROM orders WHERE idempotency_key = $1", key)
}

// FindByID возвращает заказ по идентификатору. Если заказа нет, возвращает
// ошибку errors.ErrOrderNotFound.
func (r *Order) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	return r.findOne(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
}

// FindAll возвращает список всех заказов. Данные отсортированы по времени
// добавления от самых старых к самым новым.
func (r *Order) FindAll(ctx context.Context) ([]entity.Order, error) {
	return r.findAll(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY id")
}

// FindAllByCustomerID возвращает список заказов покупателя. Данные отсортированы
// по времени добавления от самых старых к самым новым.
func (r *Order) FindAllByCustomerID(ctx context.Context, customerID string) ([]entity.Order, error) {
	return r.findAll(ctx, "SELECT "+orderColumns+" FROM orders WHERE customer_id = $1 ORDER BY id", customerID)
}

// UpdateStatus переводит заказ в новый статус. Причина сбоя сохраняется только
// при переходе в статус entity.OrderStatusFailed, в остальных случаях поле
// очищается.
func (r *Order) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, reason string) error {
	if status != entity.OrderStatusFailed {
		reason = ""
	}

	res, err := r.db.ExecContext(
		ctx,
		"UPDATE orders SET status = $1, failure_reason = $2, updated_at = now() WHERE id = $3",
		status, nullableString(reason), id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return inerr.ErrOrderNotFound
	}

	return nil
}

// FindUnfinished возвращает список всех заказов, не дошедших до терминального
// статуса (статус равен entity.OrderStatusCreated или entity.OrderStatusProcessing).
func (r *Order) FindUnfinished(ctx context.Context) (orders []entity.Order) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM orders WHERE status IN ('CREATED', 'PROCESSING') ORDER BY id")
	if err != nil {
		return nil
	}

	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		order := entity.Order{}
		err = rows.Scan(&order.ID)
		if err != nil {
			continue
		}

		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil
	}

	return orders
}

func (r *Order) findOne(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	var (
		order  entity.Order
		key    sql.NullString
		reason sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.CustomerID,
		&order.ProductName,
		&order.Quantity,
		&order.Price,
		&order.Status,
		&key,
		&reason,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, inerr.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	order.IdempotencyKey = key.String
	order.FailureReason = reason.String

	return &order, nil
}

func (r *Order) findAll(ctx context.Context, query string, args ...any) (orders []entity.Order, err error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer func(rows *sql.Rows) {
		err = rows.Close()
	}(rows)

	for rows.Next() {
		var (
			order  entity.Order
			key    sql.NullString
			reason sql.NullString
		)
		err = rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.ProductName,
			&order.Quantity,
			&order.Price,
			&order.Status,
			&key,
			&reason,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			continue
		}

		order.IdempotencyKey = key.String
		order.FailureReason = reason.String
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, err
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
