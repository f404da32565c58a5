package checkout

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Leandro-Gomez-12345/Final-de-POO/internal/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Commit stores the order with its captured items and drains the cart in the
// same transaction. Stock is left decremented: a completed sale is final.
func (r *OrderRepository) Commit(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "begin order transaction", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, subtotal, discount, total, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, order.ID, order.Subtotal, order.Discount, order.Total, order.CreatedAt)
	if err != nil {
		return &domain.StorageError{Op: "insert order", Err: err}
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, item.ProductID, item.Name, item.UnitPrice, item.Quantity)
		if err != nil {
			return &domain.StorageError{Op: "insert order item", Err: err}
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return &domain.StorageError{Op: "drain cart", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "commit order transaction", Err: err}
	}

	return nil
}

func (r *OrderRepository) LoadByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, subtotal, discount, total, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.Subtotal, &order.Discount, &order.Total, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "load order", Err: err}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, &domain.StorageError{Op: "load order items", Err: err}
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, &domain.StorageError{Op: "scan order item", Err: err}
		}
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "load order items", Err: err}
	}

	return order, nil
}
