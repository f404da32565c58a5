package cart

import (
	"context"
	"database/sql"

	"github.com/Leandro-Gomez-12345/Final-de-POO/internal/domain"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// LoadCurrent reads the singleton cart. Line items join their product rows so
// prices and stock are always live; an empty table is simply an empty cart.
func (r *CartRepository) LoadCurrent(ctx context.Context) (*domain.Cart, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.quantity, p.id, p.name, p.category, p.price, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		ORDER BY ci.id
	`)
	if err != nil {
		return nil, &domain.StorageError{Op: "load cart", Err: err}
	}
	defer func() { _ = rows.Close() }()

	cart := &domain.Cart{}
	for rows.Next() {
		var item domain.CartItem
		p := &item.Product
		if err := rows.Scan(&item.Quantity, &p.ID, &p.Name, &p.Category, &p.Price, &p.Stock); err != nil {
			return nil, &domain.StorageError{Op: "scan cart item", Err: err}
		}
		cart.Items = append(cart.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "load cart", Err: err}
	}

	return cart, nil
}

// Persist writes the cart items and the stock of every touched product in a
// single transaction, so reconciliation and the cart commit land together or
// not at all.
func (r *CartRepository) Persist(ctx context.Context, cart *domain.Cart, touched []domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StorageError{Op: "begin cart transaction", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range touched {
		result, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = $2
			WHERE id = $1
		`, p.ID, p.Stock)
		if err != nil {
			return &domain.StorageError{Op: "update stock", Err: err}
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return &domain.StorageError{Op: "update stock", Err: err}
		}
		if rowsAffected == 0 {
			return domain.ErrProductNotFound
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return &domain.StorageError{Op: "clear cart items", Err: err}
	}

	for _, item := range cart.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (product_id, quantity)
			VALUES ($1, $2)
		`, item.Product.ID, item.Quantity)
		if err != nil {
			return &domain.StorageError{Op: "insert cart item", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.StorageError{Op: "commit cart transaction", Err: err}
	}

	return nil
}
