package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Leandro-Gomez-12345/Final-de-POO/internal/domain"
)

// fkViolation is the Postgres error code raised when a delete would orphan a
// cart_items row.
const fkViolation = "23503"

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) LoadAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, price, stock
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list products", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock); err != nil {
			return nil, &domain.StorageError{Op: "scan product", Err: err}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list products", Err: err}
	}

	return products, nil
}

func (r *ProductRepository) LoadByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, price, stock
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "load product", Err: err}
	}

	return p, nil
}

// Save inserts the product when it has no id yet, assigning one, and updates
// the existing row otherwise.
func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) error {
	if p.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO products (name, category, price, stock)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, p.Name, p.Category, p.Price, p.Stock).Scan(&p.ID)
		if err != nil {
			return &domain.StorageError{Op: "insert product", Err: err}
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, category = $3, price = $4, stock = $5
		WHERE id = $1
	`, p.ID, p.Name, p.Category, p.Price, p.Stock)
	if err != nil {
		return &domain.StorageError{Op: "update product", Err: err}
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "update product", Err: err}
	}
	if rowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM products
		WHERE id = $1
	`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == fkViolation {
			return false, domain.ErrProductInCart
		}
		return false, &domain.StorageError{Op: "delete product", Err: err}
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, &domain.StorageError{Op: "delete product", Err: err}
	}

	return rowsAffected > 0, nil
}
