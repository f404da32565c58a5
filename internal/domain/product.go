package domain

import "github.com/shopspring/decimal"

// Product is a catalog record. Stock counts units not currently held by the
// cart or sold through a completed order.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}
