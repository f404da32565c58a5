package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	discountThreshold = decimal.NewFromInt(100000)
	discountRate      = decimal.RequireFromString("0.05")
)

// Discount applies the threshold rule: 5% off when the subtotal is strictly
// above 100000, nothing at or below it.
func Discount(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(discountThreshold) {
		return subtotal.Mul(discountRate)
	}
	return decimal.Zero
}

// OrderItem is a line item frozen at checkout. UnitPrice is captured, so
// later catalog changes do not alter historical orders.
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order is an immutable priced snapshot of a checked-out cart.
type Order struct {
	ID        string          `json:"id"`
	Items     []OrderItem     `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewOrder prices the cart: per-item subtotals, cart subtotal, discount and
// final total. The cart itself is not modified.
func NewOrder(id string, cart *Cart, now time.Time) *Order {
	items := make([]OrderItem, 0, len(cart.Items))
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		line := OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		}
		items = append(items, line)
		subtotal = subtotal.Add(line.Subtotal)
	}

	discount := Discount(subtotal)
	return &Order{
		ID:        id,
		Items:     items,
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     subtotal.Sub(discount),
		CreatedAt: now,
	}
}
