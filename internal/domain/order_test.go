package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		want     string
	}{
		{"below threshold", "99999.99", "0"},
		{"exactly at threshold gets nothing", "100000", "0"},
		{"one unit above threshold", "100001", "5000.05"},
		{"well above threshold", "250000", "12500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(decimal.RequireFromString(tt.subtotal))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Discount(%s) = %s, want %s", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("prices the cart and applies the discount", func(t *testing.T) {
		cart := &Cart{}
		cart.Add(product(1, "50000", 5), 5)

		order := NewOrder("ord-1", cart, now)

		if order.ID != "ord-1" {
			t.Errorf("expected id ord-1, got %s", order.ID)
		}
		if !order.Subtotal.Equal(decimal.NewFromInt(250000)) {
			t.Errorf("expected subtotal 250000, got %s", order.Subtotal)
		}
		if !order.Discount.Equal(decimal.NewFromInt(12500)) {
			t.Errorf("expected discount 12500, got %s", order.Discount)
		}
		if !order.Total.Equal(decimal.NewFromInt(237500)) {
			t.Errorf("expected total 237500, got %s", order.Total)
		}
		if !order.CreatedAt.Equal(now) {
			t.Errorf("expected created_at %s, got %s", now, order.CreatedAt)
		}
	})

	t.Run("discount boundary is strictly greater than", func(t *testing.T) {
		cart := &Cart{}
		cart.Add(product(1, "100000", 1), 1)

		order := NewOrder("ord-2", cart, now)
		if !order.Discount.IsZero() {
			t.Errorf("expected no discount at exactly 100000, got %s", order.Discount)
		}
		if !order.Total.Equal(decimal.NewFromInt(100000)) {
			t.Errorf("expected total 100000, got %s", order.Total)
		}
	})

	t.Run("fractional discount above the boundary", func(t *testing.T) {
		cart := &Cart{}
		cart.Add(product(1, "100001", 1), 1)

		order := NewOrder("ord-3", cart, now)
		if !order.Discount.Equal(decimal.RequireFromString("5000.05")) {
			t.Errorf("expected discount 5000.05, got %s", order.Discount)
		}
		if !order.Total.Equal(decimal.RequireFromString("95000.95")) {
			t.Errorf("expected total 95000.95, got %s", order.Total)
		}
	})

	t.Run("captures unit prices instead of referencing the catalog", func(t *testing.T) {
		p := product(1, "100", 10)
		cart := &Cart{}
		cart.Add(p, 2)

		order := NewOrder("ord-4", cart, now)

		cart.Items[0].Product.Price = decimal.NewFromInt(999)

		if !order.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected captured unit price 100, got %s", order.Items[0].UnitPrice)
		}
		if !order.Items[0].Subtotal.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected captured subtotal 200, got %s", order.Items[0].Subtotal)
		}
	})

	t.Run("does not modify the cart", func(t *testing.T) {
		cart := &Cart{}
		cart.Add(product(1, "100", 10), 2)

		_ = NewOrder("ord-5", cart, now)

		if cart.IsEmpty() || len(cart.Items) != 1 {
			t.Error("expected cart to be untouched by order creation")
		}
	})
}
