package domain

import "github.com/shopspring/decimal"

// CartItem pairs a product with the quantity held in the cart. The product is
// a shared reference into the catalog; its price is read live until checkout
// captures it.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the single active collection of line items. Items keep insertion
// order; there is at most one item per product id.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Find returns a pointer to the line item for productID, or nil.
func (c *Cart) Find(productID int64) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].Product.ID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

// Add merges quantity into an existing line item for the product, or appends
// a new one. The product reference is refreshed on merge so the item carries
// the latest price and stock.
func (c *Cart) Add(p Product, quantity int) {
	if item := c.Find(p.ID); item != nil {
		item.Product = p
		item.Quantity += quantity
		return
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: quantity})
}

// Remove drops the line item for productID. Reports whether it was present.
func (c *Cart) Remove(productID int64) bool {
	for idx := range c.Items {
		if c.Items[idx].Product.ID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total recomputes the cart total from the current line items.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CartLine is one row of a cart snapshot, with the subtotal already computed.
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartSnapshot is the read model handed to callers. Totals are derived on
// every call, never cached.
type CartSnapshot struct {
	Items   []CartLine      `json:"items"`
	Total   decimal.Decimal `json:"total"`
	IsEmpty bool            `json:"is_empty"`
}

func (c *Cart) Snapshot() CartSnapshot {
	lines := make([]CartLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, CartLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return CartSnapshot{
		Items:   lines,
		Total:   c.Total(),
		IsEmpty: len(lines) == 0,
	}
}
