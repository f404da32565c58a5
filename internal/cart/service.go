package cart

import (
	"context"
	"sync"

	"github.com/Leandro-Gomez-12345/Final-de-POO/internal/domain"
)

// Store is the persistence boundary for the singleton cart.
type Store interface {
	LoadCurrent(ctx context.Context) (*domain.Cart, error)
	Persist(ctx context.Context, cart *domain.Cart, touched []domain.Product) error
}

// ProductStore is the slice of the catalog the cart needs for lookups.
type ProductStore interface {
	LoadByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Service serializes every cart and stock mutation through one mutex. Stock
// checks and decrements happen under the lock, so verifying availability and
// applying the change is a single atomic step.
type Service struct {
	mu       sync.Mutex
	carts    Store
	products ProductStore
}

func NewService(carts Store, products ProductStore) *Service {
	return &Service{
		carts:    carts,
		products: products,
	}
}

// Get returns the current cart snapshot with derived totals.
func (s *Service) Get(ctx context.Context) (domain.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.carts.LoadCurrent(ctx)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	return cart.Snapshot(), nil
}

// AddItem merges quantity into the cart and decrements the product's stock.
// Fails without mutating anything when the quantity is not positive, the
// product is unknown, or stock is insufficient.
func (s *Service) AddItem(ctx context.Context, productID int64, quantity int) (domain.CartSnapshot, error) {
	if quantity <= 0 {
		return domain.CartSnapshot{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.products.LoadByID(ctx, productID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	if product == nil {
		return domain.CartSnapshot{}, domain.ErrProductNotFound
	}
	if product.Stock < quantity {
		return domain.CartSnapshot{}, domain.ErrInsufficientStock
	}

	cart, err := s.carts.LoadCurrent(ctx)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	product.Stock -= quantity
	cart.Add(*product, quantity)

	if err := s.carts.Persist(ctx, cart, []domain.Product{*product}); err != nil {
		return domain.CartSnapshot{}, err
	}
	return cart.Snapshot(), nil
}

// UpdateQuantity sets a line item to a new strictly positive quantity and
// adjusts stock by the delta. A zero or negative quantity is rejected, not
// treated as a removal.
func (s *Service) UpdateQuantity(ctx context.Context, productID int64, quantity int) (domain.CartSnapshot, error) {
	if quantity <= 0 {
		return domain.CartSnapshot{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.carts.LoadCurrent(ctx)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	item := cart.Find(productID)
	if item == nil {
		return domain.CartSnapshot{}, domain.ErrProductNotFound
	}

	delta := quantity - item.Quantity
	if delta > 0 && item.Product.Stock < delta {
		return domain.CartSnapshot{}, domain.ErrInsufficientStock
	}

	item.Product.Stock -= delta
	item.Quantity = quantity

	if err := s.carts.Persist(ctx, cart, []domain.Product{item.Product}); err != nil {
		return domain.CartSnapshot{}, err
	}
	return cart.Snapshot(), nil
}

// RemoveItem drops a line item and restores its quantity to the product's
// stock.
func (s *Service) RemoveItem(ctx context.Context, productID int64) (domain.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.carts.LoadCurrent(ctx)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	item := cart.Find(productID)
	if item == nil {
		return domain.CartSnapshot{}, domain.ErrProductNotFound
	}

	product := item.Product
	product.Stock += item.Quantity
	cart.Remove(productID)

	if err := s.carts.Persist(ctx, cart, []domain.Product{product}); err != nil {
		return domain.CartSnapshot{}, err
	}
	return cart.Snapshot(), nil
}

// Clear empties the cart, restoring stock for every removed item. Clearing an
// already empty cart is a no-op.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// Abandon is Clear for an abandoned checkout: it refuses to run on an empty
// cart.
func (s *Service) Abandon(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.carts.LoadCurrent(ctx)
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		return domain.ErrEmptyCart
	}
	return s.clearCart(ctx, cart)
}

// Drain runs commit on the non-empty current cart while holding the cart
// lock. The commit callback is expected to remove the cart's items itself
// (checkout drains the cart without restoring stock); on error nothing is
// changed.
func (s *Service) Drain(ctx context.Context, commit func(cart *domain.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.carts.LoadCurrent(ctx)
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		return domain.ErrEmptyCart
	}
	return commit(cart)
}

func (s *Service) clearLocked(ctx context.Context) error {
	cart, err := s.carts.LoadCurrent(ctx)
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		return nil
	}
	return s.clearCart(ctx, cart)
}

func (s *Service) clearCart(ctx context.Context, cart *domain.Cart) error {
	touched := make([]domain.Product, 0, len(cart.Items))
	for _, item := range cart.Items {
		product := item.Product
		product.Stock += item.Quantity
		touched = append(touched, product)
	}

	cart.Clear()
	return s.carts.Persist(ctx, cart, touched)
}
