package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/Leandro-Gomez-12345/Final-de-POO/internal/domain"
)

var meter = otel.Meter("checkout")

// Store is the persistence boundary for completed orders.
type Store interface {
	Commit(ctx context.Context, order *domain.Order) error
	LoadByID(ctx context.Context, id string) (*domain.Order, error)
}

// Cart is the slice of the cart service the engine drives: draining a
// non-empty cart into an order, and abandoning it with stock restored.
type Cart interface {
	Drain(ctx context.Context, commit func(cart *domain.Cart) error) error
	Abandon(ctx context.Context) error
}

// Publisher emits an event for a placed order. May be absent.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Engine converts the current cart into immutable priced orders.
type Engine struct {
	cart         Cart
	store        Store
	producer     Publisher
	logger       *slog.Logger
	ordersPlaced metric.Int64Counter
}

func NewEngine(cart Cart, store Store, producer Publisher, logger *slog.Logger) *Engine {
	ordersPlaced, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Number of completed checkouts"),
	)
	if err != nil {
		logger.Error("failed to create orders.placed counter", "error", err)
	}

	return &Engine{
		cart:         cart,
		store:        store,
		producer:     producer,
		logger:       logger,
		ordersPlaced: ordersPlaced,
	}
}

// Checkout prices the current cart, assigns a fresh order id, persists the
// order while draining the cart, and returns the immutable snapshot. Stock
// stays decremented: the sale is complete. An empty cart fails with
// ErrEmptyCart and creates nothing.
func (e *Engine) Checkout(ctx context.Context) (*domain.Order, error) {
	var order *domain.Order

	err := e.cart.Drain(ctx, func(cart *domain.Cart) error {
		order = domain.NewOrder(uuid.New().String(), cart, time.Now().UTC())
		return e.store.Commit(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if e.ordersPlaced != nil {
		e.ordersPlaced.Add(ctx, 1)
	}

	if e.producer != nil {
		event := domain.OrderPlacedEvent{
			OrderID:   order.ID,
			Items:     order.Items,
			Total:     order.Total,
			Timestamp: order.CreatedAt,
		}
		if err := e.producer.Publish(ctx, order.ID, event); err != nil {
			e.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	return order, nil
}

// GetOrder looks up a stored order. Lookups never mutate state.
func (e *Engine) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := e.store.LoadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// Cancel abandons the current cart before any order is committed, restoring
// stock for every item. Cancelling an empty cart fails with ErrEmptyCart.
func (e *Engine) Cancel(ctx context.Context) error {
	return e.cart.Abandon(ctx)
}
