package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Leandro-Gomez-12345/Final-de-POO/internal/domain"
)

// Store is the persistence boundary for catalog records.
type Store interface {
	LoadAll(ctx context.Context) ([]domain.Product, error)
	LoadByID(ctx context.Context, id int64) (*domain.Product, error)
	Save(ctx context.Context, p *domain.Product) error
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// Service owns catalog queries and product lifecycle. Filters run over the
// loaded set so their semantics stay independent of the store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.store.LoadAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.store.LoadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// ListByCategory matches the category exactly, ignoring case. A blank
// category matches nothing.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	matches := []domain.Product{}
	if strings.TrimSpace(category) == "" {
		return matches, nil
	}

	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// ListByPriceAbove returns products priced at or above min.
func (s *Service) ListByPriceAbove(ctx context.Context, min decimal.Decimal) ([]domain.Product, error) {
	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := []domain.Product{}
	for _, p := range products {
		if p.Price.GreaterThanOrEqual(min) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// ListByPriceInRange returns products with min <= price <= max. An inverted
// range yields an empty result, not an error.
func (s *Service) ListByPriceInRange(ctx context.Context, min, max decimal.Decimal) ([]domain.Product, error) {
	matches := []domain.Product{}
	if min.GreaterThan(max) {
		return matches, nil
	}

	products, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	p.ID = 0
	if err := s.store.Save(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id int64, p domain.Product) (*domain.Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	existing, err := s.store.LoadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrProductNotFound
	}

	existing.Name = p.Name
	existing.Category = p.Category
	existing.Price = p.Price
	existing.Stock = p.Stock

	if err := s.store.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a product. Deletes of products still held by the active
// cart are rejected with ErrProductInCart rather than cascading.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrProductNotFound
	}
	return nil
}

func validate(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if strings.TrimSpace(p.Category) == "" {
		return &domain.ValidationError{Field: "category", Reason: "must not be blank"}
	}
	if !p.Price.IsPositive() {
		return &domain.ValidationError{Field: "price", Reason: "must be positive"}
	}
	if p.Stock <= 0 {
		return &domain.ValidationError{Field: "stock", Reason: "must be positive"}
	}
	return nil
}
