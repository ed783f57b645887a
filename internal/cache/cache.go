package cache

import (
	"context"
	"errors"

	"github.com/omaradel73/zamazon-v2/internal/domain"
)

type CatalogCache interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	SetAll(ctx context.Context, products []domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	// Invalidate drops the full-catalog entry and the given product entries.
	Invalidate(ctx context.Context, productIDs ...string) error
}

var ErrCacheMiss = errors.New("cache miss")
