package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/omaradel73/zamazon-v2/internal/cache"
	"github.com/omaradel73/zamazon-v2/internal/domain"
	"github.com/omaradel73/zamazon-v2/internal/repository"
)

type CatalogService struct {
	products repository.ProductRepository
	cache    cache.CatalogCache
	sfg      singleflight.Group // prevents cache stampede
	log      *zap.Logger
}

func NewCatalogService(products repository.ProductRepository, catalogCache cache.CatalogCache, log *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		cache:    catalogCache,
		log:      log,
	}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products:all", func() (interface{}, error) {
		products, err := s.cache.GetAll(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("catalog cache get failed", zap.Error(err))
		}

		products, err = s.products.List(ctx)
		if err != nil {
			s.log.Error("failed to list products", zap.Error(err))
			return nil, fmt.Errorf("%w: catalog store unreachable", ErrDependency)
		}

		go func() {
			cacheCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.SetAll(cacheCtx, products); err != nil {
				s.log.Warn("catalog cache set failed", zap.Error(err))
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.cache.Get(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("catalog cache get failed", zap.Error(err))
	}

	product, err = s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: unknown product", ErrNotFound)
		}
		s.log.Error("failed to get product", zap.String("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: catalog store unreachable", ErrDependency)
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(cacheCtx, product); err != nil {
			s.log.Warn("catalog cache set failed", zap.Error(err))
		}
	}()

	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, name string, price float64, description, image string) (*domain.Product, error) {
	if err := validateProduct(name, price); err != nil {
		return nil, err
	}
	if image == "" {
		image = domain.DefaultProductImage
	}

	product := &domain.Product{
		Name:        name,
		Price:       price,
		Description: description,
		Image:       image,
		Rating:      0,
	}
	if err := s.products.Insert(ctx, product); err != nil {
		s.log.Error("failed to insert product", zap.Error(err))
		return nil, fmt.Errorf("%w: catalog store unreachable", ErrDependency)
	}

	s.invalidate(product.ID)
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id, name string, price float64, description, image string, rating float64) (*domain.Product, error) {
	if err := validateProduct(name, price); err != nil {
		return nil, err
	}
	if image == "" {
		image = domain.DefaultProductImage
	}

	product := &domain.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Description: description,
		Image:       image,
		Rating:      rating,
	}
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: unknown product", ErrNotFound)
		}
		s.log.Error("failed to update product", zap.String("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: catalog store unreachable", ErrDependency)
	}

	s.invalidate(id)
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fmt.Errorf("%w: unknown product", ErrNotFound)
		}
		s.log.Error("failed to delete product", zap.String("product_id", id), zap.Error(err))
		return fmt.Errorf("%w: catalog store unreachable", ErrDependency)
	}

	s.invalidate(id)
	return nil
}

// Seed inserts the default catalog when the products collection is empty.
func (s *CatalogService) Seed(ctx context.Context) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check product count: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := s.products.InsertMany(ctx, defaultCatalog()); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	s.log.Info("seeded default catalog", zap.Int("products", len(defaultCatalog())))
	return nil
}

func (s *CatalogService) invalidate(productID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, productID); err != nil {
		s.log.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}

func validateProduct(name string, price float64) error {
	if name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}
