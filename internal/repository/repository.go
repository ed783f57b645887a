package repository

import (
	"context"
	"errors"

	"github.com/omaradel73/zamazon-v2/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

// Repositories are defined here, consumer-side; the MongoDB implementations
// satisfy them.

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) error
	InsertMany(ctx context.Context, products []domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Insert(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, a *domain.Account) error
}

type OrderRepository interface {
	Insert(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	// UpdateStatus is the only write allowed on a persisted order; items and
	// total stay as captured at checkout.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
}
