package httpapi

import (
	"context"

	"github.com/omaradel73/zamazon-v2/internal/cart"
	"github.com/omaradel73/zamazon-v2/internal/domain"
)

// Handler-side views of the service layer.

type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, name string, price float64, description, image string) (*domain.Product, error)
	Update(ctx context.Context, id, name string, price float64, description, image string, rating float64) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.Account, error)
	Verify(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	UpdateProfile(ctx context.Context, accountID, name string, shipping *domain.ShippingProfile) (*domain.Account, error)
}

type OrderService interface {
	PlaceOrder(ctx context.Context, account *domain.Account, lines []cart.Line, shipping domain.ShippingInfo, deliveryDate string) (*domain.Order, error)
	ListMine(ctx context.Context, accountID string) ([]domain.Order, error)
	Get(ctx context.Context, accountID, orderID string) (*domain.Order, error)
}

type AdminService interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListUsers(ctx context.Context) ([]domain.Account, error)
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
	SetUserRole(ctx context.Context, actorID, userID string, isAdmin bool) (*domain.Account, error)
	PromoteByEmail(ctx context.Context, email string) (*domain.Account, error)
}
