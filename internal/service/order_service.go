package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/omaradel73/zamazon-v2/internal/cart"
	"github.com/omaradel73/zamazon-v2/internal/domain"
	"github.com/omaradel73/zamazon-v2/internal/events"
	"github.com/omaradel73/zamazon-v2/internal/mailer"
	"github.com/omaradel73/zamazon-v2/internal/repository"
)

type OrderService struct {
	orders      repository.OrderRepository
	mail        mailer.Mailer
	publisher   events.Publisher
	shippingFee float64
	log         *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	mail mailer.Mailer,
	publisher events.Publisher,
	shippingFee float64,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		mail:        mail,
		publisher:   publisher,
		shippingFee: shippingFee,
		log:         log,
	}
}

// PlaceOrder validates the submitted cart, snapshots every line at its
// current price, persists the order in pending state, and then dispatches the
// confirmation email and the placed event best-effort. Once the order is
// durable nothing can unwind it.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	account *domain.Account,
	lines []cart.Line,
	shipping domain.ShippingInfo,
	deliveryDate string,
) (*domain.Order, error) {
	if err := validateOrderInput(lines, shipping); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Image:     line.Product.Image,
		})
		total += line.Product.Price * float64(line.Quantity)
	}
	total += s.shippingFee

	if deliveryDate == "" {
		deliveryDate = defaultDeliveryDate()
	}

	order := &domain.Order{
		AccountID:    account.ID,
		Email:        account.Email,
		Items:        items,
		Total:        total,
		Shipping:     shipping,
		DeliveryDate: deliveryDate,
		Status:       domain.OrderStatusPending,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.log.Error("failed to persist order", zap.Error(err))
		return nil, fmt.Errorf("%w: order store unreachable, try again", ErrDependency)
	}

	s.dispatchAsync(order)
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, accountID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByAccount(ctx, accountID)
	if err != nil {
		s.log.Error("failed to list orders", zap.String("account_id", accountID), zap.Error(err))
		return nil, fmt.Errorf("%w: order store unreachable", ErrDependency)
	}
	return orders, nil
}

// Get returns an order only to its owner.
func (s *OrderService) Get(ctx context.Context, accountID, orderID string) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: unknown order", ErrNotFound)
		}
		s.log.Error("failed to get order", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("%w: order store unreachable", ErrDependency)
	}
	if order.AccountID != accountID {
		return nil, fmt.Errorf("%w: unknown order", ErrNotFound)
	}
	return order, nil
}

// dispatchAsync runs the post-persist side effects. Failures are logged and
// swallowed: the order already succeeded.
func (s *OrderService) dispatchAsync(order *domain.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.mail.Send(ctx, mailer.OrderConfirmation(order)); err != nil {
			s.log.Warn("order confirmation mail failed",
				zap.String("order_id", order.ID), zap.Error(err))
		}
		if err := s.publisher.Publish(ctx, events.OrderPlaced(order)); err != nil {
			s.log.Warn("order placed event failed",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}()
}

func validateOrderInput(lines []cart.Line, shipping domain.ShippingInfo) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
		if line.Product.Price < 0 {
			return fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
	}
	if shipping.Address == "" || shipping.Phone == "" {
		return fmt.Errorf("%w: shipping address and phone are required", ErrValidation)
	}
	return nil
}

// defaultDeliveryDate is three days out, formatted for the storefront.
func defaultDeliveryDate() string {
	return time.Now().AddDate(0, 0, 3).Format("Monday, Jan 2")
}
