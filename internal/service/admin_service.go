package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/omaradel73/zamazon-v2/internal/domain"
	"github.com/omaradel73/zamazon-v2/internal/events"
	"github.com/omaradel73/zamazon-v2/internal/repository"
)

// AdminService is the privileged mutation surface. Callers are gated at the
// HTTP layer: only verified tokens resolving to an admin account get here.
type AdminService struct {
	orders    repository.OrderRepository
	accounts  repository.AccountRepository
	publisher events.Publisher
	log       *zap.Logger
}

func NewAdminService(
	orders repository.OrderRepository,
	accounts repository.AccountRepository,
	publisher events.Publisher,
	log *zap.Logger,
) *AdminService {
	return &AdminService{
		orders:    orders,
		accounts:  accounts,
		publisher: publisher,
		log:       log,
	}
}

func (s *AdminService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		s.log.Error("failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("%w: order store unreachable", ErrDependency)
	}
	return orders, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		s.log.Error("failed to list accounts", zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return accounts, nil
}

// SetOrderStatus applies an explicit transition table: pending may move to
// shipped, declined or canceled; shipped may move to delivered; terminal
// states accept nothing.
func (s *AdminService) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrValidation, order.Status, status)
	}

	prev := order.Status
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: unknown order", ErrNotFound)
		}
		s.log.Error("failed to update order status", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("%w: order store unreachable", ErrDependency)
	}
	order.Status = status

	s.publishAsync(events.OrderStatusChanged(order, prev))
	return order, nil
}

func (s *AdminService) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return fmt.Errorf("%w: unknown order", ErrNotFound)
		}
		s.log.Error("failed to delete order", zap.String("order_id", orderID), zap.Error(err))
		return fmt.Errorf("%w: order store unreachable", ErrDependency)
	}
	return nil
}

// SetUserRole overwrites the role flag. An admin cannot demote themselves,
// which keeps at least the acting admin in place.
func (s *AdminService) SetUserRole(ctx context.Context, actorID, userID string, isAdmin bool) (*domain.Account, error) {
	if actorID == userID && !isAdmin {
		return nil, fmt.Errorf("%w: cannot remove your own admin role", ErrValidation)
	}

	account, err := s.getAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if isAdmin {
		account.Role = domain.RoleAdmin
	} else {
		account.Role = domain.RoleCustomer
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		s.log.Error("failed to update role", zap.String("account_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return account, nil
}

func (s *AdminService) PromoteByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		s.log.Error("failed to look up account", zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}

	account.Role = domain.RoleAdmin
	if err := s.accounts.Update(ctx, account); err != nil {
		s.log.Error("failed to promote account", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return account, nil
}

func (s *AdminService) getOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: unknown order", ErrNotFound)
		}
		s.log.Error("failed to get order", zap.String("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("%w: order store unreachable", ErrDependency)
	}
	return order, nil
}

func (s *AdminService) getAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		s.log.Error("failed to get account", zap.String("account_id", accountID), zap.Error(err))
		return nil, fmt.Errorf("%w: account store unreachable", ErrDependency)
	}
	return account, nil
}

func (s *AdminService) publishAsync(event events.OrderEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log.Warn("order event publish failed",
				zap.String("order_id", event.OrderID), zap.Error(err))
		}
	}()
}
