package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/omaradel73/zamazon-v2/internal/domain"
	"github.com/omaradel73/zamazon-v2/internal/events"
)

func newAdminFixture() (*AdminService, *mockOrderRepo, *mockAccountRepo, *mockPublisher) {
	orders := newMockOrderRepo()
	accounts := newMockAccountRepo()
	publisher := newMockPublisher()
	svc := NewAdminService(orders, accounts, publisher, zap.NewNop())
	return svc, orders, accounts, publisher
}

func seedOrder(t *testing.T, orders *mockOrderRepo, status domain.OrderStatus) *domain.Order {
	t.Helper()
	order := &domain.Order{
		AccountID: "acc-1",
		Email:     "omar@example.com",
		Items:     []domain.OrderItem{{ProductID: "p1", Name: "Echo Dot", Price: 2500, Quantity: 1}},
		Total:     2550,
		Status:    status,
	}
	require.NoError(t, orders.Insert(context.Background(), order))
	return order
}

func seedAccount(t *testing.T, accounts *mockAccountRepo, email string, role domain.Role) *domain.Account {
	t.Helper()
	account := &domain.Account{Name: "User", Email: email, Role: role, Verified: true}
	require.NoError(t, accounts.Insert(context.Background(), account))
	return account
}

func TestSetOrderStatus_AllowedTransition(t *testing.T) {
	svc, orders, _, publisher := newAdminFixture()
	order := seedOrder(t, orders, domain.OrderStatusPending)

	updated, err := svc.SetOrderStatus(context.Background(), order.ID, domain.OrderStatusShipped)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	assert.Equal(t, domain.OrderStatusShipped, orders.stored(order.ID).Status)

	event := publisher.waitForEvent(t)
	assert.Equal(t, events.TypeOrderStatusChanged, event.Type)
	assert.Equal(t, domain.OrderStatusShipped, event.Status)
	assert.Equal(t, domain.OrderStatusPending, event.PrevStatus)
}

func TestSetOrderStatus_IllegalTransitionRejected(t *testing.T) {
	svc, orders, _, _ := newAdminFixture()
	order := seedOrder(t, orders, domain.OrderStatusPending)

	_, err := svc.SetOrderStatus(context.Background(), order.ID, domain.OrderStatusDelivered)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, domain.OrderStatusPending, orders.stored(order.ID).Status)
}

func TestSetOrderStatus_TerminalStateIsFrozen(t *testing.T) {
	svc, orders, _, _ := newAdminFixture()
	order := seedOrder(t, orders, domain.OrderStatusDelivered)

	for _, next := range []domain.OrderStatus{
		domain.OrderStatusPending, domain.OrderStatusShipped, domain.OrderStatusCanceled,
	} {
		_, err := svc.SetOrderStatus(context.Background(), order.ID, next)
		assert.ErrorIs(t, err, ErrValidation, "delivered -> %s", next)
	}
}

func TestSetOrderStatus_UnknownStatus(t *testing.T) {
	svc, orders, _, _ := newAdminFixture()
	order := seedOrder(t, orders, domain.OrderStatusPending)

	_, err := svc.SetOrderStatus(context.Background(), order.ID, "returned")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetOrderStatus_UnknownOrder(t *testing.T) {
	svc, _, _, _ := newAdminFixture()

	_, err := svc.SetOrderStatus(context.Background(), "missing", domain.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOrder(t *testing.T) {
	svc, orders, _, _ := newAdminFixture()
	order := seedOrder(t, orders, domain.OrderStatusPending)

	require.NoError(t, svc.DeleteOrder(context.Background(), order.ID))
	assert.Empty(t, orders.orders)

	err := svc.DeleteOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetUserRole_PromoteAndDemote(t *testing.T) {
	svc, _, accounts, _ := newAdminFixture()
	actor := seedAccount(t, accounts, "admin@zamazon.com", domain.RoleAdmin)
	user := seedAccount(t, accounts, "omar@example.com", domain.RoleCustomer)

	promoted, err := svc.SetUserRole(context.Background(), actor.ID, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)

	demoted, err := svc.SetUserRole(context.Background(), actor.ID, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, demoted.Role)
	assert.Equal(t, domain.RoleCustomer, accounts.stored(user.ID).Role)
}

func TestSetUserRole_SelfDemotionBlocked(t *testing.T) {
	svc, _, accounts, _ := newAdminFixture()
	actor := seedAccount(t, accounts, "admin@zamazon.com", domain.RoleAdmin)

	_, err := svc.SetUserRole(context.Background(), actor.ID, actor.ID, false)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, domain.RoleAdmin, accounts.stored(actor.ID).Role)
}

func TestSetUserRole_SelfPromotionIsFine(t *testing.T) {
	svc, _, accounts, _ := newAdminFixture()
	actor := seedAccount(t, accounts, "admin@zamazon.com", domain.RoleAdmin)

	updated, err := svc.SetUserRole(context.Background(), actor.ID, actor.ID, true)

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestPromoteByEmail(t *testing.T) {
	svc, _, accounts, _ := newAdminFixture()
	user := seedAccount(t, accounts, "omar@example.com", domain.RoleCustomer)

	promoted, err := svc.PromoteByEmail(context.Background(), "  Omar@Example.com")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)
	assert.Equal(t, domain.RoleAdmin, accounts.stored(user.ID).Role)
}

func TestPromoteByEmail_UnknownUser(t *testing.T) {
	svc, _, _, _ := newAdminFixture()

	_, err := svc.PromoteByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrders_And_ListUsers(t *testing.T) {
	svc, orders, accounts, _ := newAdminFixture()
	seedOrder(t, orders, domain.OrderStatusPending)
	seedOrder(t, orders, domain.OrderStatusPending)
	seedAccount(t, accounts, "a@example.com", domain.RoleCustomer)

	allOrders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, allOrders, 2)

	allUsers, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, allUsers, 1)
}
