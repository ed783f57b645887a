package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omaradel73/zamazon-v2/internal/domain"
)

func TestOrderConfirmation_RendersOrder(t *testing.T) {
	order := &domain.Order{
		ID:    "order-1",
		Email: "omar@example.com",
		Items: []domain.OrderItem{
			{Name: "Echo Dot", Price: 2500, Quantity: 3},
			{Name: "Kindle", Price: 1800, Quantity: 1},
		},
		Total: 9350,
		Shipping: domain.ShippingInfo{
			Address: "12 Nile St",
			City:    "Cairo",
			Phone:   "01000000000",
		},
		DeliveryDate: "Friday, Sep 4",
	}

	msg := OrderConfirmation(order)

	assert.Equal(t, "omar@example.com", msg.To)
	assert.Equal(t, "Order Confirmation #order-1", msg.Subject)
	assert.Contains(t, msg.TextBody, "EGP 9350.00")
	assert.Contains(t, msg.HTMLBody, "Echo Dot - EGP 2500.00 x 3")
	assert.Contains(t, msg.HTMLBody, "12 Nile St, Cairo")
	assert.Contains(t, msg.HTMLBody, "Friday, Sep 4")
}

func TestOrderConfirmation_EscapesItemNames(t *testing.T) {
	order := &domain.Order{
		ID:    "order-1",
		Email: "omar@example.com",
		Items: []domain.OrderItem{{Name: "<script>alert(1)</script>", Price: 1, Quantity: 1}},
	}

	msg := OrderConfirmation(order)

	assert.NotContains(t, msg.HTMLBody, "<script>")
}

func TestVerificationCode_CarriesCode(t *testing.T) {
	msg := VerificationCode("omar@example.com", "123456")

	assert.Equal(t, "omar@example.com", msg.To)
	assert.Contains(t, msg.Subject, "Verify")
	assert.Contains(t, msg.TextBody, "123456")
	assert.Contains(t, msg.HTMLBody, "123456")
}

func TestPasswordResetCode_CarriesCode(t *testing.T) {
	msg := PasswordResetCode("omar@example.com", "654321")

	assert.Contains(t, msg.Subject, "Reset")
	assert.Contains(t, msg.TextBody, "654321")
	assert.Contains(t, msg.HTMLBody, "expires in one hour")
}

type flakyMailer struct {
	err   error
	calls int
}

func (m *flakyMailer) Send(ctx context.Context, msg Message) error {
	m.calls++
	return m.err
}

func TestBreakerMailer_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyMailer{err: errors.New("smtp down")}
	b := NewBreakerMailer(inner)
	msg := Message{To: "omar@example.com", Subject: "test"}

	for i := 0; i < 3; i++ {
		assert.Error(t, b.Send(context.Background(), msg))
	}
	assert.Equal(t, 3, inner.calls)

	// The breaker is open now: sends fail fast without touching SMTP.
	assert.Error(t, b.Send(context.Background(), msg))
	assert.Equal(t, 3, inner.calls)
}

func TestBreakerMailer_PassesThroughSuccess(t *testing.T) {
	inner := &flakyMailer{}
	b := NewBreakerMailer(inner)

	require.NoError(t, b.Send(context.Background(), Message{To: "omar@example.com"}))
	assert.Equal(t, 1, inner.calls)
}
