package mailer

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerMailer wraps a Mailer with a circuit breaker so a dead SMTP server
// stops being hammered on every order.
type BreakerMailer struct {
	inner Mailer
	cb    *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerMailer(inner Mailer) *BreakerMailer {
	settings := gobreaker.Settings{
		Name:    "smtp",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &BreakerMailer{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (b *BreakerMailer) Send(ctx context.Context, msg Message) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.inner.Send(ctx, msg)
	})
	return err
}
