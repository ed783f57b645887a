// Package events publishes order lifecycle events. Publishing is best-effort:
// a broker outage is logged and never fails the order operation that produced
// the event.
package events

import (
	"context"
	"time"

	"github.com/omaradel73/zamazon-v2/internal/domain"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type       string             `json:"type"`
	OrderID    string             `json:"order_id"`
	AccountID  string             `json:"account_id"`
	Status     domain.OrderStatus `json:"status"`
	PrevStatus domain.OrderStatus `json:"prev_status,omitempty"`
	Total      float64            `json:"total,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// Nop drops all events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }

func OrderPlaced(order *domain.Order) OrderEvent {
	return OrderEvent{
		Type:       TypeOrderPlaced,
		OrderID:    order.ID,
		AccountID:  order.AccountID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now(),
	}
}

func OrderStatusChanged(order *domain.Order, prev domain.OrderStatus) OrderEvent {
	return OrderEvent{
		Type:       TypeOrderStatusChanged,
		OrderID:    order.ID,
		AccountID:  order.AccountID,
		Status:     order.Status,
		PrevStatus: prev,
		OccurredAt: time.Now(),
	}
}
