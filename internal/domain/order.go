package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusDeclined  OrderStatus = "declined"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// transitions is the allowed status graph. Pending is the only initial state;
// delivered, declined and canceled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusShipped, OrderStatusDeclined, OrderStatusCanceled},
	OrderStatusShipped: {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusDeclined, OrderStatusCanceled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusDeclined || s == OrderStatusCanceled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a snapshot of a cart line taken at checkout. Price is the
// price at that instant, never a live catalog lookup.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image" json:"image"`
}

type ShippingInfo struct {
	FirstName  string `bson:"first_name" json:"first_name"`
	LastName   string `bson:"last_name" json:"last_name"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postal_code" json:"postal_code"`
	Phone      string `bson:"phone" json:"phone"`
}

// Order is immutable after creation except for Status, which only the admin
// surface may change.
type Order struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	AccountID    string       `bson:"account_id" json:"account_id"`
	Email        string       `bson:"email" json:"email"`
	Items        []OrderItem  `bson:"items" json:"items"`
	Total        float64      `bson:"total" json:"total"`
	Shipping     ShippingInfo `bson:"shipping" json:"shipping"`
	DeliveryDate string       `bson:"delivery_date" json:"delivery_date"`
	Status       OrderStatus  `bson:"status" json:"status"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
}
