package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/omaradel73/zamazon-v2/internal/auth"
	"github.com/omaradel73/zamazon-v2/internal/cart"
	"github.com/omaradel73/zamazon-v2/internal/domain"
)

type OrderHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrderHandler(orders OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{orders: orders, timeout: timeout}
}

// PlaceOrderRequestDTO carries the client-held cart at submission time.
type PlaceOrderRequestDTO struct {
	Items        []cart.Line         `json:"items"`
	Shipping     domain.ShippingInfo `json:"shipping"`
	DeliveryDate string              `json:"delivery_date"`
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account := auth.AccountFromContext(r.Context())
	if account == nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.PlaceOrder(ctx, account, req.Items, req.Shipping, req.DeliveryDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Order placed successfully",
		"order_id": order.ID,
		"order":    order,
	})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account := auth.AccountFromContext(r.Context())
	if account == nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	order, err := h.orders.Get(ctx, account.ID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	account := auth.AccountFromContext(r.Context())
	if account == nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	orders, err := h.orders.ListMine(ctx, account.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
