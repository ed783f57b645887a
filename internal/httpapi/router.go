package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Auth           AuthService
	Catalog        CatalogService
	Orders         OrderService
	Admin          AdminService
	AuthMiddleware *AuthMiddleware
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	authHandler := NewAuthHandler(cfg.Auth, cfg.RequestTimeout)
	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.RequestTimeout)
	orderHandler := NewOrderHandler(cfg.Orders, cfg.RequestTimeout)
	adminHandler := NewAdminHandler(cfg.Admin, cfg.RequestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public storefront
		r.Get("/products", catalogHandler.List)
		r.Get("/products/{id}", catalogHandler.Get)

		// Auth flows
		r.Post("/register", authHandler.Register)
		r.Post("/verify", authHandler.Verify)
		r.Post("/resend-code", authHandler.ResendCode)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)

		// Authenticated customer surface
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMiddleware.RequireAuth)
			r.Put("/users/profile", authHandler.UpdateProfile)
			r.Post("/orders", orderHandler.PlaceOrder)
			r.Get("/orders/mine", orderHandler.ListMine)
			r.Get("/orders/{id}", orderHandler.Get)
		})

		// Admin mutation surface, including catalog writes
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMiddleware.RequireAdmin)
			r.Post("/products", catalogHandler.Create)
			r.Put("/products/{id}", catalogHandler.Update)
			r.Delete("/products/{id}", catalogHandler.Delete)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/orders", adminHandler.ListOrders)
				r.Put("/orders/{id}/status", adminHandler.SetOrderStatus)
				r.Delete("/orders/{id}", adminHandler.DeleteOrder)
				r.Get("/users", adminHandler.ListUsers)
				r.Put("/users/{id}/role", adminHandler.SetUserRole)
				r.Post("/users/promote", adminHandler.PromoteByEmail)
			})
		})
	})

	return r
}
