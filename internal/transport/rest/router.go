package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/Ananeya/asset-management-system/internal"
	"github.com/Ananeya/asset-management-system/internal/auth"
	"github.com/Ananeya/asset-management-system/internal/item"
	"github.com/Ananeya/asset-management-system/internal/transport/middleware"
	"github.com/Ananeya/asset-management-system/internal/transport/swagger"
	"github.com/Ananeya/asset-management-system/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	cfg *internal.Config,
	authHandler *auth.Handler,
	roleAuth *auth.RoleAuthorization,
	userHandler *user.Handler,
	itemHandler *item.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Health and docs live outside the API prefix
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)

			sr.Group(func(ar chi.Router) {
				ar.Use(authHandler.AuthMiddleware)
				ar.Post("/refresh-token", authHandler.RefreshToken)
			})
		})

		// Public item lookups (no auth required)
		r.Get("/items/search", itemHandler.SearchItems)
		r.Get("/items/filter", itemHandler.FilterItems)

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)

			pr.Group(func(sr chi.Router) {
				sr.Use(roleAuth.RequireStorekeeper())
				sr.Put("/users/{id}/status", userHandler.UpdateStatus)
			})

			pr.Route("/items", func(ir chi.Router) {
				ir.Get("/", itemHandler.GetAllItems)
				ir.Get("/assigned", itemHandler.AssignedItems)
				ir.Get("/{id}", itemHandler.GetItem)

				// Holder-only updates; ownership is enforced in the service
				ir.Put("/{id}/status", itemHandler.UpdateStatus)
				ir.Post("/{id}/report", itemHandler.ReportIssue)
				ir.Post("/request", itemHandler.RequestItem)

				// Assignment operations gated by the configured policy
				ir.Group(func(ar chi.Router) {
					ar.Use(roleAuth.RequireAssignAccess(cfg.Security.AssignPolicy))
					ar.Post("/assign", itemHandler.AssignItem)
					ar.Post("/reassign", itemHandler.ReassignItem)
				})

				// Inventory management is storekeeper-only
				ir.Group(func(sr chi.Router) {
					sr.Use(roleAuth.RequireStorekeeper())
					sr.Post("/", itemHandler.CreateItem)
					sr.Put("/{id}", itemHandler.UpdateItem)
					sr.Delete("/{id}", itemHandler.DeleteItem)
				})
			})
		})
	})
}
