// Package server assembles the router: global middleware chain, public auth
// routes and the bearer-protected API surface.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"user-org-backend/pkg/config"
	"user-org-backend/pkg/database"
	"user-org-backend/pkg/handlers"
	"user-org-backend/pkg/middleware"
	"user-org-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// NewRouter builds the full HTTP handler.
func NewRouter(cfg *config.Config, store database.Store) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg)
	setupRoutes(router, cfg, store)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config) {
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(cfg))
	router.Use(middleware.Recovery(cfg))
	router.Use(middleware.CORS(cfg))
	router.Use(chimiddleware.Timeout(30 * time.Second))
	router.Use(chimiddleware.Compress(5))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.MaxBodySize(maxBodyBytes))

	if cfg.IsDevelopment() {
		router.Use(chimiddleware.Heartbeat("/ping"))
	}
}

func setupRoutes(router *chi.Mux, cfg *config.Config, store database.Store) {
	authHandler := handlers.NewAuthHandler(cfg, store)
	usersHandler := handlers.NewUsersHandler(cfg, store)
	orgsHandler := handlers.NewOrgsHandler(cfg, store)

	router.Get("/", authHandler.HealthCheck)

	// Public routes
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Bearer-protected routes
	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg, store))

		r.Get("/users/{id}", usersHandler.GetUser)

		r.Route("/organisations", func(r chi.Router) {
			r.Get("/", orgsHandler.ListOrganisations)
			r.Post("/", orgsHandler.CreateOrganisation)
			r.Get("/{orgId}", orgsHandler.GetOrganisation)
			r.Post("/{orgId}/users", orgsHandler.AddMember)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFoundResponse(w, fmt.Sprintf("Route not found: %s %s", r.Method, r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponse(w, "Method not allowed",
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path),
			http.StatusMethodNotAllowed)
	})
}
