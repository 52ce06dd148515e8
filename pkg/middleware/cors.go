package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"user-org-backend/pkg/config"
)

// CORS builds the CORS middleware from configuration.
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Requested-With",
		},
		AllowCredentials: true,
		MaxAge:           300,
	}

	// AllowCredentials cannot be combined with a wildcard origin.
	if len(options.AllowedOrigins) == 0 || options.AllowedOrigins[0] == "*" {
		options.AllowedOrigins = []string{"*"}
		options.AllowCredentials = false
	}

	return cors.Handler(options)
}
