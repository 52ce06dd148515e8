package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"user-org-backend/pkg/config"
)

// Logger returns the request-logging middleware: chi's colored logger in
// development, a structured single-line format in production. Neither path
// ever logs tokens or request bodies.
func Logger(cfg *config.Config) func(http.Handler) http.Handler {
	if cfg.IsProduction() {
		return productionLogger
	}
	return middleware.Logger
}

func productionLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		userInfo := "anonymous"
		if user, ok := GetUserFromContext(r.Context()); ok && user != nil {
			userInfo = user.Email
		}

		fmt.Printf(`{"time":"%s","method":"%s","path":"%s","status":%d,"duration":"%s","user":"%s","ip":"%s"}`+"\n",
			time.Now().Format(time.RFC3339),
			r.Method,
			r.URL.Path,
			ww.Status(),
			time.Since(start),
			userInfo,
			clientIP(r),
		)
	})
}

// clientIP resolves the caller address behind proxies.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
