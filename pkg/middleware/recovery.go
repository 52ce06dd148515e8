package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"user-org-backend/pkg/config"
	"user-org-backend/pkg/utils"
)

// Recovery converts panics into a 500 envelope. The stack trace goes to the
// server log only; clients get a generic message.
func Recovery(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					fmt.Printf("PANIC: %v\n%s\n", err, debug.Stack())

					if cfg.IsDevelopment() {
						utils.WriteInternalServerErrorResponse(w, fmt.Sprintf("Internal server error: %v", err))
						return
					}
					utils.WriteInternalServerErrorResponse(w, "Internal server error occurred")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
