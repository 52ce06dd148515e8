package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"user-org-backend/pkg/config"
	"user-org-backend/pkg/database"
	"user-org-backend/pkg/models"
	"user-org-backend/pkg/utils"
)

// ContextKey is the type for values stored in the request context.
type ContextKey string

const (
	// UserContextKey holds the authenticated *models.User.
	UserContextKey ContextKey = "user"
)

// Auth returns the bearer-token authentication middleware. It extracts the
// token, verifies it, resolves the claim to a persisted user and attaches
// that user to the request context. Every failure terminates the chain with
// 401; a claim pointing at a deleted user is deliberately not distinguished
// from a bad token.
func Auth(cfg *config.Config, store database.Store) func(http.Handler) http.Handler {
	jwtService := utils.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.WriteUnauthorizedResponse(w, "Unauthorized access")
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if tokenString == "" {
				utils.WriteUnauthorizedResponse(w, "Unauthorized access")
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					utils.WriteUnauthorizedResponse(w, "Session expired, please log in again")
					return
				}
				utils.WriteUnauthorizedResponse(w, "Please provide a valid token")
				return
			}

			user, err := store.GetUserByID(claims.UserID)
			if err != nil {
				utils.WriteUnauthorizedResponse(w, "Unauthorized access")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext retrieves the authenticated user, if any.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

// RequireUser returns the authenticated user or an error for handlers that
// must not run unauthenticated.
func RequireUser(ctx context.Context) (*models.User, error) {
	user, ok := GetUserFromContext(ctx)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not authenticated")
	}
	return user, nil
}
