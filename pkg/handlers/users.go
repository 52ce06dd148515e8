package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"user-org-backend/pkg/access"
	"user-org-backend/pkg/config"
	"user-org-backend/pkg/database"
	"user-org-backend/pkg/middleware"
	"user-org-backend/pkg/utils"
)

// UsersHandler serves user profile reads behind the configured access
// policy.
type UsersHandler struct {
	config *config.Config
	store  database.Store
	policy access.UserViewPolicy
}

// NewUsersHandler creates the users handler.
func NewUsersHandler(cfg *config.Config, store database.Store) *UsersHandler {
	return &UsersHandler{
		config: cfg,
		store:  store,
		policy: access.PolicyFromName(cfg.UserAccessPolicy),
	}
}

// GetUser handles GET /api/users/{id}. Not-found takes precedence over the
// access decision.
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Unauthorized access")
		return
	}

	target, err := h.store.GetUserByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.WriteNotFoundResponse(w, "User not found")
			return
		}
		fmt.Printf("[error] user lookup failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Failed to retrieve user")
		return
	}

	allowed, err := h.policy.CanViewUser(h.store, caller, target)
	if err != nil {
		fmt.Printf("[error] access check failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Failed to retrieve user")
		return
	}
	if !allowed {
		utils.WriteUnauthorizedResponse(w, "User not authorized")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "User retrieved successfully", map[string]interface{}{
		"user": target,
	})
}
