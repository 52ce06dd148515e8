package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"user-org-backend/pkg/config"
	"user-org-backend/pkg/database"
	"user-org-backend/pkg/models"
	"user-org-backend/pkg/utils"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	config *config.Config
	store  database.Store
	jwt    *utils.JWTService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(cfg *config.Config, store database.Store) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		store:  store,
		jwt:    utils.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry),
	}
}

// HealthCheck reports service and store health.
func (h *AuthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.store.HealthCheck(); err != nil {
		utils.WriteInternalServerErrorResponse(w, "Service unhealthy")
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "Service healthy", map[string]string{
		"environment": h.config.Environment,
	})
}

// Register handles POST /auth/register: create the user and their default
// organisation atomically, then hand back a fresh token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		utils.WriteValidationErrorResponse(w, errs)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		fmt.Printf("[error] password hashing failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Registration unsuccessful.")
		return
	}

	user := &models.User{
		FirstName: utils.CapitalizeName(req.FirstName),
		LastName:  utils.CapitalizeName(req.LastName),
		Email:     req.Email,
		Password:  hashed,
		Phone:     req.Phone,
	}
	org := &models.Organisation{
		Name:        fmt.Sprintf("%s's Organisation", user.FirstName),
		Description: "",
	}

	// The unique constraint is the authority on duplicates; a concurrent
	// registration with the same email loses the race here, not at a
	// pre-check.
	if err := h.store.RegisterUser(user, org); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			utils.WriteBadRequestResponse(w, "Registration unsuccessful.")
			return
		}
		fmt.Printf("[error] registration failed for %s: %v\n", user.Email, err)
		utils.WriteInternalServerErrorResponse(w, "Registration unsuccessful.")
		return
	}

	token, err := h.jwt.IssueToken(user.ID, user.Email)
	if err != nil {
		fmt.Printf("[error] token issuance failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Registration unsuccessful.")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, "Registration Successful", models.AuthResponse{
		AccessToken: token,
		User:        user,
	})
}

// Login handles POST /auth/login. Unknown email and wrong password produce
// byte-identical responses so accounts cannot be enumerated.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		utils.WriteValidationErrorResponse(w, errs)
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		utils.WriteErrorResponse(w, "Bad request", "Authentication failed.", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		utils.WriteErrorResponse(w, "Bad request", "Authentication failed.", http.StatusUnauthorized)
		return
	}

	token, err := h.jwt.IssueToken(user.ID, user.Email)
	if err != nil {
		fmt.Printf("[error] token issuance failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Authentication failed.")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "Login successful", models.AuthResponse{
		AccessToken: token,
		User:        user,
	})
}
