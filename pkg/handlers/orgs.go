package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"user-org-backend/pkg/access"
	"user-org-backend/pkg/config"
	"user-org-backend/pkg/database"
	"user-org-backend/pkg/middleware"
	"user-org-backend/pkg/models"
	"user-org-backend/pkg/utils"
)

// OrgsHandler serves organisation CRUD and membership management.
type OrgsHandler struct {
	config *config.Config
	store  database.Store
}

// NewOrgsHandler creates the organisations handler.
func NewOrgsHandler(cfg *config.Config, store database.Store) *OrgsHandler {
	return &OrgsHandler{config: cfg, store: store}
}

// ListOrganisations handles GET /api/organisations: everything the caller
// owns or belongs to.
func (h *OrgsHandler) ListOrganisations(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Unauthorized access")
		return
	}

	orgs, err := h.store.ListUserOrganisations(user.ID)
	if err != nil {
		fmt.Printf("[error] list organisations failed for user=%s: %v\n", user.ID, err)
		utils.WriteInternalServerErrorResponse(w, "Failed to retrieve organisations")
		return
	}
	if orgs == nil {
		orgs = []models.Organisation{}
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "Organisations retrieved successfully", map[string]interface{}{
		"organisations": orgs,
	})
}

// GetOrganisation handles GET /api/organisations/{orgId}. An unknown id is
// 404 before any permission check; a known one the caller neither owns nor
// belongs to is 403.
func (h *OrgsHandler) GetOrganisation(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Unauthorized access")
		return
	}

	org, err := h.store.GetOrganisation(chi.URLParam(r, "orgId"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.WriteNotFoundResponse(w, "Organisation not found")
			return
		}
		fmt.Printf("[error] organisation lookup failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Failed to retrieve organisation")
		return
	}

	allowed, err := access.CanViewOrganisation(h.store, user.ID, org)
	if err != nil {
		fmt.Printf("[error] membership check failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Failed to retrieve organisation")
		return
	}
	if !allowed {
		utils.WriteForbiddenResponse(w, "You do not belong to this organisation")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "Organisation retrieved successfully", org)
}

// CreateOrganisation handles POST /api/organisations. Any authenticated
// user may create an organisation; they become its owner.
func (h *OrgsHandler) CreateOrganisation(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Unauthorized access")
		return
	}

	var req models.CreateOrganisationRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		utils.WriteValidationErrorResponse(w, errs)
		return
	}

	org := &models.Organisation{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OwnerID:     user.ID,
	}
	if err := h.store.CreateOrganisation(org); err != nil {
		fmt.Printf("[error] create organisation failed for user=%s: %v\n", user.ID, err)
		utils.WriteInternalServerErrorResponse(w, "Failed to create organisation")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, "Organisation created successfully", org)
}

// AddMember handles POST /api/organisations/{orgId}/users. Only the owner
// may add users, the organisation must exist, and so must the target user;
// memberships never reference nonexistent records.
func (h *OrgsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Unauthorized access")
		return
	}

	var req models.AddMemberRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		utils.WriteValidationErrorResponse(w, errs)
		return
	}

	org, err := h.store.GetOrganisation(chi.URLParam(r, "orgId"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.WriteNotFoundResponse(w, "Organisation not found")
			return
		}
		fmt.Printf("[error] organisation lookup failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Failed to add user to organisation")
		return
	}

	if org.OwnerID != caller.ID {
		utils.WriteForbiddenResponse(w, "Only the organisation owner can add users")
		return
	}

	if _, err := h.store.GetUserByID(req.UserID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			utils.WriteNotFoundResponse(w, "User not found")
			return
		}
		fmt.Printf("[error] user lookup failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Failed to add user to organisation")
		return
	}

	membership := &models.OrganisationMembership{
		OrganisationID: org.ID,
		UserID:         req.UserID,
	}
	if err := h.store.AddOrganisationMember(membership); err != nil {
		if errors.Is(err, database.ErrDuplicateMember) {
			utils.WriteConflictResponse(w, "User already belongs to this organisation")
			return
		}
		fmt.Printf("[error] add member failed: %v\n", err)
		utils.WriteInternalServerErrorResponse(w, "Failed to add user to organisation")
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "User added to organisation successfully", map[string]interface{}{})
}
