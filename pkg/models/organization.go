package models

import "time"

// Organisation is a tenant workspace owned by exactly one user. Non-owner
// users gain access through OrganisationMembership rows.
type Organisation struct {
	ID          string    `json:"orgId" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	OwnerID     string    `json:"-" db:"owner_id"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

// OrganisationMembership links a user to an organisation. It is a pure
// many-to-many join with no ownership semantics.
type OrganisationMembership struct {
	OrganisationID string    `json:"orgId" db:"org_id"`
	UserID         string    `json:"userId" db:"user_id"`
	CreatedAt      time.Time `json:"-" db:"created_at"`
}

// CreateOrganisationRequest is the payload for POST /api/organisations.
type CreateOrganisationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMemberRequest is the payload for POST /api/organisations/{orgId}/users.
type AddMemberRequest struct {
	UserID string `json:"userId"`
}
