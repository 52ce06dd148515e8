package database

import (
	"errors"

	"user-org-backend/pkg/models"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is the authoritative conflict signal for a
	// registration racing an existing account. It originates from the
	// storage-level unique constraint, not from a prior existence check.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateMember is returned when a membership row already exists.
	ErrDuplicateMember = errors.New("user already belongs to organisation")
)

// Store is the storage seam for users, organisations and memberships.
type Store interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)

	// RegisterUser persists a new user and their default organisation as
	// one atomic unit. A failure on either side leaves no trace of the
	// other. The organisation's OwnerID is set to the new user's ID.
	RegisterUser(user *models.User, org *models.Organisation) error

	// Organisations & memberships
	CreateOrganisation(org *models.Organisation) error
	GetOrganisation(orgID string) (*models.Organisation, error)
	// ListUserOrganisations returns organisations the user owns plus the
	// ones they are a member of.
	ListUserOrganisations(userID string) ([]models.Organisation, error)
	ListOrganisationMembers(orgID string) ([]models.OrganisationMembership, error)
	AddOrganisationMember(m *models.OrganisationMembership) error
	IsOrganisationMember(orgID, userID string) (bool, error)

	HealthCheck() error
	Close() error
}
