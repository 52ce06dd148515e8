// Package access holds the named access-control strategies applied by the
// handlers: who may view a user profile, and who may view an organisation.
package access

import (
	"fmt"

	"user-org-backend/pkg/database"
	"user-org-backend/pkg/models"
)

// UserViewPolicy decides whether a caller may view another user's profile.
type UserViewPolicy interface {
	Name() string
	CanViewUser(store database.Store, caller, target *models.User) (bool, error)
}

// ExactIdentityPolicy permits access only to the caller's own profile.
type ExactIdentityPolicy struct{}

// Name returns the policy's configuration name.
func (ExactIdentityPolicy) Name() string { return "exact" }

// CanViewUser reports whether caller and target are the same user.
func (ExactIdentityPolicy) CanViewUser(_ database.Store, caller, target *models.User) (bool, error) {
	return caller.ID == target.ID, nil
}

// OrgOverlapPolicy permits access when the two users share at least one
// organisation, counting both ownership and membership.
type OrgOverlapPolicy struct{}

// Name returns the policy's configuration name.
func (OrgOverlapPolicy) Name() string { return "overlap" }

// CanViewUser intersects the organisation sets of caller and target.
func (OrgOverlapPolicy) CanViewUser(store database.Store, caller, target *models.User) (bool, error) {
	callerOrgs, err := store.ListUserOrganisations(caller.ID)
	if err != nil {
		return false, fmt.Errorf("failed to list caller organisations: %w", err)
	}
	targetOrgs, err := store.ListUserOrganisations(target.ID)
	if err != nil {
		return false, fmt.Errorf("failed to list target organisations: %w", err)
	}

	callerSet := make(map[string]struct{}, len(callerOrgs))
	for _, org := range callerOrgs {
		callerSet[org.ID] = struct{}{}
	}
	for _, org := range targetOrgs {
		if _, ok := callerSet[org.ID]; ok {
			return true, nil
		}
	}
	return false, nil
}

// PolicyFromName resolves a configured policy name. Unknown names fall back
// to organisation overlap, the original service's final behavior.
func PolicyFromName(name string) UserViewPolicy {
	switch name {
	case "exact":
		return ExactIdentityPolicy{}
	default:
		return OrgOverlapPolicy{}
	}
}

// CanViewOrganisation reports whether a user may see an organisation's full
// detail: the owner unconditionally, otherwise any user in its membership
// set.
func CanViewOrganisation(store database.Store, userID string, org *models.Organisation) (bool, error) {
	if org.OwnerID == userID {
		return true, nil
	}
	return store.IsOrganisationMember(org.ID, userID)
}
