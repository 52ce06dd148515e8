package database

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"user-org-backend/pkg/models"
)

// MemoryStore is an in-memory Store for development and tests. It mirrors
// the sentinel-error behavior of PostgresStore exactly.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]*models.User         // by id
	usersByEmail map[string]string               // email -> id
	orgs         map[string]*models.Organisation // by id
	members      map[string]map[string]time.Time // orgID -> userID -> joined
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]*models.User),
		usersByEmail: make(map[string]string),
		orgs:         make(map[string]*models.Organisation),
		members:      make(map[string]map[string]time.Time),
	}
}

// CreateUser inserts a user, enforcing email uniqueness.
func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createUserLocked(user)
}

func (s *MemoryStore) createUserLocked(user *models.User) error {
	if _, exists := s.usersByEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	s.users[user.ID] = &clone
	s.usersByEmail[user.Email] = user.ID
	return nil
}

// GetUserByEmail fetches a user by their login key.
func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s.users[id]
	return &clone, nil
}

// GetUserByID fetches a user by id.
func (s *MemoryStore) GetUserByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

// RegisterUser creates the user and their default organisation under one
// lock, so no partial registration is ever observable.
func (s *MemoryStore) RegisterUser(user *models.User, org *models.Organisation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.createUserLocked(user); err != nil {
		return err
	}
	org.OwnerID = user.ID
	s.createOrganisationLocked(org)
	return nil
}

// CreateOrganisation inserts an organisation.
func (s *MemoryStore) CreateOrganisation(org *models.Organisation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createOrganisationLocked(org)
	return nil
}

func (s *MemoryStore) createOrganisationLocked(org *models.Organisation) {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	now := time.Now()
	org.CreatedAt = now
	org.UpdatedAt = now

	clone := *org
	s.orgs[org.ID] = &clone
}

// GetOrganisation fetches one organisation.
func (s *MemoryStore) GetOrganisation(orgID string) (*models.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.orgs[orgID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *org
	return &clone, nil
}

// ListUserOrganisations returns owned organisations plus memberships.
func (s *MemoryStore) ListUserOrganisations(userID string) ([]models.Organisation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orgs []models.Organisation
	for _, org := range s.orgs {
		if org.OwnerID == userID {
			orgs = append(orgs, *org)
			continue
		}
		if _, ok := s.members[org.ID][userID]; ok {
			orgs = append(orgs, *org)
		}
	}
	return orgs, nil
}

// ListOrganisationMembers returns all membership rows of an organisation.
func (s *MemoryStore) ListOrganisationMembers(orgID string) ([]models.OrganisationMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members []models.OrganisationMembership
	for userID, joined := range s.members[orgID] {
		members = append(members, models.OrganisationMembership{
			OrganisationID: orgID,
			UserID:         userID,
			CreatedAt:      joined,
		})
	}
	return members, nil
}

// AddOrganisationMember inserts a membership row.
func (s *MemoryStore) AddOrganisationMember(m *models.OrganisationMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[m.OrganisationID]; !ok {
		s.members[m.OrganisationID] = make(map[string]time.Time)
	}
	if _, exists := s.members[m.OrganisationID][m.UserID]; exists {
		return ErrDuplicateMember
	}
	m.CreatedAt = time.Now()
	s.members[m.OrganisationID][m.UserID] = m.CreatedAt
	return nil
}

// IsOrganisationMember reports whether a membership row exists.
func (s *MemoryStore) IsOrganisationMember(orgID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.members[orgID][userID]
	return ok, nil
}

// HealthCheck always succeeds for the in-memory store.
func (s *MemoryStore) HealthCheck() error {
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
