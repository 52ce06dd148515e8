package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"user-org-backend/pkg/models"
)

// uniqueViolation is the Postgres error code for a unique-constraint hit.
const uniqueViolation = "23505"

// PostgresStore implements Store over PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool and verifies connectivity.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// CreateUser inserts a user. A duplicate email surfaces as
// ErrDuplicateEmail via the unique constraint.
func (s *PostgresStore) CreateUser(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRow(query, user.ID, user.FirstName, user.LastName, user.Email, user.Password, user.Phone).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail fetches a user by their login key.
func (s *PostgresStore) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, COALESCE(phone, ''), created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(s.db.QueryRow(query, email))
}

// GetUserByID fetches a user by id.
func (s *PostgresStore) GetUserByID(id string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, COALESCE(phone, ''), created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRow(query, id))
}

func (s *PostgresStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// RegisterUser creates the user and their default organisation in one
// transaction.
func (s *PostgresStore) RegisterUser(user *models.User, org *models.Organisation) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	org.OwnerID = user.ID

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(userQuery, user.ID, user.FirstName, user.LastName, user.Email, user.Password, user.Phone).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	orgQuery := `
		INSERT INTO organisations (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(orgQuery, org.ID, org.Name, org.Description, org.OwnerID).
		Scan(&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create default organisation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// CreateOrganisation inserts an organisation.
func (s *PostgresStore) CreateOrganisation(org *models.Organisation) error {
	if org.ID == "" {
		org.ID = uuid.NewString()
	}
	query := `
		INSERT INTO organisations (id, name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRow(query, org.ID, org.Name, org.Description, org.OwnerID).
		Scan(&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create organisation: %w", err)
	}
	return nil
}

// GetOrganisation fetches one organisation.
func (s *PostgresStore) GetOrganisation(orgID string) (*models.Organisation, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), owner_id, created_at, updated_at
		FROM organisations
		WHERE id = $1
	`
	var o models.Organisation
	err := s.db.QueryRow(query, orgID).
		Scan(&o.ID, &o.Name, &o.Description, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	return &o, nil
}

// ListUserOrganisations returns owned organisations plus memberships in a
// single query.
func (s *PostgresStore) ListUserOrganisations(userID string) ([]models.Organisation, error) {
	query := `
		SELECT o.id, o.name, COALESCE(o.description, ''), o.owner_id, o.created_at, o.updated_at
		FROM organisations o
		WHERE o.owner_id = $1
		UNION
		SELECT o.id, o.name, COALESCE(o.description, ''), o.owner_id, o.created_at, o.updated_at
		FROM organisations o
		JOIN organisation_users ou ON ou.org_id = o.id
		WHERE ou.user_id = $1
	`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organisations: %w", err)
	}
	defer rows.Close()

	var orgs []models.Organisation
	for rows.Next() {
		var o models.Organisation
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.OwnerID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organisation: %w", err)
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organisations: %w", err)
	}
	return orgs, nil
}

// ListOrganisationMembers returns all membership rows of an organisation.
func (s *PostgresStore) ListOrganisationMembers(orgID string) ([]models.OrganisationMembership, error) {
	query := `
		SELECT org_id, user_id, created_at
		FROM organisation_users
		WHERE org_id = $1
	`
	rows, err := s.db.Query(query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.OrganisationMembership
	for rows.Next() {
		var m models.OrganisationMembership
		if err := rows.Scan(&m.OrganisationID, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

// AddOrganisationMember inserts a membership row. The composite unique
// constraint reports duplicates; foreign keys guard referential integrity,
// but handlers check existence first for a clean 404.
func (s *PostgresStore) AddOrganisationMember(m *models.OrganisationMembership) error {
	query := `
		INSERT INTO organisation_users (org_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING created_at
	`
	err := s.db.QueryRow(query, m.OrganisationID, m.UserID).Scan(&m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// IsOrganisationMember reports whether a membership row exists.
func (s *PostgresStore) IsOrganisationMember(orgID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM organisation_users WHERE org_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := s.db.QueryRow(query, orgID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// HealthCheck pings the database.
func (s *PostgresStore) HealthCheck() error {
	return s.db.Ping()
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
