package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/megalai/backend/internal/models"
)

const userColumns = "id, email, name, password_hash, role, organization_id, current_organization_id, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.OrganizationID, &u.CurrentOrganizationID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

type NewUser struct {
	Email          string
	Name           string
	PasswordHash   string
	Role           string
	OrganizationID *uuid.UUID
}

// CreateUser inserts a user. The email uniqueness constraint serializes
// concurrent registrations; a violation surfaces as Conflict. The
// organization id, when present, also becomes the current organization.
func (s *Service) CreateUser(ctx context.Context, nu NewUser) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash, role, organization_id, current_organization_id)
		 VALUES ($1, $2, $3, $4, $5, $5)
		 RETURNING `+userColumns,
		nu.Email, nu.Name, nu.PasswordHash, nu.Role, nu.OrganizationID,
	))
	if err != nil {
		return nil, classify(err, "create user")
	}
	return user, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	))
	if err != nil {
		return nil, classify(err, "get user")
	}
	return user, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email,
	))
	if err != nil {
		return nil, classify(err, "get user by email")
	}
	return user, nil
}

// ListUsers returns all users, or only those of orgID when given.
func (s *Service) ListUsers(ctx context.Context, orgID *uuid.UUID) ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at"
	args := []any{}
	if orgID != nil {
		query = "SELECT " + userColumns + " FROM users WHERE organization_id = $1 ORDER BY created_at"
		args = append(args, *orgID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "list users")
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
			&u.OrganizationID, &u.CurrentOrganizationID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, classify(err, "scan user")
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
