package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	Email                 string     `json:"email" db:"email"`
	Name                  string     `json:"name" db:"name"`
	PasswordHash          string     `json:"-" db:"password_hash"`
	Role                  string     `json:"role" db:"role"`
	OrganizationID        *uuid.UUID `json:"organization_id,omitempty" db:"organization_id"`
	CurrentOrganizationID *uuid.UUID `json:"current_organization_id,omitempty" db:"current_organization_id"`
	IsActive              bool       `json:"is_active" db:"is_active"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}
