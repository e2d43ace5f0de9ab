package models

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Slug          string    `json:"slug" db:"slug"`
	PrimaryDomain *string   `json:"primary_domain,omitempty" db:"primary_domain"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// OrganizationSummary is the admin listing shape, one row per org with
// its member count.
type OrganizationSummary struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	PrimaryDomain *string   `json:"primary_domain,omitempty"`
	UserCount     int       `json:"user_count"`
}

type AllowedEmailDomain struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Domain         string     `json:"domain" db:"domain"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" db:"organization_id"`
	Active         bool       `json:"active" db:"active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
