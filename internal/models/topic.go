package models

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	OrganizationID  *uuid.UUID `json:"organization_id,omitempty" db:"organization_id"`
	Title           string     `json:"title" db:"title"`
	Description     *string    `json:"description,omitempty" db:"description"`
	CreatedByUserID uuid.UUID  `json:"created_by_user_id" db:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
