package authz

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/models"
)

type Operation string

const (
	OpCreateOrganization Operation = "organization:create"
	OpListOrganizations  Operation = "organization:list"
	OpUpdateOrganization Operation = "organization:update"
	OpCreateOrgAdmin     Operation = "user:create-org-admin"
	OpCreateProfessor    Operation = "user:create-professor"
	OpCreateStudent      Operation = "user:create-student"
	OpListUsers          Operation = "user:list"
	OpCreateTopic        Operation = "topic:create"
	OpDeleteTopic        Operation = "topic:delete"
	OpReadAudit          Operation = "audit:read"
)

// permissions is the single source of truth for which roles may attempt
// which operation. Tenant scoping is enforced separately by the
// resolve/can helpers below.
var permissions = map[Operation][]Role{
	OpCreateOrganization: {RolePlatformAdmin},
	OpListOrganizations:  {RolePlatformAdmin},
	OpUpdateOrganization: {RoleOrgAdmin, RolePlatformAdmin},
	OpCreateOrgAdmin:     {RolePlatformAdmin},
	OpCreateProfessor:    {RoleOrgAdmin, RolePlatformAdmin},
	OpCreateStudent:      {RoleOrgAdmin, RolePlatformAdmin},
	OpListUsers:          {RoleOrgAdmin, RolePlatformAdmin},
	OpCreateTopic:        {RoleProfessor, RoleOrgAdmin, RolePlatformAdmin},
	OpDeleteTopic:        {RoleOrgAdmin, RolePlatformAdmin},
	OpReadAudit:          {RolePlatformAdmin},
}

// Actor is the authenticated principal an operation is evaluated
// against. OrganizationID is the effective tenant scope (the user's
// current organization).
type Actor struct {
	ID             uuid.UUID
	Role           Role
	OrganizationID *uuid.UUID
}

// ActorFor builds an Actor from a directory user record.
func ActorFor(u *models.User) Actor {
	return Actor{
		ID:             u.ID,
		Role:           Role(u.Role),
		OrganizationID: u.CurrentOrganizationID,
	}
}

// Authorize checks the permission table for op. It does not consider
// tenant scope; pair it with ResolveTargetOrg or the Can helpers.
func Authorize(actor Actor, op Operation) error {
	allowed, ok := permissions[op]
	if !ok {
		return fmt.Errorf("unknown operation %q: %w", op, apperr.ErrForbidden)
	}
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	return fmt.Errorf("role %q may not %s: %w", actor.Role, op, apperr.ErrForbidden)
}

// ResolveTargetOrg decides which organization a creation request lands
// in. An orgAdmin omitting the org id defaults silently to their own
// org and may never target a foreign one. A platformAdmin may target
// any org, defaulting to their own when they have one; the result may
// be nil when neither names one.
func ResolveTargetOrg(actor Actor, requested *uuid.UUID) (*uuid.UUID, error) {
	switch actor.Role {
	case RolePlatformAdmin:
		if requested == nil {
			return actor.OrganizationID, nil
		}
		return requested, nil
	case RoleOrgAdmin:
		if requested == nil {
			return actor.OrganizationID, nil
		}
		if actor.OrganizationID == nil || *requested != *actor.OrganizationID {
			return nil, fmt.Errorf("orgAdmin may not target a foreign organization: %w", apperr.ErrForbidden)
		}
		return requested, nil
	case RoleProfessor:
		// Topic creation only: an explicit org is honored, otherwise
		// the professor's own org scopes the record.
		if requested != nil {
			return requested, nil
		}
		return actor.OrganizationID, nil
	default:
		return nil, fmt.Errorf("role %q has no tenant scope here: %w", actor.Role, apperr.ErrForbidden)
	}
}

// CanDeleteTopic enforces the tenant scope on topic deletion: platform
// admins may delete any topic, org admins only topics of their own org.
func CanDeleteTopic(actor Actor, topicOrg *uuid.UUID) error {
	switch actor.Role {
	case RolePlatformAdmin:
		return nil
	case RoleOrgAdmin:
		if actor.OrganizationID == nil || topicOrg == nil || *actor.OrganizationID != *topicOrg {
			return fmt.Errorf("cannot delete topic outside your organization: %w", apperr.ErrForbidden)
		}
		return nil
	default:
		return fmt.Errorf("role %q may not delete topics: %w", actor.Role, apperr.ErrForbidden)
	}
}

// CanListUsersOf reports which org filter a user listing is scoped to:
// platformAdmin sees everything (nil filter), orgAdmin only their org.
func CanListUsersOf(actor Actor) (*uuid.UUID, error) {
	switch actor.Role {
	case RolePlatformAdmin:
		return nil, nil
	case RoleOrgAdmin:
		if actor.OrganizationID == nil {
			return nil, fmt.Errorf("no organization assigned: %w", apperr.ErrInvalid)
		}
		return actor.OrganizationID, nil
	default:
		return nil, fmt.Errorf("role %q may not list users: %w", actor.Role, apperr.ErrForbidden)
	}
}

// EmailDomain extracts the domain suffix used by registration gating.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
