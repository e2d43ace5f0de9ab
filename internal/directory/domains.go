package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/megalai/backend/internal/models"
)

// DomainAllowed reports whether an active allow-list row exists for the
// given email domain suffix.
func (s *Service) DomainAllowed(ctx context.Context, domain string) (bool, error) {
	var d models.AllowedEmailDomain
	err := s.db.QueryRow(ctx,
		`SELECT id, domain, organization_id, active, created_at, updated_at
		 FROM allowed_email_domains WHERE domain = $1 AND active = TRUE`,
		strings.ToLower(domain),
	).Scan(&d.ID, &d.Domain, &d.OrganizationID, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, classify(err, "lookup allowed domain")
	}
	return true, nil
}

// SeedAllowedDomains inserts any of the given domains that are not yet
// allow-listed. Ran at startup; idempotent.
func (s *Service) SeedAllowedDomains(ctx context.Context, domains []string) error {
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		_, err := s.db.Exec(ctx,
			`INSERT INTO allowed_email_domains (domain) VALUES ($1)
			 ON CONFLICT (domain) DO NOTHING`, domain)
		if err != nil {
			return classify(err, "seed allowed domain")
		}
	}
	return nil
}
