package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/megalai/backend/internal/models"
)

const orgColumns = "id, name, slug, primary_domain, created_at, updated_at"

func scanOrg(row pgx.Row) (*models.Organization, error) {
	var o models.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.PrimaryDomain, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrganization inserts the organization and, when a primary domain
// is given, seeds it into the allow-list inside the same transaction. A
// domain that is already allow-listed is left alone; any other failure
// rolls the whole creation back.
func (s *Service) CreateOrganization(ctx context.Context, name, slug string, primaryDomain *string) (*models.Organization, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, classify(err, "begin create organization")
	}
	defer tx.Rollback(ctx)

	org, err := scanOrg(tx.QueryRow(ctx,
		`INSERT INTO organizations (name, slug, primary_domain) VALUES ($1, $2, $3)
		 RETURNING `+orgColumns,
		name, slug, primaryDomain,
	))
	if err != nil {
		return nil, classify(err, "create organization")
	}

	if primaryDomain != nil && *primaryDomain != "" {
		_, err = tx.Exec(ctx,
			`INSERT INTO allowed_email_domains (domain, organization_id) VALUES ($1, $2)
			 ON CONFLICT (domain) DO NOTHING`,
			*primaryDomain, org.ID,
		)
		if err != nil {
			return nil, classify(err, "seed primary domain")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classify(err, "commit create organization")
	}
	return org, nil
}

func (s *Service) GetOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	org, err := scanOrg(s.db.QueryRow(ctx,
		"SELECT "+orgColumns+" FROM organizations WHERE id = $1", id,
	))
	if err != nil {
		return nil, classify(err, "get organization")
	}
	return org, nil
}

func (s *Service) GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	org, err := scanOrg(s.db.QueryRow(ctx,
		"SELECT "+orgColumns+" FROM organizations WHERE slug = $1", slug,
	))
	if err != nil {
		return nil, classify(err, "get organization by slug")
	}
	return org, nil
}

func (s *Service) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	rows, err := s.db.Query(ctx,
		"SELECT "+orgColumns+" FROM organizations ORDER BY created_at")
	if err != nil {
		return nil, classify(err, "list organizations")
	}
	defer rows.Close()

	var orgs []models.Organization
	for rows.Next() {
		var o models.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.PrimaryDomain, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, classify(err, "scan organization")
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

// ListOrganizationSummaries is the admin listing: each org with its
// member count.
func (s *Service) ListOrganizationSummaries(ctx context.Context) ([]models.OrganizationSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT o.id, o.name, o.slug, o.primary_domain, count(u.id)
		 FROM organizations o
		 LEFT JOIN users u ON u.organization_id = o.id
		 GROUP BY o.id, o.name, o.slug, o.primary_domain
		 ORDER BY o.name`)
	if err != nil {
		return nil, classify(err, "list organization summaries")
	}
	defer rows.Close()

	var out []models.OrganizationSummary
	for rows.Next() {
		var sum models.OrganizationSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Slug, &sum.PrimaryDomain, &sum.UserCount); err != nil {
			return nil, classify(err, "scan organization summary")
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *Service) UpdateOrganization(ctx context.Context, id uuid.UUID, name, slug string, primaryDomain *string) (*models.Organization, error) {
	org, err := scanOrg(s.db.QueryRow(ctx,
		`UPDATE organizations SET name = $2, slug = $3, primary_domain = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+orgColumns,
		id, name, slug, primaryDomain,
	))
	if err != nil {
		return nil, classify(err, "update organization")
	}
	return org, nil
}
