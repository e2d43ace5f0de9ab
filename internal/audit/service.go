// Package audit records privileged mutations: organization creation,
// user creation, topic deletion. Failures to write an audit row are
// logged, never fatal to the request.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/megalai/backend/internal/directory"
	"github.com/megalai/backend/internal/models"
)

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

type Entry struct {
	Action       string
	ResourceType string
	ResourceID   *uuid.UUID
	Details      map[string]interface{}
}

// Record writes an audit row attributed to the request's actor and
// their organization. Best-effort: errors are logged and swallowed.
func (s *Service) Record(ctx context.Context, entry Entry) {
	actor := directory.ActorFromContext(ctx)

	var userID, orgID *uuid.UUID
	if actor != nil {
		userID = &actor.ID
		orgID = actor.CurrentOrganizationID
	}

	details, _ := json.Marshal(entry.Details)

	_, err := s.db.Exec(ctx,
		`INSERT INTO audit_logs (organization_id, user_id, action, resource_type, resource_id, details)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		orgID, userID, entry.Action, entry.ResourceType, entry.ResourceID, details,
	)
	if err != nil {
		slog.Error("audit write failed", "action", entry.Action, "error", err)
	}
}

type Query struct {
	Action    string
	Limit     int
	Offset    int
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) List(ctx context.Context, q Query) ([]models.AuditLog, error) {
	query := `SELECT id, organization_id, user_id, action, resource_type, resource_id, details, created_at
	          FROM audit_logs WHERE 1=1`
	args := []any{}
	idx := 1

	if q.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", idx)
		args = append(args, q.Action)
		idx++
	}
	if q.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", idx)
		args = append(args, *q.StartDate)
		idx++
	}
	if q.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", idx)
		args = append(args, *q.EndDate)
		idx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.OrganizationID, &l.UserID, &l.Action,
			&l.ResourceType, &l.ResourceID, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
