package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/megalai/backend/internal/models"
)

const topicColumns = "id, organization_id, title, description, created_by_user_id, created_at, updated_at"

func scanTopic(row pgx.Row) (*models.Topic, error) {
	var t models.Topic
	err := row.Scan(&t.ID, &t.OrganizationID, &t.Title, &t.Description,
		&t.CreatedByUserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) CreateTopic(ctx context.Context, orgID *uuid.UUID, title string, description *string, createdBy uuid.UUID) (*models.Topic, error) {
	topic, err := scanTopic(s.db.QueryRow(ctx,
		`INSERT INTO topics (organization_id, title, description, created_by_user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+topicColumns,
		orgID, title, description, createdBy,
	))
	if err != nil {
		return nil, classify(err, "create topic")
	}
	return topic, nil
}

func (s *Service) GetTopic(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	topic, err := scanTopic(s.db.QueryRow(ctx,
		"SELECT "+topicColumns+" FROM topics WHERE id = $1", id,
	))
	if err != nil {
		return nil, classify(err, "get topic")
	}
	return topic, nil
}

// ListTopics returns all topics, optionally filtered by organization.
func (s *Service) ListTopics(ctx context.Context, orgID *uuid.UUID) ([]models.Topic, error) {
	query := "SELECT " + topicColumns + " FROM topics ORDER BY created_at DESC"
	args := []any{}
	if orgID != nil {
		query = "SELECT " + topicColumns + " FROM topics WHERE organization_id = $1 ORDER BY created_at DESC"
		args = append(args, *orgID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err, "list topics")
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Title, &t.Description,
			&t.CreatedByUserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, classify(err, "scan topic")
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// DeleteTopic hard-deletes; topics are the only entity with a delete
// path.
func (s *Service) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM topics WHERE id = $1", id)
	if err != nil {
		return classify(err, "delete topic")
	}
	if tag.RowsAffected() == 0 {
		return classify(pgx.ErrNoRows, "delete topic")
	}
	return nil
}
