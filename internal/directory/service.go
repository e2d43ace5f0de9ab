package directory

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/megalai/backend/internal/apperr"
)

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// classify translates store errors into the taxonomy. Uniqueness
// violations are the canonical "already exists" signal; concurrent
// writers are serialized by the constraint, not by application locks.
func classify(err error, what string) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		return fmt.Errorf("%s: %w", what, apperr.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
