package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shaadi/internal/favourites"
	"shaadi/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists favourite records in PostgreSQL. The composite-key
// uniqueness is a table constraint, so concurrent duplicate adds collapse into
// exactly one success no matter how they interleave.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Exists(ctx context.Context, userEmail string, biodataID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favourites WHERE user_email = $1 AND biodata_id = $2)`,
		userEmail, biodataID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check favourite exists: %w", err)
	}
	return exists, nil
}

func (s *Postgres) Insert(ctx context.Context, record *favourites.Favourite) error {
	query := `
		INSERT INTO favourites (id, user_email, biodata_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query, record.ID, record.UserEmail, record.BiodataID, record.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert favourite: %w", err)
	}
	return nil
}

func (s *Postgres) ListByUser(ctx context.Context, userEmail string) ([]favourites.Favourite, error) {
	query := `
		SELECT id, user_email, biodata_id, created_at
		FROM favourites
		WHERE user_email = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	defer rows.Close()

	var out []favourites.Favourite
	for rows.Next() {
		var record favourites.Favourite
		if err := rows.Scan(&record.ID, &record.UserEmail, &record.BiodataID, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favourite: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favourites: %w", err)
	}
	return out, nil
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM favourites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete favourite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
