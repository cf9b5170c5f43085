package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"shaadi/internal/biodata"
	"shaadi/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// Postgres persists biodata records in PostgreSQL. Profiles live in a jsonb
// column; their shape is never interpreted here.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Insert(ctx context.Context, record *biodata.Biodata) error {
	query := `
		INSERT INTO biodata (id, biodata_id, owner_email, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.BiodataID, record.OwnerEmail, record.Profile, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert biodata: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*biodata.Biodata, error) {
	query := `
		SELECT id, biodata_id, owner_email, profile, created_at, updated_at
		FROM biodata
		WHERE id = $1
	`
	record, err := scanBiodata(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find biodata: %w", err)
	}
	return record, nil
}

func (s *Postgres) List(ctx context.Context, ownerEmail string) ([]biodata.Biodata, error) {
	query := `
		SELECT id, biodata_id, owner_email, profile, created_at, updated_at
		FROM biodata
		WHERE ($1 = '' OR owner_email = $1)
		ORDER BY biodata_id
	`
	rows, err := s.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list biodata: %w", err)
	}
	defer rows.Close()

	var out []biodata.Biodata
	for rows.Next() {
		record, err := scanBiodata(rows)
		if err != nil {
			return nil, fmt.Errorf("scan biodata: %w", err)
		}
		out = append(out, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate biodata: %w", err)
	}
	return out, nil
}

func (s *Postgres) ReplaceProfile(ctx context.Context, id uuid.UUID, profile json.RawMessage, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE biodata SET profile = $1, updated_at = $2 WHERE id = $3`, profile, now, id)
	if err != nil {
		return fmt.Errorf("replace biodata profile: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBiodata(row rowScanner) (*biodata.Biodata, error) {
	var record biodata.Biodata
	var profile []byte
	if err := row.Scan(&record.ID, &record.BiodataID, &record.OwnerEmail, &profile,
		&record.CreatedAt, &record.UpdatedAt); err != nil {
		return nil, err
	}
	record.Profile = json.RawMessage(profile)
	return &record, nil
}
