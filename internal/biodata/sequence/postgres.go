package sequence

import (
	"context"
	"database/sql"
	"fmt"
)

const sequenceName = "biodata"

// Postgres allocates identifiers through an atomic counter upsert. Concurrent
// creations each get a distinct value; the row is seeded from the highest
// existing identifier by the schema migration.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Next(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO biodata_sequences (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET
			value = biodata_sequences.value + 1
		RETURNING value
	`
	var value int64
	if err := p.db.QueryRowContext(ctx, query, sequenceName).Scan(&value); err != nil {
		return 0, fmt.Errorf("allocate biodata id: %w", err)
	}
	return value, nil
}
