package study

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS studies (
	study_id    TEXT PRIMARY KEY,
	title       TEXT,
	description TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store persists the study catalog in PostgreSQL.
type Store struct {
	db *postgres.Client
}

func NewStore(db *postgres.Client) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the studies table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating studies table: %w", err)
	}
	return nil
}

// List returns every study ordered by insertion time, then id. Rows with a
// NULL title or description fail validation like a malformed file record.
func (s *Store) List(ctx context.Context) ([]Study, error) {
	rows, err := s.db.DB.QueryContext(ctx,
		`SELECT study_id, title, description FROM studies ORDER BY created_at, study_id`)
	if err != nil {
		return nil, fmt.Errorf("querying studies: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			id          string
			title       sql.NullString
			description sql.NullString
		)
		if err := rows.Scan(&id, &title, &description); err != nil {
			return nil, fmt.Errorf("scanning study row: %w", err)
		}
		records = append(records, Record{
			StudyID:     id,
			Title:       nullable(title),
			Description: nullable(description),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study rows: %w", err)
	}
	return Decode(records)
}

// Upsert writes studies in a single transaction, replacing the title and
// description of existing ids.
func (s *Store) Upsert(ctx context.Context, studies []Study) error {
	return s.db.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO studies (study_id, title, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (study_id) DO UPDATE
			SET title = EXCLUDED.title, description = EXCLUDED.description`)
		if err != nil {
			return fmt.Errorf("preparing upsert: %w", err)
		}
		defer stmt.Close()
		for _, st := range studies {
			if _, err := stmt.ExecContext(ctx, st.ID, st.Title, st.Description); err != nil {
				return fmt.Errorf("upserting study %s: %w", st.ID, err)
			}
		}
		return nil
	})
}

func nullable(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
