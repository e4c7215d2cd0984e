package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLSlot stores the document as one row of the slots table.
type SQLSlot struct {
	db  *sqlx.DB
	key string // slots.name
}

func NewSQLSlot(db *sqlx.DB, key string) *SQLSlot {
	return &SQLSlot{db: db, key: key}
}

func (s *SQLSlot) Read(ctx context.Context) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM slots WHERE name = $1`

	err := s.db.GetContext(ctx, &value, query, s.key)
	if err == sql.ErrNoRows {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}

	return value, nil
}

func (s *SQLSlot) Write(ctx context.Context, data []byte) error {
	query := `INSERT INTO slots (name, value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query, s.key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}

	return nil
}
