package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLiteStore persists the token record in a single-row SQLite table.
//
// The caller owns the *sql.DB and is responsible for running migrations
// (shared.RunMigrations) before first use.
type SQLiteStore struct {
	db *sql.DB
}

var _ TokenStore = (*SQLiteStore)(nil)

// NewSQLiteStore creates a SQLiteStore over an open database connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load reads the record. Returns (nil, nil) when no row exists.
func (s *SQLiteStore) Load() (*Record, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM token_record WHERE id = 1").Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token record: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("failed to parse token record: %w", err)
	}

	return &record, nil
}

// Save upserts the record into the single row.
func (s *SQLiteStore) Save(record *Record) error {
	if record == nil {
		return fmt.Errorf("cannot save nil record")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode token record: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO token_record (id, payload, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write token record: %w", err)
	}

	return nil
}

// Delete removes the record row. Deleting a missing row is not an error.
func (s *SQLiteStore) Delete() error {
	if _, err := s.db.Exec("DELETE FROM token_record WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to delete token record: %w", err)
	}
	return nil
}
