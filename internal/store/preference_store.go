package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PreferenceStore keeps string values by key in the preferences table.
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a preference store using the given database.
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *PreferenceStore) Get(key string) (value string, ok bool, err error) {
	err = s.db.sql.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value under key.
func (s *PreferenceStore) Set(key, value string) error {
	now := time.Now().UTC().Format(time.DateTime)
	_, err := s.db.sql.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   value = excluded.value,
		   updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("writing preference %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *PreferenceStore) Delete(key string) error {
	if _, err := s.db.sql.Exec("DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting preference %q: %w", key, err)
	}
	return nil
}
