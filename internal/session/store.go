package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// CredentialStore is one of the two mirrored credential locations: the
// durable client-side store and the short-lived cookie.
type CredentialStore interface {
	Credential() (string, error)
	SetCredential(credential string) error
	Clear() error
}

const (
	keyCredential = "token"
	keyFamilySlug = "family_slug"
)

// SQLiteStore is the durable client-side store. It outlives restarts so a
// kiosk device resumes its session without re-entering credentials.
type SQLiteStore struct {
	db *sql.DB
}

// OpenStore opens (and bootstraps) the durable store at path.
func OpenStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure store: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS client_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create store schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO client_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM client_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Credential returns the persisted bearer credential, empty when none.
func (s *SQLiteStore) Credential() (string, error) {
	return s.get(keyCredential)
}

// SetCredential persists the bearer credential.
func (s *SQLiteStore) SetCredential(credential string) error {
	return s.set(keyCredential, credential)
}

// Clear removes the persisted credential.
func (s *SQLiteStore) Clear() error {
	return s.delete(keyCredential)
}

// FamilySlug returns the most recently used family slug, remembered so the
// standalone child login can skip the slug prompt.
func (s *SQLiteStore) FamilySlug() (string, error) {
	return s.get(keyFamilySlug)
}

// SetFamilySlug remembers the most recently used family slug.
func (s *SQLiteStore) SetFamilySlug(slug string) error {
	return s.set(keyFamilySlug, slug)
}

// MemoryStore is an in-process CredentialStore, used for the cookie side in
// tests and anywhere no real cookie exists.
type MemoryStore struct {
	credential string
}

func (m *MemoryStore) Credential() (string, error) { return m.credential, nil }

func (m *MemoryStore) SetCredential(credential string) error {
	m.credential = credential
	return nil
}

func (m *MemoryStore) Clear() error {
	m.credential = ""
	return nil
}
