// Package sqlite provides a SQLite-backed implementation of the persistence
// adapter. It stores each collection as a whole JSON blob in a key/value
// table, preserving the full-collection replace semantics of the contract.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tearlogapp/tearlog-core/internal/domain"
	"github.com/tearlogapp/tearlog-core/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Store provides SQLite-backed persistence for the journal collections.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Single local writer; keep the pool tiny.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	if logger != nil {
		logger.Info("SQLite database opened successfully", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// LoadEntries reads the full entry collection.
func (s *Store) LoadEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	if err := s.loadCollection(ctx, store.KeyEntries, &entries); err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	return entries, nil
}

// SaveEntries replaces the stored entry collection.
func (s *Store) SaveEntries(ctx context.Context, entries []domain.JournalEntry) error {
	if err := s.saveCollection(ctx, store.KeyEntries, entries); err != nil {
		return fmt.Errorf("saving entries: %w", err)
	}
	return nil
}

// LoadCryingDays reads the full crying-day collection.
func (s *Store) LoadCryingDays(ctx context.Context) ([]domain.CryingDay, error) {
	var days []domain.CryingDay
	if err := s.loadCollection(ctx, store.KeyCryingDays, &days); err != nil {
		return nil, fmt.Errorf("loading crying days: %w", err)
	}
	return days, nil
}

// SaveCryingDays replaces the stored crying-day collection.
func (s *Store) SaveCryingDays(ctx context.Context, days []domain.CryingDay) error {
	if err := s.saveCollection(ctx, store.KeyCryingDays, days); err != nil {
		return fmt.Errorf("saving crying days: %w", err)
	}
	return nil
}

// loadCollection reads a collection into dest. A missing row loads as an
// empty collection, as does malformed data after a warning.
func (s *Store) loadCollection(ctx context.Context, key string, dest any) error {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE key = ?`, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		if s.logger != nil {
			s.logger.Warn("stored collection is malformed, starting empty",
				"key", key,
				"error", err,
			)
		}
		return nil
	}
	return nil
}

// saveCollection upserts the whole serialized collection under key.
func (s *Store) saveCollection(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collections (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// SetRaw writes raw bytes under a logical key. Used by tests to simulate
// corrupted stored data.
func (s *Store) SetRaw(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO collections (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
