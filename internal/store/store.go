package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/tearlogapp/tearlog-core/internal/domain"
)

// Store wraps a Badger database instance implementing the Adapter contract.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// LoadEntries reads the full entry collection.
// A missing key loads as an empty collection; so does malformed data,
// after a warning, so a corrupt store never blocks journaling.
func (s *Store) LoadEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []domain.JournalEntry
	if err := s.loadCollection(KeyEntries, &entries); err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	return entries, nil
}

// SaveEntries replaces the stored entry collection.
func (s *Store) SaveEntries(ctx context.Context, entries []domain.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.set([]byte(KeyEntries), entries); err != nil {
		return fmt.Errorf("saving entries: %w", err)
	}
	return nil
}

// LoadCryingDays reads the full crying-day collection.
func (s *Store) LoadCryingDays(ctx context.Context) ([]domain.CryingDay, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var days []domain.CryingDay
	if err := s.loadCollection(KeyCryingDays, &days); err != nil {
		return nil, fmt.Errorf("loading crying days: %w", err)
	}
	return days, nil
}

// SaveCryingDays replaces the stored crying-day collection.
func (s *Store) SaveCryingDays(ctx context.Context, days []domain.CryingDay) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.set([]byte(KeyCryingDays), days); err != nil {
		return fmt.Errorf("saving crying days: %w", err)
	}
	return nil
}

// errMalformed marks stored data that exists but cannot be decoded.
var errMalformed = errors.New("malformed stored collection")

// loadCollection reads a collection into dest. Absent keys leave dest
// untouched (empty). Unparseable data resets to empty with a warning; a
// corrupt store must never block journaling, the worst case is a reset
// statistics view.
func (s *Store) loadCollection(key string, dest any) error {
	err := s.get([]byte(key), dest)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if errors.Is(err, errMalformed) {
		if s.logger != nil {
			s.logger.Warn("stored collection is malformed, starting empty",
				"key", key,
				"error", err,
			)
		}
		return nil
	}
	return err
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, dest); err != nil {
				return fmt.Errorf("%w: %w", errMalformed, err)
			}
			return nil
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// SetRaw writes raw bytes under a logical key. Used by tests and tooling to
// simulate corruption or inspect stored payloads.
func (s *Store) SetRaw(key string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}
