// Package store provides durable on-device persistence for the journal
// collections. Each collection is saved whole on every mutation; the
// in-memory copies held by the journal service remain the source of truth
// for the lifetime of the process.
package store

import (
	"context"

	"github.com/tearlogapp/tearlog-core/internal/domain"
)

// Logical keys addressing the two persisted collections.
const (
	KeyEntries    = "journal:entries"
	KeyCryingDays = "journal:crying_days"
)

// Adapter is the persistence boundary consumed by the journal service.
// Load returns an empty collection when nothing has been stored yet.
// Save replaces the entire stored collection for its key; there are no
// partial or append writes.
type Adapter interface {
	LoadEntries(ctx context.Context) ([]domain.JournalEntry, error)
	SaveEntries(ctx context.Context, entries []domain.JournalEntry) error
	LoadCryingDays(ctx context.Context) ([]domain.CryingDay, error)
	SaveCryingDays(ctx context.Context, days []domain.CryingDay) error
	Close() error
}
