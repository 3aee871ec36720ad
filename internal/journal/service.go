// Package journal owns the journal entry collection and the derived
// crying-day aggregate. Both collections live in memory for the lifetime of
// the process, loaded once from the persistence adapter at construction and
// written back whole after every mutation.
//
// Aggregate invariant: for every local day D, the bucket count for D equals
// the number of crying entries whose CreatedAt maps to D. The invariant is
// restored synchronously inside every mutation, never recomputed lazily;
// the analyzer and the calendar view assume it holds at all times.
package journal

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/tearlogapp/tearlog-core/internal/daykey"
	"github.com/tearlogapp/tearlog-core/internal/domain"
	"github.com/tearlogapp/tearlog-core/internal/id"
	"github.com/tearlogapp/tearlog-core/internal/store"
)

// Notifier receives a signal whenever the crying-day aggregate changes.
// The reminder subsystem uses this to re-evaluate its 24-hour check without
// the core depending on scheduling details.
type Notifier interface {
	CryingDaysChanged()
}

// NoopNotifier is a no-op implementation of Notifier for testing.
type NoopNotifier struct{}

// CryingDaysChanged implements Notifier as a no-op.
func (NoopNotifier) CryingDaysChanged() {}

// NewNoopNotifier creates a new no-op notifier.
func NewNoopNotifier() Notifier { return NoopNotifier{} }

// Indexer is the interface for keeping the entry search index in sync.
// Index failures never fail a mutation; search is a derived convenience.
type Indexer interface {
	IndexEntry(ctx context.Context, entry *domain.JournalEntry) error
	RemoveEntry(ctx context.Context, entryID string) error
}

// NoopIndexer is a no-op implementation of Indexer for testing.
type NoopIndexer struct{}

// IndexEntry is a no-op.
func (NoopIndexer) IndexEntry(context.Context, *domain.JournalEntry) error { return nil }

// RemoveEntry is a no-op.
func (NoopIndexer) RemoveEntry(context.Context, string) error { return nil }

// NewNoopIndexer creates a new no-op indexer.
func NewNoopIndexer() Indexer { return NoopIndexer{} }

// Service is the single in-process controller owning both collections.
// All mutations run under one lock so a mutation, its aggregate
// reconciliation, and its persistence form one atomic sequence.
type Service struct {
	mu       sync.RWMutex
	adapter  store.Adapter
	logger   *slog.Logger
	notifier Notifier
	indexer  Indexer

	entries []domain.JournalEntry // sorted by CreatedAt descending
	days    []domain.CryingDay
}

// NewService loads both collections from the adapter and returns a ready
// service. Absent stored data starts empty.
func NewService(ctx context.Context, adapter store.Adapter, logger *slog.Logger, notifier Notifier) (*Service, error) {
	entries, err := adapter.LoadEntries(ctx)
	if err != nil {
		return nil, err
	}
	days, err := adapter.LoadCryingDays(ctx)
	if err != nil {
		return nil, err
	}

	sortEntries(entries)

	s := &Service{
		adapter:  adapter,
		logger:   logger,
		notifier: notifier,
		indexer:  NewNoopIndexer(),
		entries:  entries,
		days:     days,
	}

	if logger != nil {
		logger.Info("journal loaded",
			"entries", len(entries),
			"crying_days", len(days),
		)
	}

	return s, nil
}

// SetIndexer sets the search indexer. Set after construction to avoid a
// circular dependency: the index rebuild needs the loaded entries.
func (s *Service) SetIndexer(indexer Indexer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexer = indexer
}

// SetNotifier replaces the change notifier. Host applications call this to
// observe aggregate changes.
func (s *Service) SetNotifier(notifier Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = notifier
}

// Add creates a new entry. A stray intensity on a non-crying entry is
// normalized away. The entry collection stays sorted by CreatedAt
// descending; ties keep the newest insertion first.
func (s *Service) Add(ctx context.Context, content string, wasCrying bool, at time.Time, intensity domain.CryIntensity) (*domain.JournalEntry, error) {
	if at.IsZero() {
		at = time.Now()
	}
	if !wasCrying {
		intensity = domain.IntensityNone
	}

	entryID, err := id.Generate(id.PrefixEntry)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		ID:        entryID,
		Content:   content,
		CreatedAt: at,
		WasCrying: wasCrying,
		Intensity: intensity,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]domain.JournalEntry{entry}, s.entries...)
	sortEntries(s.entries)

	if wasCrying {
		s.bumpDay(daykey.Format(at), at)
	}

	s.persist(ctx, wasCrying)
	s.index(ctx, &entry)

	return &entry, nil
}

// Update mutates an entry in place and reconciles the aggregate using both
// the prior and the new state. Returns false if the id is unknown; an
// unknown id is recoverable and deliberately not an error.
func (s *Service) Update(ctx context.Context, entryID, content string, wasCrying bool, at time.Time, intensity domain.CryIntensity) bool {
	if !wasCrying {
		intensity = domain.IntensityNone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.entries, func(e domain.JournalEntry) bool { return e.ID == entryID })
	if idx < 0 {
		return false
	}

	old := s.entries[idx]

	s.entries[idx].Content = content
	s.entries[idx].WasCrying = wasCrying
	s.entries[idx].CreatedAt = at
	s.entries[idx].Intensity = intensity
	sortEntries(s.entries)

	oldDay := daykey.Format(old.CreatedAt)
	newDay := daykey.Format(at)

	// Reconciliation: an entry edited in place (same day, still crying) must
	// not double-count; toggling crying off decrements exactly once; moving
	// a crying entry across days decrements the old day and increments the
	// new day exactly once each.
	if old.WasCrying && oldDay != newDay {
		s.dropFromDay(oldDay)
	}
	if wasCrying {
		if !s.hasDay(newDay) {
			s.days = append(s.days, domain.CryingDay{Date: newDay, Timestamp: at, Count: 1})
		} else if !old.WasCrying || oldDay != newDay {
			s.bumpDay(newDay, at)
		}
	} else if old.WasCrying && oldDay == newDay {
		s.dropFromDay(oldDay)
	}

	s.persist(ctx, old.WasCrying || wasCrying)

	updated := s.entries[slices.IndexFunc(s.entries, func(e domain.JournalEntry) bool { return e.ID == entryID })]
	s.index(ctx, &updated)

	return true
}

// Delete removes an entry if present. A deleted crying entry decrements its
// day bucket so the aggregate invariant keeps holding; the bucket is dropped
// when the count reaches zero. Returns false when the id is unknown.
func (s *Service) Delete(ctx context.Context, entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.entries, func(e domain.JournalEntry) bool { return e.ID == entryID })
	if idx < 0 {
		return false
	}

	removed := s.entries[idx]
	s.entries = slices.Delete(s.entries, idx, idx+1)

	if removed.WasCrying {
		s.dropFromDay(daykey.Format(removed.CreatedAt))
	}

	s.persist(ctx, removed.WasCrying)

	if err := s.indexer.RemoveEntry(ctx, entryID); err != nil && s.logger != nil {
		s.logger.Warn("failed to remove entry from search index", "entry_id", entryID, "error", err)
	}

	return true
}

// EntriesForDay returns the entries whose CreatedAt maps to the given local
// day key, in the collection's order (CreatedAt descending).
func (s *Service) EntriesForDay(day string) []domain.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.JournalEntry
	for _, e := range s.entries {
		if daykey.Format(e.CreatedAt) == day {
			result = append(result, e)
		}
	}
	return result
}

// Entries returns a copy of the full collection, CreatedAt descending.
func (s *Service) Entries() []domain.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// CryingDays returns a copy of the aggregate buckets, unordered.
func (s *Service) CryingDays() []domain.CryingDay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.days)
}

// LastCryTime returns the instant of the most recent crying entry recorded
// across all buckets. The second return is false when no bucket exists.
func (s *Service) LastCryTime() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last time.Time
	for _, d := range s.days {
		if d.Timestamp.After(last) {
			last = d.Timestamp
		}
	}
	return last, !last.IsZero()
}

// HoursSinceLastCry returns whole hours elapsed since the last cry,
// relative to now. The second return is false when no cry is recorded.
func (s *Service) HoursSinceLastCry(now time.Time) (int, bool) {
	last, ok := s.LastCryTime()
	if !ok {
		return 0, false
	}
	return int(now.Sub(last).Hours()), true
}

// hasDay reports whether a bucket exists for the day key.
func (s *Service) hasDay(day string) bool {
	return slices.IndexFunc(s.days, func(d domain.CryingDay) bool { return d.Date == day }) >= 0
}

// bumpDay increments the bucket for day, creating it when absent, and
// records at as the day's most recent crying instant.
func (s *Service) bumpDay(day string, at time.Time) {
	idx := slices.IndexFunc(s.days, func(d domain.CryingDay) bool { return d.Date == day })
	if idx < 0 {
		s.days = append(s.days, domain.CryingDay{Date: day, Timestamp: at, Count: 1})
		return
	}
	s.days[idx].Count++
	s.days[idx].Timestamp = at
}

// dropFromDay decrements the bucket for day, clamped at zero, and removes
// the bucket when it empties. Zero-count buckets are never kept.
func (s *Service) dropFromDay(day string) {
	idx := slices.IndexFunc(s.days, func(d domain.CryingDay) bool { return d.Date == day })
	if idx < 0 {
		return
	}
	s.days[idx].Count--
	if s.days[idx].Count <= 0 {
		s.days = slices.Delete(s.days, idx, idx+1)
	}
}

// persist writes both collections through the adapter. Persistence failures
// are logged and swallowed: in-memory state stays correct for the session
// and the user is never blocked from journaling.
func (s *Service) persist(ctx context.Context, cryingChanged bool) {
	if err := s.adapter.SaveEntries(ctx, s.entries); err != nil && s.logger != nil {
		s.logger.Error("failed to persist entries", "error", err)
	}
	if cryingChanged {
		if err := s.adapter.SaveCryingDays(ctx, s.days); err != nil && s.logger != nil {
			s.logger.Error("failed to persist crying days", "error", err)
		}
		if s.notifier != nil {
			s.notifier.CryingDaysChanged()
		}
	}
}

// index pushes an entry into the search index, best-effort.
func (s *Service) index(ctx context.Context, entry *domain.JournalEntry) {
	if err := s.indexer.IndexEntry(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to index entry", "entry_id", entry.ID, "error", err)
	}
}

// sortEntries orders entries by CreatedAt descending. The sort is stable so
// equal timestamps keep their insertion order, newest first.
func sortEntries(entries []domain.JournalEntry) {
	slices.SortStableFunc(entries, func(a, b domain.JournalEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
