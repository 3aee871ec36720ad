package stats

import (
	"log/slog"
	"time"

	"github.com/tearlogapp/tearlog-core/internal/domain"
	"github.com/tearlogapp/tearlog-core/internal/journal"
)

// Service snapshots the journal and runs the analyzer over it.
type Service struct {
	journal *journal.Service
	logger  *slog.Logger
}

func NewService(journalService *journal.Service, logger *slog.Logger) *Service {
	return &Service{
		journal: journalService,
		logger:  logger,
	}
}

// Compute runs the analyzer over the current journal state, restricted to
// the given timeframe. Pass domain.All for lifetime statistics.
func (s *Service) Compute(tf domain.Timeframe) *domain.Statistics {
	snap := Snapshot{
		Entries:    s.journal.Entries(),
		CryingDays: s.journal.CryingDays(),
	}

	result := Compute(snap, tf, time.Now())

	if s.logger != nil {
		s.logger.Debug("computed statistics",
			"total_entries", result.TotalEntries,
			"total_cries", result.TotalCries,
			"current_cry_streak", result.CurrentCryStreak,
			"current_dry_streak", result.CurrentDryStreak,
		)
	}

	return result
}
