package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/tearlogapp/tearlog-core/internal/journal"
	"github.com/tearlogapp/tearlog-core/internal/logger"
	"github.com/tearlogapp/tearlog-core/internal/stats"
)

// JournalServiceHandle wraps the journal service. Host applications replace
// the default no-op notifier via SetNotifier before driving mutations.
type JournalServiceHandle struct {
	*journal.Service
}

// ProvideJournalService provides the journal service with its collections
// loaded from the persistence adapter.
func ProvideJournalService(i do.Injector) (*JournalServiceHandle, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	svc, err := journal.NewService(context.Background(), storeHandle.Adapter, log.Logger, journal.NewNoopNotifier())
	if err != nil {
		return nil, err
	}

	if indexHandle.Index != nil {
		svc.SetIndexer(indexHandle.Index)
	}

	return &JournalServiceHandle{Service: svc}, nil
}

// ProvideStatsService provides the statistics service.
func ProvideStatsService(i do.Injector) (*stats.Service, error) {
	journalHandle := do.MustInvoke[*JournalServiceHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return stats.NewService(journalHandle.Service, log.Logger), nil
}
