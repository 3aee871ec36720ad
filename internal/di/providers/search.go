package providers

import (
	"github.com/samber/do/v2"

	"github.com/tearlogapp/tearlog-core/internal/config"
	"github.com/tearlogapp/tearlog-core/internal/logger"
	"github.com/tearlogapp/tearlog-core/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
// Index is nil when search is disabled by configuration.
type SearchIndexHandle struct {
	Index *search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	if h.Index == nil {
		return nil
	}
	return h.Index.Close()
}

// ProvideSearchIndex provides the Bleve entry index, or an empty handle
// when search is disabled.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Info("Search disabled by configuration")
		return &SearchIndexHandle{}, nil
	}

	index, err := search.NewIndex(search.Options{
		DataPath: cfg.Search.IndexPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// RebuildSearchIfNeeded reindexes all entries when the index is empty but
// the journal is not. Should be called after all services are wired.
func RebuildSearchIfNeeded(i do.Injector) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	if indexHandle.Index == nil {
		return
	}

	journalSvc := do.MustInvoke[*JournalServiceHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.Index.DocumentCount()
	if docCount > 0 {
		return
	}

	entries := journalSvc.Entries()
	if len(entries) == 0 {
		return
	}

	log.Info("Search index is empty but entries exist, triggering reindex",
		"entry_count", len(entries),
	)

	go func() {
		if err := indexHandle.Index.Rebuild(entries); err != nil {
			log.Error("Search reindex failed", "error", err)
		}
	}()
}
