package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/tearlogapp/tearlog-core/internal/domain"
)

// Index wraps a Bleve index over journal entries.
//
// All public methods are safe for concurrent use. The mutex guards the
// index handle, which gets swapped out during Rebuild.
type Index struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Logger for operations (stderr text if nil)
}

// mappingVersion is incremented whenever the index mapping changes.
// A mismatch on startup drops the index so it can be rebuilt with the
// current mapping.
const mappingVersion = "1"

// NewIndex creates or opens an entry search index under opts.DataPath.
// A corrupted index or one built with an outdated mapping is removed and
// recreated empty; the caller rebuilds it from the journal.
func NewIndex(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexPath := filepath.Join(opts.DataPath, "entries.bleve")
	versionPath := filepath.Join(opts.DataPath, "entries.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil {
			logger.Info("search index has no version file, will rebuild with current mapping",
				"new_version", mappingVersion,
			)
			needsRebuild = true
		} else if string(existingVersion) != mappingVersion {
			logger.Info("search index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		indexMapping := buildIndexMapping()
		index, err = bleve.New(indexPath, indexMapping)
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0644); writeErr != nil {
			logger.Warn("failed to write search version file", "error", writeErr)
		}
		logger.Info("created new search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing search index", "path", indexPath)
	}

	return &Index{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexEntry indexes a single entry, replacing any previous document with
// the same ID. Satisfies the journal service's indexer hook.
func (s *Index) IndexEntry(_ context.Context, entry *domain.JournalEntry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := EntryToDocument(entry)
	return s.index.Index(doc.ID, doc.ToMap())
}

// RemoveEntry removes an entry's document from the index.
func (s *Index) RemoveEntry(_ context.Context, entryID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(entryID)
}

// IndexEntries indexes entries in batches. Used for the initial index build
// and rebuilds; much faster than indexing one at a time.
func (s *Index) IndexEntries(entries []domain.JournalEntry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500

	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))
		chunk := entries[i:end]

		batch := s.index.NewBatch()
		for j := range chunk {
			doc := EntryToDocument(&chunk[j])
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}

		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	return nil
}

// DocumentCount returns the total number of indexed entries.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops the index and reindexes the given entries from scratch.
// Takes an exclusive lock; searches block until the rebuild finishes.
func (s *Index) Rebuild(entries []domain.JournalEntry) error {
	s.mu.Lock()

	if err := s.index.Close(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("remove index: %w", err)
	}

	indexMapping := buildIndexMapping()
	index, err := bleve.New(s.path, indexMapping)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index
	s.mu.Unlock()

	if err := s.IndexEntries(entries); err != nil {
		return fmt.Errorf("reindex entries: %w", err)
	}

	s.logger.Info("rebuilt search index", "path", s.path, "entries", len(entries))
	return nil
}
