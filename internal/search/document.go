// Package search provides full-text search over journal entries using Bleve.
// The index is a derived structure: the journal store stays the source of
// truth and the index can always be rebuilt from it.
package search

import (
	"github.com/tearlogapp/tearlog-core/internal/daykey"
	"github.com/tearlogapp/tearlog-core/internal/domain"
)

// EntryDocument is the shape an entry takes inside the Bleve index.
type EntryDocument struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Day       string `json:"day"` // local day key, YYYY-MM-DD
	WasCrying bool   `json:"was_crying"`
	Intensity int    `json:"intensity,omitempty"`
	CreatedAt int64  `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names so they
// match the index mapping. Bleve would otherwise index the capitalized Go
// field names.
func (d *EntryDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"content":    d.Content,
		"day":        d.Day,
		"was_crying": d.WasCrying,
		"created_at": d.CreatedAt,
	}
	if d.Intensity > 0 {
		m["intensity"] = d.Intensity
	}
	return m
}

// EntryToDocument converts a journal entry to its index document.
func EntryToDocument(entry *domain.JournalEntry) *EntryDocument {
	return &EntryDocument{
		ID:        entry.ID,
		Content:   entry.Content,
		Day:       daykey.Format(entry.CreatedAt),
		WasCrying: entry.WasCrying,
		Intensity: int(entry.Intensity),
		CreatedAt: entry.CreatedAt.UnixMilli(),
	}
}
