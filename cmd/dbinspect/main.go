// Package main dumps the persisted journal collections and cross-checks the
// crying-day aggregate against the entries it was derived from.
//
// Usage:
//
//	DB_PATH=~/Tearlog/data/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/tearlogapp/tearlog-core/internal/daykey"
	"github.com/tearlogapp/tearlog-core/internal/domain"
	"github.com/tearlogapp/tearlog-core/internal/store"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Tearlog/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	var entries []domain.JournalEntry
	var days []domain.CryingDay

	err = db.View(func(txn *badger.Txn) error {
		if err := readKey(txn, store.KeyEntries, &entries); err != nil {
			return err
		}
		return readKey(txn, store.KeyCryingDays, &days)
	})
	if err != nil {
		log.Fatalf("Failed to read collections: %v", err)
	}

	fmt.Println("=== Journal Inspection ===")
	fmt.Println()

	cryingEntries := 0
	for _, e := range entries {
		if e.WasCrying {
			cryingEntries++
		}
	}

	fmt.Printf("Entries: %d (%d crying)\n", len(entries), cryingEntries)
	for i, e := range entries {
		if i >= 5 {
			fmt.Printf("  ... and %d more entries\n", len(entries)-5)
			break
		}
		marker := " "
		if e.WasCrying {
			marker = "*"
		}
		fmt.Printf("  %s %s  %s  %q\n", marker, e.ID, e.CreatedAt.Format("2006-01-02 15:04"), truncate(e.Content, 40))
	}
	fmt.Println()

	fmt.Printf("Crying-day buckets: %d\n", len(days))
	sorted := make([]domain.CryingDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	for _, d := range sorted {
		fmt.Printf("  %s  count=%d  last=%s\n", d.Date, d.Count, d.Timestamp.Format("15:04"))
	}
	fmt.Println()

	// Recompute the aggregate from entries and flag any drift.
	expected := make(map[string]int)
	for _, e := range entries {
		if e.WasCrying {
			expected[daykey.Format(e.CreatedAt)]++
		}
	}

	drift := 0
	for _, d := range sorted {
		if expected[d.Date] != d.Count {
			fmt.Printf("DRIFT: %s has count=%d, entries say %d\n", d.Date, d.Count, expected[d.Date])
			drift++
		}
		delete(expected, d.Date)
	}
	for date, count := range expected {
		fmt.Printf("DRIFT: %s missing from aggregate, entries say %d\n", date, count)
		drift++
	}

	fmt.Println("=== Summary ===")
	if drift == 0 {
		fmt.Println("Aggregate is consistent with entries")
	} else {
		fmt.Printf("Aggregate has %d inconsistent buckets\n", drift)
	}
}

func readKey[T any](txn *badger.Txn, key string, out *T) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
