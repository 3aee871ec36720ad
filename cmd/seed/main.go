// Package main provides a tool to seed the journal with test entries.
//
// It writes through the journal service so the crying-day aggregate is
// reconciled the same way real mutations would reconcile it, which makes
// the seeded data usable for exercising stats and streak features.
//
// Usage:
//
//	DB_PATH=~/Tearlog/data/db go run ./cmd/seed
//	DB_PATH=~/Tearlog/data/db go run ./cmd/seed --days 60 --wipe
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/tearlogapp/tearlog-core/internal/domain"
	"github.com/tearlogapp/tearlog-core/internal/journal"
	"github.com/tearlogapp/tearlog-core/internal/store"
)

var (
	days = flag.Int("days", 30, "How many days back to seed")
	wipe = flag.Bool("wipe", false, "Replace existing collections instead of appending")
)

var cryingContents = []string{
	"cried during a phone call with mom",
	"that one song came on and it was over",
	"rough performance review, held it together until the car",
	"rewatched the finale, knew what was coming, cried anyway",
	"no particular reason, just needed it",
	"dropped my lunch and it was the last straw",
}

var calmContents = []string{
	"quiet day, long walk after work",
	"good dinner with friends",
	"finished the book I'd been putting off",
	"nothing to report, slept well",
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Tearlog/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *wipe {
		if err := s.SaveEntries(ctx, nil); err != nil {
			log.Fatalf("Failed to wipe entries: %v", err)
		}
		if err := s.SaveCryingDays(ctx, nil); err != nil {
			log.Fatalf("Failed to wipe crying days: %v", err)
		}
		fmt.Println("Wiped existing collections")
	}

	svc, err := journal.NewService(ctx, s, nil, journal.NewNoopNotifier())
	if err != nil {
		log.Fatalf("Failed to load journal: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()
	created := 0
	cries := 0

	for day := *days - 1; day >= 0; day-- {
		// Roughly two thirds of days get an entry; always cover today and
		// yesterday so there is a live streak to look at.
		if day > 1 && rng.Float32() > 0.66 {
			continue
		}

		at := now.Add(-time.Duration(day) * 24 * time.Hour)
		at = time.Date(at.Year(), at.Month(), at.Day(),
			8+rng.Intn(14), rng.Intn(60), 0, 0, time.Local)

		wasCrying := rng.Float32() < 0.4
		content := calmContents[rng.Intn(len(calmContents))]
		intensity := domain.IntensityNone
		if wasCrying {
			content = cryingContents[rng.Intn(len(cryingContents))]
			intensity = domain.CryIntensity(1 + rng.Intn(4))
			cries++
		}

		if _, err := svc.Add(ctx, content, wasCrying, at, intensity); err != nil {
			log.Fatalf("Failed to add entry: %v", err)
		}
		created++

		// Occasionally a second entry on the same day
		if rng.Float32() < 0.2 {
			later := at.Add(time.Duration(1+rng.Intn(5)) * time.Hour)
			if _, err := svc.Add(ctx, calmContents[rng.Intn(len(calmContents))], false, later, domain.IntensityNone); err != nil {
				log.Fatalf("Failed to add entry: %v", err)
			}
			created++
		}
	}

	fmt.Printf("\nSeeded %d entries (%d crying) across %d days\n", created, cries, *days)
	fmt.Printf("Crying-day buckets: %d\n", len(svc.CryingDays()))
}
