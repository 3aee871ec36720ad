// Package main provides the entry point for the Tearlog command-line tool.
//
// Usage:
//
//	tearlog [flags] add <content...>              record a dry entry
//	tearlog [flags] cry <intensity> <content...>  record a crying entry
//	tearlog [flags] list [day]                    list entries, optionally for one day
//	tearlog [flags] stats                         print the statistics bundle
//	tearlog [flags] search <query...>             full-text search over entries
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/do/v2"

	"github.com/tearlogapp/tearlog-core/internal/di"
	"github.com/tearlogapp/tearlog-core/internal/di/providers"
	"github.com/tearlogapp/tearlog-core/internal/domain"
	"github.com/tearlogapp/tearlog-core/internal/logger"
	"github.com/tearlogapp/tearlog-core/internal/search"
	"github.com/tearlogapp/tearlog-core/internal/stats"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	journalHandle := do.MustInvoke[*providers.JournalServiceHandle](injector)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		shutdown(injector, log)
		os.Exit(2)
	}

	ctx := context.Background()
	var err error

	switch args[0] {
	case "add":
		err = runAdd(ctx, journalHandle, false, 0, args[1:])
	case "cry":
		err = runCry(ctx, journalHandle, args[1:])
	case "list":
		err = runList(journalHandle, args[1:])
	case "stats":
		err = runStats(do.MustInvoke[*stats.Service](injector))
	case "search":
		err = runSearch(ctx, injector, args[1:])
	default:
		usage()
		err = fmt.Errorf("unknown command: %s", args[0])
	}

	shutdown(injector, log)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tearlog [flags] <add|cry|list|stats|search> [args]")
}

func runAdd(ctx context.Context, h *providers.JournalServiceHandle, wasCrying bool, intensity domain.CryIntensity, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("add requires entry content")
	}

	entry, err := h.Add(ctx, strings.Join(args, " "), wasCrying, time.Now(), intensity)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s\n", entry.ID)
	return nil
}

func runCry(ctx context.Context, h *providers.JournalServiceHandle, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("cry requires an intensity (1-4) and entry content")
	}

	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid intensity %q: %w", args[0], err)
	}
	intensity := domain.CryIntensity(level)
	if !intensity.Valid() || intensity == domain.IntensityNone {
		return fmt.Errorf("intensity must be 1-4, got %d", level)
	}

	return runAdd(ctx, h, true, intensity, args[1:])
}

func runList(h *providers.JournalServiceHandle, args []string) error {
	var entries []domain.JournalEntry
	if len(args) > 0 {
		entries = h.EntriesForDay(args[0])
	} else {
		entries = h.Entries()
	}

	if len(entries) == 0 {
		fmt.Println("No entries")
		return nil
	}

	for _, e := range entries {
		marker := " "
		if e.WasCrying {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %s\n", marker, e.CreatedAt.Format("2006-01-02 15:04"), e.ID, e.Content)
		if e.WasCrying && e.Intensity != domain.IntensityNone {
			fmt.Printf("    intensity: %s\n", e.Intensity.Label())
		}
	}
	return nil
}

func runStats(svc *stats.Service) error {
	result := svc.Compute(domain.All)

	fmt.Printf("Entries:            %d\n", result.TotalEntries)
	fmt.Printf("Total cries:        %d\n", result.TotalCries)
	fmt.Printf("Last 7 days:        %d\n", result.CriesLast7Days)
	fmt.Printf("Last 30 days:       %d\n", result.CriesLast30Days)
	fmt.Printf("Average per week:   %.1f\n", result.AveragePerWeek)
	fmt.Printf("Current cry streak: %d days\n", result.CurrentCryStreak)
	fmt.Printf("Longest cry streak: %d days\n", result.LongestCryStreak)
	fmt.Printf("Current dry streak: %d days\n", result.CurrentDryStreak)
	fmt.Printf("Longest dry streak: %d days\n", result.LongestDryStreak)
	fmt.Printf("Most emotional day: %s\n", result.MostEmotionalDay)
	fmt.Printf("Peak hour:          %s\n", result.PeakHourLabel)
	if result.DominantIntensity != domain.IntensityNone {
		fmt.Printf("Dominant intensity: %s (avg %.1f)\n", result.DominantIntensity.Label(), result.AverageIntensity)
	}

	fmt.Println("\nSix-month trend:")
	for _, m := range result.MonthlyTrend {
		fmt.Printf("  %d-%02d  %d\n", m.Year, int(m.Month), m.Count)
	}
	return nil
}

func runSearch(ctx context.Context, injector do.Injector, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}

	indexHandle := do.MustInvoke[*providers.SearchIndexHandle](injector)
	if indexHandle.Index == nil {
		return fmt.Errorf("search is disabled (set SEARCH_ENABLED=true)")
	}

	params := search.DefaultParams()
	params.Query = strings.Join(args, " ")

	result, err := indexHandle.Index.Search(ctx, params)
	if err != nil {
		return err
	}

	fmt.Printf("%d hits (%dms)\n", result.Total, result.TookMs)
	for _, hit := range result.Hits {
		fmt.Printf("  %s  %s  %s\n", hit.Day, hit.ID, hit.Content)
	}
	return nil
}

func shutdown(injector *do.RootScope, log *logger.Logger) {
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// Wrapper handles close explicitly; the container only shuts down
	// services it instantiated as do.Shutdownable.
	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	if searchHandle, err := do.Invoke[*providers.SearchIndexHandle](injector); err == nil {
		if err := searchHandle.Shutdown(); err != nil {
			log.Error("Failed to close search index", "error", err)
		}
	}
}
