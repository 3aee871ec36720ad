// Package di provides dependency injection configuration for the Tearlog core.
package di

import (
	"github.com/samber/do/v2"

	"github.com/tearlogapp/tearlog-core/internal/config"
	"github.com/tearlogapp/tearlog-core/internal/di/providers"
	"github.com/tearlogapp/tearlog-core/internal/logger"
	"github.com/tearlogapp/tearlog-core/internal/stats"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Domain services
	do.Provide(injector, providers.ProvideJournalService)
	do.Provide(injector, providers.ProvideStatsService)

	return injector
}

// Bootstrap initializes all services and returns the container ready for
// use. This triggers lazy initialization in dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.JournalServiceHandle](injector)
	_ = do.MustInvoke[*stats.Service](injector)

	// Backfill the search index if it lags behind the journal
	providers.RebuildSearchIfNeeded(injector)

	return nil
}
