package providers

import (
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/tearlogapp/tearlog-core/internal/config"
	"github.com/tearlogapp/tearlog-core/internal/logger"
	"github.com/tearlogapp/tearlog-core/internal/store"
	"github.com/tearlogapp/tearlog-core/internal/store/sqlite"
)

// StoreHandle wraps the persistence adapter with shutdown capability.
type StoreHandle struct {
	store.Adapter
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the persistence adapter selected by configuration.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var adapter store.Adapter
	var err error

	switch cfg.Storage.Backend {
	case config.BackendBadger:
		adapter, err = store.New(filepath.Join(cfg.Storage.DataPath, "db"), log.Logger)
	case config.BackendSQLite:
		adapter, err = sqlite.Open(filepath.Join(cfg.Storage.DataPath, "journal.db"), log.Logger)
	default:
		err = fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Storage initialized",
		"backend", cfg.Storage.Backend,
		"path", cfg.Storage.DataPath,
	)

	return &StoreHandle{Adapter: adapter}, nil
}
