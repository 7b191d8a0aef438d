package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubegrid/internal/config"
	"github.com/SeamusWaldron/cubegrid/internal/storage"
)

// loadConfig reads the config file named by --config or the default one.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	for _, key := range cfg.Unknown {
		logger.Warn("unknown config key", "key", key)
	}
	return cfg, nil
}

// journalPath resolves the database path: --db, then the config file,
// then the default.
func journalPath(cfg config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path, nil
	}
	return storage.DefaultDBPath()
}

// openDB opens and migrates the move journal.
func openDB(cfg config.Config) (*storage.DB, error) {
	path, err := journalPath(cfg)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return db, nil
}
