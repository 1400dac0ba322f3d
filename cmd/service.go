package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/internal/config"
	"github.com/jfmyers9/crates/internal/history"
)

// openService loads configuration and builds the catalog service shared by
// the lookup commands. The returned cleanup must be called when done.
func openService() (*catalog.Service, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Discogs.Token == "" {
		return nil, nil, nil, fmt.Errorf("Discogs token not configured. Run 'crates auth' first")
	}

	logger, logCloser := setupLogger(logFile, logLevel)

	var rec catalog.Recorder
	var store *history.Store
	if !noHistory && cfg.HistoryDB != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0755); err != nil {
			logger.Warn().Err(err).Msg("Failed to create history directory")
		} else if store, err = history.NewStore(cfg.HistoryDB); err != nil {
			logger.Warn().Err(err).Str("path", cfg.HistoryDB).Msg("History disabled")
		} else {
			rec = store
		}
	}

	svc, err := catalog.New(catalog.Config{
		Token:     cfg.Discogs.Token,
		UserAgent: cfg.Discogs.UserAgent,
		BaseURL:   cfg.Discogs.BaseURL,
	}, rec, logger)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, nil, nil, err
	}

	cleanup := func() {
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close history")
			}
		}
		if logCloser != nil {
			_ = logCloser.Close()
		}
	}

	return svc, cfg, cleanup, nil
}
