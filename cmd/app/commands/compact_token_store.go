package commands

import (
	"errors"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/prepdeck/contentguard/internal/app"
	"github.com/prepdeck/contentguard/internal/config"
)

// RunCompactTokenStore reclaims disk space in the embedded playback token
// store. Expired tokens are dropped by their TTL automatically; this command
// runs Badger's value log garbage collection until there is nothing left to
// rewrite. Intended to run from cron on hosts with a file-backed store.
func RunCompactTokenStore() error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	logger.Info("compacting token store", slog.String("path", cfg.TokenStorePath))

	defer closeContainer(container, logger)

	repo, err := container.TokenRepository()
	if err != nil {
		return fmt.Errorf("failed to open token store: %w", err)
	}

	rounds := 0
	for {
		err := repo.RunValueLogGC()
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			return fmt.Errorf("value log gc failed: %w", err)
		}
		rounds++
	}

	logger.Info("token store compaction completed", slog.Int("rounds", rounds))
	return nil
}
