package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prepdeck/contentguard/internal/app"
	"github.com/prepdeck/contentguard/internal/config"
)

// RunCleanDeviceSessions deletes device sessions not seen in the given
// number of days. The concurrent-device check only looks at a short activity
// window, so stale rows are dead weight; this keeps the table small.
func RunCleanDeviceSessions(ctx context.Context, days int, format string, writer io.Writer) error {
	if days <= 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	logger.Info("cleaning stale device sessions", slog.Int("days", days))

	defer closeContainer(container, logger)

	devices, err := container.DeviceSessionRepo()
	if err != nil {
		return fmt.Errorf("failed to initialize device session repository: %w", err)
	}

	before := time.Now().UTC().AddDate(0, 0, -days)
	count, err := devices.DeleteStale(ctx, before)
	if err != nil {
		return fmt.Errorf("failed to delete stale device sessions: %w", err)
	}

	if format == "json" {
		result := map[string]any{"count": count, "days": days}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
	} else {
		_, _ = fmt.Fprintf(writer, "Deleted %d stale device session(s) older than %d day(s)\n", count, days)
	}

	logger.Info("cleanup completed", slog.Int64("count", count), slog.Int("days", days))
	return nil
}
