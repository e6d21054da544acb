package statistics

import (
	"context"
	"log/slog"
	"time"
)

// PreloadDaemon periodically warms the persisted cache for the whole
// cohort so interactive reads rarely pay scraping latency. It only runs
// full passes during off-peak hours and leans on the persisted TTL, so
// a pass where everything is still fresh is nearly free. Blocks until
// ctx is done.
func (s *Service) PreloadDaemon(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		hour := s.now().Hour()
		if hour >= 7 && hour < 22 {
			continue
		}

		students, err := s.qry.GetAllStudents(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "preload: list students", "err", err)
			continue
		}
		if len(students) == 0 {
			continue
		}

		identifiers := make([]string, 0, len(students))
		for _, student := range students {
			identifiers = append(identifiers, student.RollNumber)
		}

		slog.InfoContext(ctx, "preload pass starting", "students", len(identifiers))
		result, err := s.SyncStatistics(ctx, identifiers, false)
		if err != nil {
			slog.ErrorContext(ctx, "preload pass failed", "err", err)
			continue
		}
		slog.InfoContext(
			ctx, "preload pass finished",
			"batch_id", result.BatchId,
			"processed", result.ProcessedCount,
			"total", result.TotalRequested,
			"cached", result.Cached,
		)
	}
}
