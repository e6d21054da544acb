package statistics

import (
	"context"
	"log/slog"

	"codetrack-backend/services/statistics/db"
)

// recordFailure upserts the (platform, username) failure row for later
// triage. It never returns an error: a broken recorder must not mask
// the scraping failure that led here.
func (s *Service) recordFailure(ctx context.Context, platform, username, message string) {
	err := s.qry.UpsertScrapeFailure(ctx, db.UpsertScrapeFailureParams{
		Platform:        platform,
		Username:        username,
		LastError:       message,
		LastAttemptedAt: s.now().Unix(),
	})
	if err != nil {
		slog.ErrorContext(
			ctx, "record scrape failure",
			"platform", platform,
			"username", username,
			"err", err,
		)
	}
}
