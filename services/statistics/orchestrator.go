package statistics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codetrack-backend/lib/scrapeerr"
	"codetrack-backend/lib/statcache"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ScrapeProfile walks the platform's tier list until one yields a valid
// result: in-process cache, then fast, slow and browser strategies.
// Every network tier waits on the platform's rate limiter first. The
// caller is responsible for persisting the returned record, the
// orchestrator only writes the in-process cache.
func (s *Service) ScrapeProfile(ctx context.Context, platformName, username string) (StatisticsRecord, error) {
	ctx, span := tracer.Start(ctx, "ScrapeProfile")
	defer span.End()
	span.SetAttributes(
		attribute.String("platform", platformName),
		attribute.String("username", username),
	)

	platform, ok := s.registry.Get(platformName)
	if !ok {
		err := fmt.Errorf("platform %q is not registered", platformName)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StatisticsRecord{}, err
	}

	cacheKey := statcache.Key(platformName, username)
	if rec, hit := s.memcache.Get(cacheKey); hit {
		span.AddEvent("served from in-process cache")
		return rec, nil
	}

	var errlist []error
	for _, tier := range platform.Tiers {
		err := s.limiter.Await(ctx, platformName)
		if err != nil {
			// only fails when ctx is done, do not keep hammering tiers
			// after the caller gave up
			span.RecordError(err)
			span.SetStatus(codes.Error, "rate limiter wait aborted")
			return StatisticsRecord{}, err
		}

		raw, err := tier.Fetch(ctx, username)
		if err != nil {
			slog.WarnContext(
				ctx, "scrape tier failed",
				"platform", platformName,
				"username", username,
				"tier", tier.Name,
				"err", err,
			)
			errlist = append(errlist, fmt.Errorf("%s: %w", tier.Name, err))
			continue
		}

		rec, err := Normalize(raw)
		if err != nil {
			errlist = append(errlist, fmt.Errorf("%s: %w", tier.Name, err))
			continue
		}
		rec.ProfileUrl = BuildProfileUrl(platform.ProfileUrlPattern, username)

		err = validateRecord(platform, rec)
		if err != nil {
			slog.WarnContext(
				ctx, "scrape tier returned an implausible payload",
				"platform", platformName,
				"username", username,
				"tier", tier.Name,
				"err", err,
			)
			errlist = append(errlist, fmt.Errorf("%s: %w", tier.Name, err))
			continue
		}

		rec.CapturedAt = s.now()
		s.memcache.Add(cacheKey, rec)
		span.SetAttributes(attribute.String("served_by", tier.Name))
		return rec, nil
	}

	joined := errors.Join(errlist...)
	s.recordFailure(ctx, platformName, username, joined.Error())

	err := scrapeerr.New(
		scrapeerr.KindAllTiersFailed, platformName, username,
		fmt.Errorf("profile could not be fetched from any tier, check that the username is correct: %w", joined),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, "all tiers failed")
	return StatisticsRecord{}, err
}
