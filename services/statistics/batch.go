package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"codetrack-backend/services/statistics/db"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BatchResult is the outcome of one SyncStatistics run. Results is
// keyed by the caller's original identifier strings, never by the
// resolved internal keys. A nil inner map means the identifier could
// not be resolved or the student's profiles could not be read; a nil
// record inside a map means that one platform failed.
type BatchResult struct {
	BatchId        string
	Results        map[string]map[string]*StatisticsRecord
	ProcessedCount int
	TotalRequested int
	// Cached is set when every returned record came out of the
	// persisted cache, meaning no network scraping happened.
	Cached bool
}

type batchEntry struct {
	identifier string
	studentId  int64
}

// SyncStatistics refreshes statistics for a cohort. Identifiers may mix
// roll numbers and internal student keys (digit-only strings); roll
// numbers are resolved in one batched lookup. Students are processed in
// sequential chunks with concurrency inside each chunk, and a failure
// for one student or platform never aborts the rest.
func (s *Service) SyncStatistics(ctx context.Context, identifiers []string, forceRefresh bool) (BatchResult, error) {
	ctx, span := tracer.Start(ctx, "SyncStatistics")
	defer span.End()
	span.SetAttributes(
		attribute.Int("identifiers", len(identifiers)),
		attribute.Bool("force_refresh", forceRefresh),
	)

	if len(identifiers) == 0 {
		err := fmt.Errorf("no identifiers given")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return BatchResult{}, err
	}

	result := BatchResult{
		BatchId:        uuid.NewString(),
		Results:        map[string]map[string]*StatisticsRecord{},
		TotalRequested: len(identifiers),
	}

	entries, err := s.resolveIdentifiers(ctx, identifiers, &result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return BatchResult{}, err
	}

	var mu sync.Mutex
	scraped := false

	for start := 0; start < len(entries); start += s.opts.ChunkSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				span.AddEvent("batch cut short by cancellation")
				return result, nil
			case <-time.After(s.opts.ChunkPause):
			}
		}

		end := min(start+s.opts.ChunkSize, len(entries))

		var wg sync.WaitGroup
		for _, entry := range entries[start:end] {
			wg.Add(1)
			go func(entry batchEntry) {
				defer wg.Done()

				records, ok, didScrape := s.syncStudent(ctx, entry.studentId, result.BatchId, forceRefresh)

				mu.Lock()
				defer mu.Unlock()
				result.Results[entry.identifier] = records
				if ok {
					result.ProcessedCount++
				}
				if didScrape {
					scraped = true
				}
			}(entry)
		}
		wg.Wait()
	}

	result.Cached = !scraped
	span.SetAttributes(attribute.Int("processed", result.ProcessedCount))
	return result, nil
}

// resolveIdentifiers splits the input into internal keys (digit-only)
// and roll numbers, resolves the roll numbers with one batched query,
// and records unresolvable identifiers directly on the result.
func (s *Service) resolveIdentifiers(ctx context.Context, identifiers []string, result *BatchResult) ([]batchEntry, error) {
	var entries []batchEntry
	var rolls []string
	rollOwners := map[string][]string{}

	for _, identifier := range identifiers {
		if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
			entries = append(entries, batchEntry{identifier: identifier, studentId: id})
			continue
		}
		if len(rollOwners[identifier]) == 0 {
			rolls = append(rolls, identifier)
		}
		rollOwners[identifier] = append(rollOwners[identifier], identifier)
	}

	if len(rolls) > 0 {
		students, err := s.qry.GetStudentsByRollNumbers(ctx, rolls)
		if err != nil {
			return nil, fmt.Errorf("resolve roll numbers: %w", err)
		}
		byRoll := map[string]db.Student{}
		for _, student := range students {
			byRoll[student.RollNumber] = student
		}
		for _, roll := range rolls {
			student, found := byRoll[roll]
			for _, original := range rollOwners[roll] {
				if !found {
					slog.WarnContext(ctx, "unknown roll number in batch", "roll_number", roll)
					result.Results[original] = nil
					continue
				}
				entries = append(entries, batchEntry{identifier: original, studentId: student.ID})
			}
		}
	}
	return entries, nil
}

// syncStudent refreshes every registered profile of one student. The
// returned bool reports whether all platforms succeeded; didScrape
// reports whether any network scraping happened (vs. pure cache reads).
func (s *Service) syncStudent(ctx context.Context, studentId int64, batchId string, force bool) (records map[string]*StatisticsRecord, ok, didScrape bool) {
	profiles, err := s.qry.GetProfiles(ctx, studentId)
	if err != nil {
		slog.ErrorContext(ctx, "read student profiles", "student_id", studentId, "err", err)
		return nil, false, false
	}

	records = map[string]*StatisticsRecord{}
	ok = true
	for _, profile := range profiles {
		if _, registered := s.registry.Get(profile.Platform); !registered {
			slog.WarnContext(
				ctx, "profile references an unregistered platform",
				"student_id", studentId,
				"platform", profile.Platform,
			)
			continue
		}

		rec, fresh, err := s.statisticsForProfile(ctx, profile, batchId, force)
		if fresh {
			didScrape = true
		}
		if err != nil {
			slog.WarnContext(
				ctx, "platform sync failed for student",
				"student_id", studentId,
				"platform", profile.Platform,
				"username", profile.Username,
				"err", err,
			)
			records[profile.Platform] = nil
			ok = false
			continue
		}
		records[profile.Platform] = &rec
	}
	return records, ok, didScrape
}
