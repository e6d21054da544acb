package statistics

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codetrack-backend/lib/ratelimit"
	"codetrack-backend/lib/statcache"
	"codetrack-backend/services/statistics/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/statistics")

const (
	SyncStatusPending = "pending"
	SyncStatusSyncing = "syncing"
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

type Options struct {
	// PersistedTTL bounds how old a cached_statistics row may be before
	// a non-forced sync scrapes again.
	PersistedTTL time.Duration
	// MemoryTTL and MemorySize configure the in-process cache.
	MemoryTTL  time.Duration
	MemorySize int
	// RateInterval is the minimum spacing between requests to the same
	// platform.
	RateInterval time.Duration
	// ChunkSize and ChunkPause shape batch processing: chunks run
	// sequentially, students within a chunk concurrently.
	ChunkSize  int
	ChunkPause time.Duration
}

func (o *Options) setDefaults() {
	if o.PersistedTTL <= 0 {
		o.PersistedTTL = time.Hour
	}
	if o.MemoryTTL <= 0 {
		o.MemoryTTL = statcache.DefaultTTL
	}
	if o.MemorySize <= 0 {
		o.MemorySize = statcache.DefaultSize
	}
	if o.RateInterval <= 0 {
		o.RateInterval = time.Second
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = 20
	}
	if o.ChunkPause <= 0 {
		o.ChunkPause = 2 * time.Second
	}
}

type Service struct {
	db       *sql.DB
	qry      *db.Queries
	registry *Registry
	limiter  *ratelimit.Keyed
	memcache *statcache.Cache[StatisticsRecord]
	opts     Options

	// now is swapped out by tests to control TTL decisions.
	now func() time.Time
}

func NewService(database *sql.DB, registry *Registry, opts Options) *Service {
	opts.setDefaults()
	return &Service{
		db:       database,
		qry:      db.New(database),
		registry: registry,
		limiter:  ratelimit.NewKeyed(opts.RateInterval),
		memcache: statcache.New[StatisticsRecord](opts.MemorySize, opts.MemoryTTL),
		opts:     opts,
		now:      time.Now,
	}
}

// SeedPlatforms upserts the registry's platforms into the store so
// profile rows can reference them.
func (s *Service) SeedPlatforms(ctx context.Context) error {
	for _, name := range s.registry.Names() {
		platform, _ := s.registry.Get(name)
		err := s.qry.CreatePlatform(ctx, db.CreatePlatformParams{
			Name:              platform.Name,
			DisplayName:       platform.DisplayName,
			BaseUrl:           platform.BaseUrl,
			ProfileUrlPattern: platform.ProfileUrlPattern,
			Active:            1,
		})
		if err != nil {
			return fmt.Errorf("seed platform %q: %w", name, err)
		}
	}
	return nil
}

// CreateStudent adds a roster entry. Roll numbers are unique.
func (s *Service) CreateStudent(ctx context.Context, rollNumber, name string) (db.Student, error) {
	if rollNumber == "" {
		return db.Student{}, fmt.Errorf("roll number must not be empty")
	}
	return s.qry.CreateStudent(ctx, db.CreateStudentParams{
		RollNumber: rollNumber,
		Name:       name,
	})
}

func (s *Service) ListStudents(ctx context.Context) ([]db.Student, error) {
	return s.qry.GetAllStudents(ctx)
}

func (s *Service) StudentByRollNumber(ctx context.Context, rollNumber string) (db.Student, error) {
	return s.qry.GetStudentByRollNumber(ctx, rollNumber)
}

// RegisterProfile links a student to a platform username. The profile
// url is derived from the platform's pattern; duplicates are rejected
// by the store's primary key.
func (s *Service) RegisterProfile(ctx context.Context, studentId int64, platformName, username string) (db.Profile, error) {
	ctx, span := tracer.Start(ctx, "RegisterProfile")
	defer span.End()

	if username == "" {
		return db.Profile{}, fmt.Errorf("username must not be empty")
	}
	platform, ok := s.registry.Get(platformName)
	if !ok {
		return db.Profile{}, fmt.Errorf("platform %q is not registered", platformName)
	}
	if _, err := s.qry.GetStudent(ctx, studentId); err != nil {
		return db.Profile{}, fmt.Errorf("look up student %d: %w", studentId, err)
	}

	profileUrl := BuildProfileUrl(platform.ProfileUrlPattern, username)
	err := s.qry.CreateProfile(ctx, db.CreateProfileParams{
		StudentID:  studentId,
		Platform:   platformName,
		Username:   username,
		ProfileUrl: profileUrl,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	return s.qry.GetProfile(ctx, db.GetProfileParams{
		StudentID: studentId,
		Platform:  platformName,
	})
}

// DeleteProfile removes the profile link plus any cached statistics
// rows tied to it, and drops the in-process entry.
func (s *Service) DeleteProfile(ctx context.Context, studentId int64, platformName string) error {
	ctx, span := tracer.Start(ctx, "DeleteProfile")
	defer span.End()

	profile, err := s.qry.GetProfile(ctx, db.GetProfileParams{
		StudentID: studentId,
		Platform:  platformName,
	})
	if err != nil {
		return fmt.Errorf("look up profile: %w", err)
	}

	err = s.qry.DeleteCachedStatistics(ctx, db.DeleteCachedStatisticsParams{
		StudentID: studentId,
		Platform:  platformName,
	})
	if err != nil {
		return fmt.Errorf("delete cached statistics: %w", err)
	}
	err = s.qry.DeleteProfile(ctx, db.DeleteProfileParams{
		StudentID: studentId,
		Platform:  platformName,
	})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	s.memcache.Remove(statcache.Key(platformName, profile.Username))
	return nil
}

// SyncProfile refreshes a single (student, platform) pair regardless of
// cache age, recording sync status on the profile row.
func (s *Service) SyncProfile(ctx context.Context, studentId int64, platformName string) (StatisticsRecord, error) {
	ctx, span := tracer.Start(ctx, "SyncProfile")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("student_id", studentId),
		attribute.String("platform", platformName),
	)

	profile, err := s.qry.GetProfile(ctx, db.GetProfileParams{
		StudentID: studentId,
		Platform:  platformName,
	})
	if err != nil {
		return StatisticsRecord{}, fmt.Errorf("look up profile: %w", err)
	}
	return s.refreshProfile(ctx, profile, "")
}

// GetStatistics returns the freshest known record per platform for one
// student, scraping only where the persisted cache is stale or missing
// (always scraping when force is set). A platform that cannot be
// refreshed and has no cached fallback maps to nil.
func (s *Service) GetStatistics(ctx context.Context, studentId int64, force bool) (map[string]*StatisticsRecord, error) {
	ctx, span := tracer.Start(ctx, "GetStatistics")
	defer span.End()
	span.SetAttributes(attribute.Int64("student_id", studentId))

	profiles, err := s.qry.GetProfiles(ctx, studentId)
	if err != nil {
		return nil, fmt.Errorf("look up profiles: %w", err)
	}

	out := map[string]*StatisticsRecord{}
	for _, profile := range profiles {
		rec, _, err := s.statisticsForProfile(ctx, profile, "", force)
		if err != nil {
			out[profile.Platform] = nil
			continue
		}
		out[profile.Platform] = &rec
	}
	return out, nil
}

// statisticsForProfile implements the persisted-cache decision shared
// by the read path and the batch coordinator: reuse a fresh enough row,
// otherwise scrape and persist. fresh reports whether a scrape ran.
func (s *Service) statisticsForProfile(ctx context.Context, profile db.Profile, batchId string, force bool) (rec StatisticsRecord, fresh bool, err error) {
	if !force {
		cached, err := s.qry.GetCachedStatisticsForPlatform(ctx, db.GetCachedStatisticsForPlatformParams{
			StudentID: profile.StudentID,
			Platform:  profile.Platform,
		})
		if err == nil {
			age := s.now().Sub(time.Unix(cached.FetchedAt, 0))
			if age < s.opts.PersistedTTL {
				var rec StatisticsRecord
				if err := json.Unmarshal([]byte(cached.Record), &rec); err == nil {
					if batchId != "" {
						err = s.qry.CreateBatchCachedStatistics(ctx, db.CreateBatchCachedStatisticsParams{
							BatchID:   batchId,
							StudentID: profile.StudentID,
							Platform:  profile.Platform,
							Record:    cached.Record,
							FetchedAt: cached.FetchedAt,
						})
						if err != nil {
							return StatisticsRecord{}, false, fmt.Errorf("tag batch row: %w", err)
						}
					}
					return rec, false, nil
				}
				// a corrupt row falls through to a fresh scrape
			}
		} else if !errors.Is(err, sql.ErrNoRows) {
			return StatisticsRecord{}, false, fmt.Errorf("read cached statistics: %w", err)
		}
	}

	rec, err = s.refreshProfile(ctx, profile, batchId)
	return rec, true, err
}

// refreshProfile scrapes one profile and persists the outcome: record +
// cache rows on success, sync_error on the profile row on failure. The
// in-process entry is evicted first so a refresh always reaches the
// tiers instead of echoing a recent scrape.
func (s *Service) refreshProfile(ctx context.Context, profile db.Profile, batchId string) (StatisticsRecord, error) {
	s.memcache.Remove(statcache.Key(profile.Platform, profile.Username))

	markErr := s.qry.UpdateProfileSync(ctx, db.UpdateProfileSyncParams{
		SyncStatus:   SyncStatusSyncing,
		SyncError:    "",
		LastSyncedAt: profile.LastSyncedAt,
		StudentID:    profile.StudentID,
		Platform:     profile.Platform,
	})
	if markErr != nil {
		return StatisticsRecord{}, fmt.Errorf("mark profile syncing: %w", markErr)
	}

	rec, err := s.ScrapeProfile(ctx, profile.Platform, profile.Username)
	if err != nil {
		_ = s.qry.UpdateProfileSync(ctx, db.UpdateProfileSyncParams{
			SyncStatus:   SyncStatusFailed,
			SyncError:    err.Error(),
			LastSyncedAt: profile.LastSyncedAt,
			StudentID:    profile.StudentID,
			Platform:     profile.Platform,
		})
		return StatisticsRecord{}, err
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return StatisticsRecord{}, fmt.Errorf("encode record: %w", err)
	}
	fetchedAt := rec.CapturedAt.Unix()

	err = s.qry.UpsertCachedStatistics(ctx, db.UpsertCachedStatisticsParams{
		StudentID: profile.StudentID,
		Platform:  profile.Platform,
		Record:    string(raw),
		FetchedAt: fetchedAt,
	})
	if err != nil {
		return StatisticsRecord{}, fmt.Errorf("persist statistics: %w", err)
	}
	if batchId != "" {
		err = s.qry.CreateBatchCachedStatistics(ctx, db.CreateBatchCachedStatisticsParams{
			BatchID:   batchId,
			StudentID: profile.StudentID,
			Platform:  profile.Platform,
			Record:    string(raw),
			FetchedAt: fetchedAt,
		})
		if err != nil {
			return StatisticsRecord{}, fmt.Errorf("tag batch row: %w", err)
		}
	}

	err = s.qry.UpdateProfileSync(ctx, db.UpdateProfileSyncParams{
		SyncStatus:   SyncStatusSuccess,
		SyncError:    "",
		LastSyncedAt: fetchedAt,
		StudentID:    profile.StudentID,
		Platform:     profile.Platform,
	})
	if err != nil {
		return StatisticsRecord{}, fmt.Errorf("mark profile synced: %w", err)
	}
	return rec, nil
}

// BatchRecord is one persisted row of a past batch run.
type BatchRecord struct {
	StudentId int64
	Record    StatisticsRecord
	FetchedAt time.Time
}

// GetBatch replays the statistics captured under a past batch id.
func (s *Service) GetBatch(ctx context.Context, batchId string) ([]BatchRecord, error) {
	ctx, span := tracer.Start(ctx, "GetBatch")
	defer span.End()

	rows, err := s.qry.GetBatchCachedStatistics(ctx, batchId)
	if err != nil {
		return nil, fmt.Errorf("read batch rows: %w", err)
	}

	out := make([]BatchRecord, 0, len(rows))
	for _, row := range rows {
		var rec StatisticsRecord
		if err := json.Unmarshal([]byte(row.Record), &rec); err != nil {
			return nil, fmt.Errorf("decode batch row (%d, %s): %w", row.StudentID, row.Platform, err)
		}
		out = append(out, BatchRecord{
			StudentId: row.StudentID,
			Record:    rec,
			FetchedAt: time.Unix(row.FetchedAt, 0),
		})
	}
	return out, nil
}
