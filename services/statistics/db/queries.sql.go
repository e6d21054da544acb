package db

import (
	"context"
)

const createStudent = `-- name: CreateStudent :one
INSERT INTO students (roll_number, name)
VALUES (?, ?)
RETURNING id, roll_number, name
`

type CreateStudentParams struct {
	RollNumber string
	Name       string
}

func (q *Queries) CreateStudent(ctx context.Context, arg CreateStudentParams) (Student, error) {
	row := q.db.QueryRowContext(ctx, createStudent, arg.RollNumber, arg.Name)
	var i Student
	err := row.Scan(&i.ID, &i.RollNumber, &i.Name)
	return i, err
}

const getStudent = `-- name: GetStudent :one
SELECT id, roll_number, name FROM students WHERE id = ?
`

func (q *Queries) GetStudent(ctx context.Context, id int64) (Student, error) {
	row := q.db.QueryRowContext(ctx, getStudent, id)
	var i Student
	err := row.Scan(&i.ID, &i.RollNumber, &i.Name)
	return i, err
}

const getStudentByRollNumber = `-- name: GetStudentByRollNumber :one
SELECT id, roll_number, name FROM students WHERE roll_number = ?
`

func (q *Queries) GetStudentByRollNumber(ctx context.Context, rollNumber string) (Student, error) {
	row := q.db.QueryRowContext(ctx, getStudentByRollNumber, rollNumber)
	var i Student
	err := row.Scan(&i.ID, &i.RollNumber, &i.Name)
	return i, err
}

const getAllStudents = `-- name: GetAllStudents :many
SELECT id, roll_number, name FROM students ORDER BY id
`

func (q *Queries) GetAllStudents(ctx context.Context) ([]Student, error) {
	rows, err := q.db.QueryContext(ctx, getAllStudents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Student
	for rows.Next() {
		var i Student
		if err := rows.Scan(&i.ID, &i.RollNumber, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createPlatform = `-- name: CreatePlatform :exec
INSERT INTO platforms (name, display_name, base_url, profile_url_pattern, active)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET
    display_name = excluded.display_name,
    base_url = excluded.base_url,
    profile_url_pattern = excluded.profile_url_pattern,
    active = excluded.active
`

type CreatePlatformParams struct {
	Name              string
	DisplayName       string
	BaseUrl           string
	ProfileUrlPattern string
	Active            int64
}

func (q *Queries) CreatePlatform(ctx context.Context, arg CreatePlatformParams) error {
	_, err := q.db.ExecContext(ctx, createPlatform,
		arg.Name,
		arg.DisplayName,
		arg.BaseUrl,
		arg.ProfileUrlPattern,
		arg.Active,
	)
	return err
}

const getPlatform = `-- name: GetPlatform :one
SELECT name, display_name, base_url, profile_url_pattern, active
FROM platforms WHERE name = ?
`

func (q *Queries) GetPlatform(ctx context.Context, name string) (Platform, error) {
	row := q.db.QueryRowContext(ctx, getPlatform, name)
	var i Platform
	err := row.Scan(&i.Name, &i.DisplayName, &i.BaseUrl, &i.ProfileUrlPattern, &i.Active)
	return i, err
}

const getActivePlatforms = `-- name: GetActivePlatforms :many
SELECT name, display_name, base_url, profile_url_pattern, active
FROM platforms WHERE active = 1 ORDER BY name
`

func (q *Queries) GetActivePlatforms(ctx context.Context) ([]Platform, error) {
	rows, err := q.db.QueryContext(ctx, getActivePlatforms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Platform
	for rows.Next() {
		var i Platform
		if err := rows.Scan(&i.Name, &i.DisplayName, &i.BaseUrl, &i.ProfileUrlPattern, &i.Active); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createProfile = `-- name: CreateProfile :exec
INSERT INTO profiles (student_id, platform, username, profile_url, sync_status)
VALUES (?, ?, ?, ?, 'pending')
`

type CreateProfileParams struct {
	StudentID  int64
	Platform   string
	Username   string
	ProfileUrl string
}

func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) error {
	_, err := q.db.ExecContext(ctx, createProfile,
		arg.StudentID,
		arg.Platform,
		arg.Username,
		arg.ProfileUrl,
	)
	return err
}

const deleteProfile = `-- name: DeleteProfile :exec
DELETE FROM profiles WHERE student_id = ? AND platform = ?
`

type DeleteProfileParams struct {
	StudentID int64
	Platform  string
}

func (q *Queries) DeleteProfile(ctx context.Context, arg DeleteProfileParams) error {
	_, err := q.db.ExecContext(ctx, deleteProfile, arg.StudentID, arg.Platform)
	return err
}

const getProfiles = `-- name: GetProfiles :many
SELECT student_id, platform, username, profile_url, sync_status, sync_error, last_synced_at
FROM profiles WHERE student_id = ? ORDER BY platform
`

func (q *Queries) GetProfiles(ctx context.Context, studentID int64) ([]Profile, error) {
	rows, err := q.db.QueryContext(ctx, getProfiles, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Profile
	for rows.Next() {
		var i Profile
		if err := rows.Scan(
			&i.StudentID,
			&i.Platform,
			&i.Username,
			&i.ProfileUrl,
			&i.SyncStatus,
			&i.SyncError,
			&i.LastSyncedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getProfile = `-- name: GetProfile :one
SELECT student_id, platform, username, profile_url, sync_status, sync_error, last_synced_at
FROM profiles WHERE student_id = ? AND platform = ?
`

type GetProfileParams struct {
	StudentID int64
	Platform  string
}

func (q *Queries) GetProfile(ctx context.Context, arg GetProfileParams) (Profile, error) {
	row := q.db.QueryRowContext(ctx, getProfile, arg.StudentID, arg.Platform)
	var i Profile
	err := row.Scan(
		&i.StudentID,
		&i.Platform,
		&i.Username,
		&i.ProfileUrl,
		&i.SyncStatus,
		&i.SyncError,
		&i.LastSyncedAt,
	)
	return i, err
}

const updateProfileSync = `-- name: UpdateProfileSync :exec
UPDATE profiles
SET sync_status = ?, sync_error = ?, last_synced_at = ?
WHERE student_id = ? AND platform = ?
`

type UpdateProfileSyncParams struct {
	SyncStatus   string
	SyncError    string
	LastSyncedAt int64
	StudentID    int64
	Platform     string
}

func (q *Queries) UpdateProfileSync(ctx context.Context, arg UpdateProfileSyncParams) error {
	_, err := q.db.ExecContext(ctx, updateProfileSync,
		arg.SyncStatus,
		arg.SyncError,
		arg.LastSyncedAt,
		arg.StudentID,
		arg.Platform,
	)
	return err
}

const upsertCachedStatistics = `-- name: UpsertCachedStatistics :exec
INSERT INTO cached_statistics (student_id, platform, record, fetched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (student_id, platform) DO UPDATE SET
    record = excluded.record,
    fetched_at = excluded.fetched_at
`

type UpsertCachedStatisticsParams struct {
	StudentID int64
	Platform  string
	Record    string
	FetchedAt int64
}

func (q *Queries) UpsertCachedStatistics(ctx context.Context, arg UpsertCachedStatisticsParams) error {
	_, err := q.db.ExecContext(ctx, upsertCachedStatistics,
		arg.StudentID,
		arg.Platform,
		arg.Record,
		arg.FetchedAt,
	)
	return err
}

const getCachedStatistics = `-- name: GetCachedStatistics :many
SELECT student_id, platform, record, fetched_at
FROM cached_statistics WHERE student_id = ? ORDER BY platform
`

func (q *Queries) GetCachedStatistics(ctx context.Context, studentID int64) ([]CachedStatistic, error) {
	rows, err := q.db.QueryContext(ctx, getCachedStatistics, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CachedStatistic
	for rows.Next() {
		var i CachedStatistic
		if err := rows.Scan(&i.StudentID, &i.Platform, &i.Record, &i.FetchedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCachedStatisticsForPlatform = `-- name: GetCachedStatisticsForPlatform :one
SELECT student_id, platform, record, fetched_at
FROM cached_statistics WHERE student_id = ? AND platform = ?
`

type GetCachedStatisticsForPlatformParams struct {
	StudentID int64
	Platform  string
}

func (q *Queries) GetCachedStatisticsForPlatform(ctx context.Context, arg GetCachedStatisticsForPlatformParams) (CachedStatistic, error) {
	row := q.db.QueryRowContext(ctx, getCachedStatisticsForPlatform, arg.StudentID, arg.Platform)
	var i CachedStatistic
	err := row.Scan(&i.StudentID, &i.Platform, &i.Record, &i.FetchedAt)
	return i, err
}

const deleteCachedStatistics = `-- name: DeleteCachedStatistics :exec
DELETE FROM cached_statistics WHERE student_id = ? AND platform = ?
`

type DeleteCachedStatisticsParams struct {
	StudentID int64
	Platform  string
}

func (q *Queries) DeleteCachedStatistics(ctx context.Context, arg DeleteCachedStatisticsParams) error {
	_, err := q.db.ExecContext(ctx, deleteCachedStatistics, arg.StudentID, arg.Platform)
	return err
}

const createBatchCachedStatistics = `-- name: CreateBatchCachedStatistics :exec
INSERT INTO batch_cached_statistics (batch_id, student_id, platform, record, fetched_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (batch_id, student_id, platform) DO UPDATE SET
    record = excluded.record,
    fetched_at = excluded.fetched_at
`

type CreateBatchCachedStatisticsParams struct {
	BatchID   string
	StudentID int64
	Platform  string
	Record    string
	FetchedAt int64
}

func (q *Queries) CreateBatchCachedStatistics(ctx context.Context, arg CreateBatchCachedStatisticsParams) error {
	_, err := q.db.ExecContext(ctx, createBatchCachedStatistics,
		arg.BatchID,
		arg.StudentID,
		arg.Platform,
		arg.Record,
		arg.FetchedAt,
	)
	return err
}

const getBatchCachedStatistics = `-- name: GetBatchCachedStatistics :many
SELECT batch_id, student_id, platform, record, fetched_at
FROM batch_cached_statistics WHERE batch_id = ? ORDER BY student_id, platform
`

func (q *Queries) GetBatchCachedStatistics(ctx context.Context, batchID string) ([]BatchCachedStatistic, error) {
	rows, err := q.db.QueryContext(ctx, getBatchCachedStatistics, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BatchCachedStatistic
	for rows.Next() {
		var i BatchCachedStatistic
		if err := rows.Scan(&i.BatchID, &i.StudentID, &i.Platform, &i.Record, &i.FetchedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertScrapeFailure = `-- name: UpsertScrapeFailure :exec
INSERT INTO scrape_failures (platform, username, failure_count, last_error, last_attempted_at)
VALUES (?, ?, 1, ?, ?)
ON CONFLICT (platform, username) DO UPDATE SET
    failure_count = failure_count + 1,
    last_error = excluded.last_error,
    last_attempted_at = excluded.last_attempted_at
`

type UpsertScrapeFailureParams struct {
	Platform        string
	Username        string
	LastError       string
	LastAttemptedAt int64
}

func (q *Queries) UpsertScrapeFailure(ctx context.Context, arg UpsertScrapeFailureParams) error {
	_, err := q.db.ExecContext(ctx, upsertScrapeFailure,
		arg.Platform,
		arg.Username,
		arg.LastError,
		arg.LastAttemptedAt,
	)
	return err
}

const getScrapeFailure = `-- name: GetScrapeFailure :one
SELECT platform, username, failure_count, last_error, last_attempted_at
FROM scrape_failures WHERE platform = ? AND username = ?
`

type GetScrapeFailureParams struct {
	Platform string
	Username string
}

func (q *Queries) GetScrapeFailure(ctx context.Context, arg GetScrapeFailureParams) (ScrapeFailure, error) {
	row := q.db.QueryRowContext(ctx, getScrapeFailure, arg.Platform, arg.Username)
	var i ScrapeFailure
	err := row.Scan(&i.Platform, &i.Username, &i.FailureCount, &i.LastError, &i.LastAttemptedAt)
	return i, err
}
