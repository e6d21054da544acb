package statistics

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyncStatisticsRejectsEmptyInput(t *testing.T) {
	s := newTestService(t, NewRegistry())
	_, err := s.SyncStatistics(context.Background(), nil, false)
	require.Error(t, err)
}

func TestSyncStatisticsMixedIdentifiers(t *testing.T) {
	var calls atomic.Int64
	registry := NewRegistry()
	require.NoError(t, registry.Register(testPlatform(countingTier("fast", &calls, 11))))
	s := newTestService(t, registry)
	ctx := context.Background()

	byRoll := seedStudent(t, s, "21CS010", "Farah")
	byKey := seedStudent(t, s, "21CS011", "Gopal")
	seedPlatformAndProfile(t, s, byRoll.ID, "leetcode", "farah")
	_, err := s.RegisterProfile(ctx, byKey.ID, "leetcode", "gopal")
	require.NoError(t, err)

	internalKey := strconv.FormatInt(byKey.ID, 10)
	identifiers := []string{"21CS010", internalKey, "NOSUCHROLL"}

	result, err := s.SyncStatistics(ctx, identifiers, false)
	require.NoError(t, err)

	require.Equal(t, 3, result.TotalRequested)
	require.Equal(t, 2, result.ProcessedCount)
	require.NotEmpty(t, result.BatchId)

	// results come back under the caller's own identifier strings
	require.Len(t, result.Results, 3)
	require.NotNil(t, result.Results["21CS010"]["leetcode"])
	require.NotNil(t, result.Results[internalKey]["leetcode"])
	require.Nil(t, result.Results["NOSUCHROLL"])
}

func TestSyncStatisticsIsolatesPartialFailure(t *testing.T) {
	var okCalls, badCalls atomic.Int64
	registry := NewRegistry()
	require.NoError(t, registry.Register(testPlatform(countingTier("fast", &okCalls, 8))))
	require.NoError(t, registry.Register(Platform{
		Name:              "codeforces",
		DisplayName:       "Codeforces",
		BaseUrl:           "https://codeforces.com",
		ProfileUrlPattern: "https://codeforces.com/profile/{username}",
		Tiers:             []Tier{failingTier("fast", &badCalls)},
	}))
	s := newTestService(t, registry)
	ctx := context.Background()

	healthy := seedStudent(t, s, "21CS020", "Hana")
	broken := seedStudent(t, s, "21CS021", "Ivan")
	seedPlatformAndProfile(t, s, healthy.ID, "leetcode", "hana")
	_, err := s.RegisterProfile(ctx, broken.ID, "codeforces", "ivan")
	require.NoError(t, err)

	result, err := s.SyncStatistics(ctx, []string{"21CS020", "21CS021"}, false)
	require.NoError(t, err)

	require.Equal(t, 2, result.TotalRequested)
	require.Equal(t, 1, result.ProcessedCount)
	require.NotNil(t, result.Results["21CS020"]["leetcode"])

	// the failing student still gets an entry, with the platform nil
	require.Contains(t, result.Results["21CS021"], "codeforces")
	require.Nil(t, result.Results["21CS021"]["codeforces"])
}

func TestSyncStatisticsSecondRunServedFromCache(t *testing.T) {
	var calls atomic.Int64
	registry := NewRegistry()
	require.NoError(t, registry.Register(testPlatform(countingTier("fast", &calls, 4))))
	s := newTestService(t, registry)
	ctx := context.Background()

	student := seedStudent(t, s, "21CS030", "Jo")
	seedPlatformAndProfile(t, s, student.ID, "leetcode", "jo")

	first, err := s.SyncStatistics(ctx, []string{"21CS030"}, false)
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, int64(1), calls.Load())

	second, err := s.SyncStatistics(ctx, []string{"21CS030"}, false)
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, int64(1), calls.Load())

	forced, err := s.SyncStatistics(ctx, []string{"21CS030"}, true)
	require.NoError(t, err)
	require.False(t, forced.Cached)
	require.Equal(t, int64(2), calls.Load())
}

func TestSyncStatisticsPersistsBatchRows(t *testing.T) {
	var calls atomic.Int64
	registry := NewRegistry()
	require.NoError(t, registry.Register(testPlatform(countingTier("fast", &calls, 6))))
	s := newTestService(t, registry)
	ctx := context.Background()

	student := seedStudent(t, s, "21CS040", "Kiran")
	seedPlatformAndProfile(t, s, student.ID, "leetcode", "kiran")

	result, err := s.SyncStatistics(ctx, []string{"21CS040"}, false)
	require.NoError(t, err)

	rows, err := s.GetBatch(ctx, result.BatchId)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, student.ID, rows[0].StudentId)
	require.Equal(t, int64(6), rows[0].Record.ProblemsSolved.Total)

	// cache reuse in a later batch still tags rows under the new id
	second, err := s.SyncStatistics(ctx, []string{"21CS040"}, false)
	require.NoError(t, err)
	require.NotEqual(t, result.BatchId, second.BatchId)
	rows, err = s.GetBatch(ctx, second.BatchId)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestSyncStatisticsSpansMultipleChunks(t *testing.T) {
	var calls atomic.Int64
	registry := NewRegistry()
	require.NoError(t, registry.Register(testPlatform(countingTier("fast", &calls, 2))))
	s := newTestService(t, registry)
	ctx := context.Background()

	// ChunkSize is 2 in testOptions, so five students means three chunks
	identifiers := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		roll := "21CS05" + strconv.Itoa(i)
		student := seedStudent(t, s, roll, "Student "+roll)
		if i == 0 {
			seedPlatformAndProfile(t, s, student.ID, "leetcode", "u"+roll)
		} else {
			_, err := s.RegisterProfile(ctx, student.ID, "leetcode", "u"+roll)
			require.NoError(t, err)
		}
		identifiers = append(identifiers, roll)
	}

	result, err := s.SyncStatistics(ctx, identifiers, false)
	require.NoError(t, err)
	require.Equal(t, 5, result.ProcessedCount)
	require.Equal(t, int64(5), calls.Load())
	require.Len(t, result.Results, 5)
}
