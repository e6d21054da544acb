package statistics

import (
	"testing"

	"codetrack-backend/lib/scrapeerr"
	"codetrack-backend/lib/scrapers/codechef"
	"codetrack-backend/lib/scrapers/codeforces"
	"codetrack-backend/lib/scrapers/geeksforgeeks"
	"codetrack-backend/lib/scrapers/hackerrank"
	"codetrack-backend/lib/scrapers/leetcode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLeetcode(t *testing.T) {
	raw := RawProfile{Leetcode: &leetcode.Profile{
		Username:     "tourist",
		EasySolved:   100,
		MediumSolved: 50,
		HardSolved:   10,
		TotalSolved:  160,
		Ranking:      1234,
		Badges:       []string{"Annual Badge"},
	}}

	rec, err := Normalize(raw)
	require.NoError(t, err)

	want := StatisticsRecord{
		Platform: "leetcode",
		Username: "tourist",
		ProblemsSolved: ProblemsSolved{
			Total: 160, Easy: 100, Medium: 50, Hard: 10,
		},
		Ranking: 1234,
		Badges:  []string{"Annual Badge"},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeCodeforcesRankBecomesBadge(t *testing.T) {
	rec, err := Normalize(RawProfile{Codeforces: &codeforces.Profile{
		Handle:      "petr",
		Rating:      2900,
		Rank:        "Legendary Grandmaster",
		SolvedCount: 2000,
	}})
	require.NoError(t, err)
	require.Equal(t, []string{"Legendary Grandmaster"}, rec.Badges)
	require.Equal(t, int64(2900), rec.Rating)
	require.Equal(t, int64(2000), rec.ProblemsSolved.Total)
}

func TestNormalizeCodechefStars(t *testing.T) {
	rec, err := Normalize(RawProfile{Codechef: &codechef.Profile{
		Username:    "chef",
		Rating:      1800,
		Stars:       4,
		GlobalRank:  5000,
		SolvedCount: 300,
	}})
	require.NoError(t, err)
	require.Contains(t, rec.Badges, "4★")
	require.Equal(t, int64(5000), rec.Ranking)
}

func TestNormalizeHackerrankBadgeNames(t *testing.T) {
	rec, err := Normalize(RawProfile{Hackerrank: &hackerrank.Profile{
		Username:    "hacker",
		SolvedCount: 42,
		Badges: []hackerrank.Badge{
			{Name: "Problem Solving", Stars: 5, Solved: 30},
			{Name: "SQL", Stars: 3, Solved: 12},
		},
	}})
	require.NoError(t, err)
	require.Equal(t, []string{"Problem Solving", "SQL"}, rec.Badges)
}

func TestNormalizeGeeksforgeeksScoreBecomesPoints(t *testing.T) {
	rec, err := Normalize(RawProfile{Geeksforgeeks: &geeksforgeeks.Profile{
		Handle:        "geek",
		CodingScore:   250,
		SolvedCount:   120,
		InstituteRank: 7,
	}})
	require.NoError(t, err)
	require.Equal(t, int64(250), rec.Points)
	require.Equal(t, int64(7), rec.Ranking)
}

func TestNormalizeMissingOptionalsDefaultToZero(t *testing.T) {
	rec, err := Normalize(RawProfile{Leetcode: &leetcode.Profile{Username: "fresh"}})
	require.NoError(t, err)
	require.Zero(t, rec.Rating)
	require.Zero(t, rec.Ranking)
	require.Empty(t, rec.Badges)
	require.True(t, rec.CapturedAt.IsZero())
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := RawProfile{Codeforces: &codeforces.Profile{
		Handle: "stable", Rating: 1500, SolvedCount: 10,
	}}
	first, err := Normalize(raw)
	require.NoError(t, err)
	second, err := Normalize(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("normalize is not idempotent (-first +second):\n%s", diff)
	}
}

func TestNormalizeRejectsEmptyUnion(t *testing.T) {
	_, err := Normalize(RawProfile{})
	require.Error(t, err)
	require.Equal(t, scrapeerr.KindParse, scrapeerr.KindOf(err))
}

func TestValidateRejectsEmptyUsername(t *testing.T) {
	platform := Platform{Name: "leetcode"}
	err := validateRecord(platform, StatisticsRecord{ProblemsSolved: ProblemsSolved{Total: 5}})
	require.Error(t, err)
	require.Equal(t, scrapeerr.KindValidation, scrapeerr.KindOf(err))
}

func TestValidateRejectsAllZeroPayload(t *testing.T) {
	platform := Platform{Name: "leetcode"}
	err := validateRecord(platform, StatisticsRecord{Username: "ghost"})
	require.Error(t, err)
	require.Equal(t, scrapeerr.KindValidation, scrapeerr.KindOf(err))
}

func TestValidateAcceptsZeroWhenExempt(t *testing.T) {
	platform := Platform{Name: "codeforces", AcceptZeroSolved: true}
	require.NoError(t, validateRecord(platform, StatisticsRecord{Username: "lurker"}))
}
