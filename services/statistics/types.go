package statistics

import (
	"strings"
	"time"

	"codetrack-backend/lib/scrapers/codechef"
	"codetrack-backend/lib/scrapers/codeforces"
	"codetrack-backend/lib/scrapers/geeksforgeeks"
	"codetrack-backend/lib/scrapers/hackerrank"
	"codetrack-backend/lib/scrapers/leetcode"
)

// ProblemsSolved breaks a solved count down by difficulty where the
// platform exposes one. Total is always populated.
type ProblemsSolved struct {
	Total  int64 `json:"total"`
	Easy   int64 `json:"easy,omitempty"`
	Medium int64 `json:"medium,omitempty"`
	Hard   int64 `json:"hard,omitempty"`
}

// StatisticsRecord is the canonical platform-agnostic snapshot of one
// profile. It is what the caches hold and what callers get back,
// downstream code never branches on platform again.
type StatisticsRecord struct {
	Platform       string         `json:"platform"`
	Username       string         `json:"username"`
	ProfileUrl     string         `json:"profileUrl"`
	ProblemsSolved ProblemsSolved `json:"problemsSolved"`
	Ranking        int64          `json:"ranking,omitempty"`
	Rating         int64          `json:"rating,omitempty"`
	Badges         []string       `json:"badges,omitempty"`
	Points         int64          `json:"points,omitempty"`
	CapturedAt     time.Time      `json:"capturedAt"`
}

// RawProfile is the tagged union of vendor shapes at the raw-data
// boundary, exactly one member is set by a successful tier fetch.
type RawProfile struct {
	Leetcode      *leetcode.Profile
	Codeforces    *codeforces.Profile
	Codechef      *codechef.Profile
	Hackerrank    *hackerrank.Profile
	Geeksforgeeks *geeksforgeeks.Profile
}

// BuildProfileUrl substitutes the username into a platform's profile
// url pattern.
func BuildProfileUrl(pattern, username string) string {
	return strings.ReplaceAll(pattern, "{username}", username)
}
