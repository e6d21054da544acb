package statistics

import (
	"fmt"

	"codetrack-backend/lib/scrapeerr"
)

// Normalize maps a raw vendor shape into the canonical record. It is a
// pure function: missing optional fields default to zero values and the
// same input always produces the same output. CapturedAt is stamped by
// the caller, not here.
func Normalize(raw RawProfile) (StatisticsRecord, error) {
	switch {
	case raw.Leetcode != nil:
		p := raw.Leetcode
		return StatisticsRecord{
			Platform: "leetcode",
			Username: p.Username,
			ProblemsSolved: ProblemsSolved{
				Total:  p.TotalSolved,
				Easy:   p.EasySolved,
				Medium: p.MediumSolved,
				Hard:   p.HardSolved,
			},
			Ranking: p.Ranking,
			Badges:  append([]string(nil), p.Badges...),
		}, nil

	case raw.Codeforces != nil:
		p := raw.Codeforces
		rec := StatisticsRecord{
			Platform:       "codeforces",
			Username:       p.Handle,
			ProblemsSolved: ProblemsSolved{Total: p.SolvedCount},
			Rating:         p.Rating,
		}
		if p.Rank != "" {
			rec.Badges = []string{p.Rank}
		}
		return rec, nil

	case raw.Codechef != nil:
		p := raw.Codechef
		rec := StatisticsRecord{
			Platform:       "codechef",
			Username:       p.Username,
			ProblemsSolved: ProblemsSolved{Total: p.SolvedCount},
			Rating:         p.Rating,
			Ranking:        p.GlobalRank,
			Badges:         append([]string(nil), p.Badges...),
		}
		if p.Stars > 0 {
			rec.Badges = append(rec.Badges, fmt.Sprintf("%d★", p.Stars))
		}
		return rec, nil

	case raw.Hackerrank != nil:
		p := raw.Hackerrank
		rec := StatisticsRecord{
			Platform:       "hackerrank",
			Username:       p.Username,
			ProblemsSolved: ProblemsSolved{Total: p.SolvedCount},
		}
		for _, b := range p.Badges {
			rec.Badges = append(rec.Badges, b.Name)
		}
		return rec, nil

	case raw.Geeksforgeeks != nil:
		p := raw.Geeksforgeeks
		return StatisticsRecord{
			Platform:       "geeksforgeeks",
			Username:       p.Handle,
			ProblemsSolved: ProblemsSolved{Total: p.SolvedCount},
			Ranking:        p.InstituteRank,
			Points:         p.CodingScore,
		}, nil
	}

	return StatisticsRecord{}, scrapeerr.New(
		scrapeerr.KindParse, "", "",
		fmt.Errorf("raw profile has no platform member set"),
	)
}
