package statistics

import (
	"fmt"

	"codetrack-backend/lib/scrapeerr"
)

// validateRecord rejects implausible scrapes. Many platforms serve an
// empty-but-200 page for invalid usernames, so a payload with no
// positive metric at all is treated as a probable scrape failure even
// though no error was raised, unless the platform is exempt.
func validateRecord(platform Platform, rec StatisticsRecord) error {
	if rec.Username == "" {
		return scrapeerr.New(
			scrapeerr.KindValidation, platform.Name, rec.Username,
			fmt.Errorf("scraped payload has an empty username"),
		)
	}

	meaningful := rec.ProblemsSolved.Total > 0 ||
		len(rec.Badges) > 0 ||
		rec.Rating > 0 ||
		rec.Ranking > 0 ||
		rec.Points > 0
	if !meaningful && !platform.AcceptZeroSolved {
		return scrapeerr.New(
			scrapeerr.KindValidation, platform.Name, rec.Username,
			fmt.Errorf("payload has no positive metric, likely an empty profile page"),
		)
	}
	return nil
}
