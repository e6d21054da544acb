package geeksforgeeks

import (
	"fmt"
	"strings"

	"codetrack-backend/lib/htmlutil"
	"codetrack-backend/lib/scrapeerr"

	"github.com/PuerkitoBio/goquery"
)

// ParseProfileHTML walks the score cards on the profile page. Each card
// is a label ("Coding Score", "Problem Solved", ...) over a number.
func ParseProfileHTML(handle, html string) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Profile{}, scrapeerr.New(scrapeerr.KindParse, PlatformName, handle, err)
	}

	profile := Profile{Handle: handle}

	if name := htmlutil.CleanText(doc.Find("div.profilePicSection_head_userHandle, div.profile_name").First().Text()); name != "" {
		profile.Handle = name
	}

	cards := doc.Find("div.scoreCard")
	if cards.Length() == 0 {
		return Profile{}, scrapeerr.New(
			scrapeerr.KindParse, PlatformName, handle,
			fmt.Errorf("no score cards in page, selectors likely drifted"),
		)
	}

	cards.Each(func(_ int, card *goquery.Selection) {
		label := htmlutil.CleanText(card.Find("div.scoreCard_head_left--text").Text())
		value := htmlutil.ExtractInt(card.Find("div.scoreCard_head_left--score").Text())
		switch {
		case strings.EqualFold(label, "Coding Score"):
			profile.CodingScore = value
		case strings.EqualFold(label, "Problem Solved"):
			profile.SolvedCount = value
		case strings.EqualFold(label, "Monthly Coding Score"):
			profile.MonthlyScore = value
		}
	})

	if rank := doc.Find("span.educationDetails_head_left_userRankContainer--text b").First(); rank.Length() > 0 {
		profile.InstituteRank = htmlutil.ExtractInt(rank.Text())
	}

	return profile, nil
}
