package hackerrank

import (
	"fmt"
	"strings"

	"codetrack-backend/lib/htmlutil"
	"codetrack-backend/lib/scrapeerr"

	"github.com/PuerkitoBio/goquery"
)

// ParseProfileHTML extracts what the public page exposes: username and
// badges. The page does not render an overall solved count, so the sum
// of badge solved counts stands in for it.
func ParseProfileHTML(username, html string) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Profile{}, scrapeerr.New(scrapeerr.KindParse, PlatformName, username, err)
	}

	heading := doc.Find("h1.profile-heading, div.profile-username-heading")
	if heading.Length() == 0 {
		return Profile{}, scrapeerr.New(
			scrapeerr.KindUserNotFound, PlatformName, username,
			fmt.Errorf("profile heading missing from page"),
		)
	}

	profile := Profile{Username: username}
	if name := htmlutil.CleanText(heading.First().Text()); name != "" {
		profile.Username = strings.TrimPrefix(name, "@")
	}

	doc.Find("div.hacker-badge").Each(func(_ int, sel *goquery.Selection) {
		badge := Badge{
			Name:  htmlutil.CleanText(sel.Find("text.badge-title").Text()),
			Stars: int64(sel.Find("svg.badge-star").Length()),
		}
		if badge.Name == "" {
			return
		}
		badge.Solved = htmlutil.ExtractInt(sel.Find("span.badge-solved").Text())
		profile.Badges = append(profile.Badges, badge)
		profile.SolvedCount += badge.Solved
	})

	return profile, nil
}
