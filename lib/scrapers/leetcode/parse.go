package leetcode

import (
	"fmt"
	"strings"

	"codetrack-backend/lib/htmlutil"
	"codetrack-backend/lib/scrapeerr"

	"github.com/PuerkitoBio/goquery"
)

// ParseProfileHTML extracts stats from the profile page markup. Shared
// by the slow tier and the browser tier (which feeds in rendered HTML).
func ParseProfileHTML(username, html string) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Profile{}, scrapeerr.New(scrapeerr.KindParse, PlatformName, username, err)
	}

	profile := Profile{Username: username}

	if name := htmlutil.CleanText(doc.Find("div.user-profile-name, span[data-cy=username]").First().Text()); name != "" {
		profile.Username = name
	}

	found := false
	doc.Find("div[data-difficulty]").Each(func(_ int, sel *goquery.Selection) {
		difficulty := sel.AttrOr("data-difficulty", "")
		count := htmlutil.ExtractInt(sel.Text())
		switch difficulty {
		case "easy":
			profile.EasySolved = count
			found = true
		case "medium":
			profile.MediumSolved = count
			found = true
		case "hard":
			profile.HardSolved = count
			found = true
		case "all":
			profile.TotalSolved = count
			found = true
		}
	})
	if profile.TotalSolved == 0 {
		profile.TotalSolved = profile.EasySolved + profile.MediumSolved + profile.HardSolved
	}

	if rank := doc.Find("span.text-label-1[data-cy=ranking], span.profile-ranking").First(); rank.Length() > 0 {
		profile.Ranking = htmlutil.ExtractInt(rank.Text())
		found = true
	}

	doc.Find("div.badge-container img[alt], div[data-cy=badge] span.badge-name").Each(func(_ int, sel *goquery.Selection) {
		name := sel.AttrOr("alt", "")
		if name == "" {
			name = htmlutil.CleanText(sel.Text())
		}
		if name != "" {
			profile.Badges = append(profile.Badges, name)
		}
	})

	if !found {
		return Profile{}, scrapeerr.New(
			scrapeerr.KindParse, PlatformName, username,
			fmt.Errorf("no stats widgets in page, selectors likely drifted"),
		)
	}
	return profile, nil
}
