package codeforces

import (
	"fmt"
	"strings"

	"codetrack-backend/lib/htmlutil"
	"codetrack-backend/lib/scrapeerr"

	"github.com/PuerkitoBio/goquery"
)

// ParseProfileHTML extracts stats from the profile page markup.
func ParseProfileHTML(handle, html string) (Profile, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Profile{}, scrapeerr.New(scrapeerr.KindParse, PlatformName, handle, err)
	}

	profile := Profile{Handle: handle}

	mainInfo := doc.Find("div.info div.main-info h1 a")
	if mainInfo.Length() == 0 {
		// unknown handles get a generic "no such user" page without the
		// profile frame at all
		return Profile{}, scrapeerr.New(
			scrapeerr.KindUserNotFound, PlatformName, handle,
			fmt.Errorf("profile frame missing from page"),
		)
	}
	profile.Handle = htmlutil.CleanText(mainInfo.Text())

	doc.Find("div.info ul li").Each(func(_ int, li *goquery.Selection) {
		text := htmlutil.CleanText(li.Text())
		if strings.HasPrefix(text, "Contest rating:") {
			profile.Rating = htmlutil.ExtractInt(text)
			if i := strings.Index(text, "max."); i >= 0 {
				profile.MaxRating = htmlutil.ExtractInt(text[i:])
			}
		}
	})

	if rank := doc.Find("div.user-rank span").First(); rank.Length() > 0 {
		profile.Rank = htmlutil.CleanText(rank.Text())
	}

	// the activity frame renders "N problems" solved for all time first
	counter := doc.Find("div._UserActivityFrame_counterValue").First()
	profile.SolvedCount = htmlutil.ExtractInt(counter.Text())

	return profile, nil
}
