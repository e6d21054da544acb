package codechef

import (
	"fmt"
	"strings"

	"codetrack-backend/lib/htmlutil"
	"codetrack-backend/lib/scrapeerr"

	"github.com/PuerkitoBio/goquery"
)

func document(username, html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scrapeerr.New(scrapeerr.KindParse, PlatformName, username, err)
	}
	// codechef serves its homepage with a 200 for unknown usernames
	// instead of a 404
	if doc.Find("div.user-details-container").Length() == 0 {
		return nil, scrapeerr.New(
			scrapeerr.KindUserNotFound, PlatformName, username,
			fmt.Errorf("user details container missing, got a non-profile page"),
		)
	}
	return doc, nil
}

func parseHeadline(username, html string) (Profile, error) {
	doc, err := document(username, html)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{Username: username}

	if name := htmlutil.CleanText(doc.Find("div.user-details-container header h1").First().Text()); name != "" {
		profile.Username = name
	}
	profile.Rating = htmlutil.ExtractInt(doc.Find("div.rating-number").First().Text())

	doc.Find("section.problems-solved h3").Each(func(_ int, h *goquery.Selection) {
		text := htmlutil.CleanText(h.Text())
		if strings.HasPrefix(text, "Total Problems Solved") {
			profile.SolvedCount = htmlutil.ExtractInt(text)
		}
	})

	return profile, nil
}

// ParseProfileHTML runs the full parse including the widgets the fast
// path skips.
func ParseProfileHTML(username, html string) (Profile, error) {
	profile, err := parseHeadline(username, html)
	if err != nil {
		return Profile{}, err
	}

	doc, err := document(username, html)
	if err != nil {
		return Profile{}, err
	}

	// the star widget is a run of ★ glyphs, not a number
	profile.Stars = int64(strings.Count(doc.Find("span.rating-star").First().Text(), "★"))

	doc.Find("div.rating-ranks a strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		profile.GlobalRank = htmlutil.ExtractInt(s.Text())
		return false
	})

	doc.Find("div.badge p.badge__title").Each(func(_ int, s *goquery.Selection) {
		if name := htmlutil.CleanText(s.Text()); name != "" {
			profile.Badges = append(profile.Badges, name)
		}
	})

	return profile, nil
}
