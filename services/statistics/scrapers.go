package statistics

import (
	"context"
	"fmt"

	"codetrack-backend/lib/scrapers/browser"
	"codetrack-backend/lib/scrapers/codechef"
	"codetrack-backend/lib/scrapers/codeforces"
	"codetrack-backend/lib/scrapers/geeksforgeeks"
	"codetrack-backend/lib/scrapers/hackerrank"
	"codetrack-backend/lib/scrapers/leetcode"
)

// ScraperClients carries the per-platform clients used by
// DefaultRegistry. Zero-valued options hit the real sites; tests point
// BaseUrl overrides at httptest servers. Browser may be nil, in which
// case platforms register without a browser tier.
type ScraperClients struct {
	Leetcode      leetcode.ClientOptions
	Codeforces    codeforces.ClientOptions
	Codechef      codechef.ClientOptions
	Hackerrank    hackerrank.ClientOptions
	Geeksforgeeks geeksforgeeks.ClientOptions
	Browser       *browser.Fetcher
}

// DefaultRegistry wires the five supported platforms with their full
// tier sequences: fast (API) where the platform has one, slow (HTML
// scrape), then the shared headless browser rendering the profile page
// into the same HTML parser.
func DefaultRegistry(clients ScraperClients) (*Registry, error) {
	registry := NewRegistry()

	lc := leetcode.NewClient(clients.Leetcode)
	cf := codeforces.NewClient(clients.Codeforces)
	cc := codechef.NewClient(clients.Codechef)
	hr := hackerrank.NewClient(clients.Hackerrank)
	gfg := geeksforgeeks.NewClient(clients.Geeksforgeeks)

	platforms := []Platform{
		{
			Name:              leetcode.PlatformName,
			DisplayName:       "LeetCode",
			BaseUrl:           "https://leetcode.com",
			ProfileUrlPattern: "https://leetcode.com/u/{username}/",
			Tiers: withBrowserTier(clients.Browser,
				"https://leetcode.com/u/{username}/",
				func(username, html string) (RawProfile, error) {
					p, err := leetcode.ParseProfileHTML(username, html)
					return RawProfile{Leetcode: &p}, err
				},
				Tier{Name: "fast", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := lc.FetchFast(ctx, username)
					return RawProfile{Leetcode: &p}, err
				}},
				Tier{Name: "slow", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := lc.FetchSlow(ctx, username)
					return RawProfile{Leetcode: &p}, err
				}},
			),
		},
		{
			Name:              codeforces.PlatformName,
			DisplayName:       "Codeforces",
			BaseUrl:           "https://codeforces.com",
			ProfileUrlPattern: "https://codeforces.com/profile/{username}",
			AcceptZeroSolved:  true,
			Tiers: withBrowserTier(clients.Browser,
				"https://codeforces.com/profile/{username}",
				func(username, html string) (RawProfile, error) {
					p, err := codeforces.ParseProfileHTML(username, html)
					return RawProfile{Codeforces: &p}, err
				},
				Tier{Name: "fast", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := cf.FetchFast(ctx, username)
					return RawProfile{Codeforces: &p}, err
				}},
				Tier{Name: "slow", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := cf.FetchSlow(ctx, username)
					return RawProfile{Codeforces: &p}, err
				}},
			),
		},
		{
			Name:              codechef.PlatformName,
			DisplayName:       "CodeChef",
			BaseUrl:           "https://www.codechef.com",
			ProfileUrlPattern: "https://www.codechef.com/users/{username}",
			Tiers: withBrowserTier(clients.Browser,
				"https://www.codechef.com/users/{username}",
				func(username, html string) (RawProfile, error) {
					p, err := codechef.ParseProfileHTML(username, html)
					return RawProfile{Codechef: &p}, err
				},
				Tier{Name: "fast", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := cc.FetchFast(ctx, username)
					return RawProfile{Codechef: &p}, err
				}},
				Tier{Name: "slow", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := cc.FetchSlow(ctx, username)
					return RawProfile{Codechef: &p}, err
				}},
			),
		},
		{
			Name:              hackerrank.PlatformName,
			DisplayName:       "HackerRank",
			BaseUrl:           "https://www.hackerrank.com",
			ProfileUrlPattern: "https://www.hackerrank.com/profile/{username}",
			AcceptZeroSolved:  true,
			Tiers: withBrowserTier(clients.Browser,
				"https://www.hackerrank.com/profile/{username}",
				func(username, html string) (RawProfile, error) {
					p, err := hackerrank.ParseProfileHTML(username, html)
					return RawProfile{Hackerrank: &p}, err
				},
				Tier{Name: "fast", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := hr.FetchFast(ctx, username)
					return RawProfile{Hackerrank: &p}, err
				}},
				Tier{Name: "slow", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := hr.FetchSlow(ctx, username)
					return RawProfile{Hackerrank: &p}, err
				}},
			),
		},
		{
			Name:              geeksforgeeks.PlatformName,
			DisplayName:       "GeeksforGeeks",
			BaseUrl:           "https://www.geeksforgeeks.org",
			ProfileUrlPattern: "https://www.geeksforgeeks.org/user/{username}/",
			Tiers: withBrowserTier(clients.Browser,
				"https://www.geeksforgeeks.org/user/{username}/",
				func(username, html string) (RawProfile, error) {
					p, err := geeksforgeeks.ParseProfileHTML(username, html)
					return RawProfile{Geeksforgeeks: &p}, err
				},
				Tier{Name: "fast", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := gfg.FetchFast(ctx, username)
					return RawProfile{Geeksforgeeks: &p}, err
				}},
				Tier{Name: "slow", Fetch: func(ctx context.Context, username string) (RawProfile, error) {
					p, err := gfg.FetchSlow(ctx, username)
					return RawProfile{Geeksforgeeks: &p}, err
				}},
			),
		},
	}

	for _, platform := range platforms {
		if err := registry.Register(platform); err != nil {
			return nil, fmt.Errorf("register %q: %w", platform.Name, err)
		}
	}
	return registry, nil
}

// withBrowserTier appends a browser tier behind the given tiers when a
// fetcher is available: render the profile url, hand the rendered HTML
// to the platform's parser.
func withBrowserTier(fetcher *browser.Fetcher, urlPattern string, parse func(username, html string) (RawProfile, error), tiers ...Tier) []Tier {
	if fetcher == nil {
		return tiers
	}
	return append(tiers, Tier{
		Name: "browser",
		Fetch: func(ctx context.Context, username string) (RawProfile, error) {
			html, err := fetcher.FetchHTML(ctx, BuildProfileUrl(urlPattern, username))
			if err != nil {
				return RawProfile{}, err
			}
			return parse(username, html)
		},
	})
}
