package hackerrank

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"codetrack-backend/lib/scrapeerr"
	"codetrack-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/hackerrank")

const PlatformName = "hackerrank"

type Badge struct {
	Name   string
	Stars  int64
	Solved int64
}

type Profile struct {
	Username    string
	SolvedCount int64
	Badges      []Badge
}

type ClientOptions struct {
	// BaseUrl overrides https://www.hackerrank.com, used by tests.
	BaseUrl string
}

type Client struct {
	api  *resty.Client
	html *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://www.hackerrank.com"
	}

	api := resty.New()
	api.SetBaseURL(baseUrl)
	api.SetHeader("accept", "application/json")
	api.SetTimeout(time.Second * 10)
	telemetry.InstrumentResty(api, "scrapers/hackerrank/rest")

	html := resty.New()
	html.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err == nil {
		html.SetCookieJar(jar)
	}
	html.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	html.SetTimeout(time.Second * 10)
	html.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(html.GetClient().Transport)
	telemetry.InstrumentResty(html, "scrapers/hackerrank/html")

	return &Client{api: api, html: html}
}

type profileResponse struct {
	Model *struct {
		Username string `json:"username"`
	} `json:"model"`
}

type badgesResponse struct {
	Models []struct {
		BadgeName string `json:"badge_name"`
		Stars     int64  `json:"stars"`
		Solved    int64  `json:"solved"`
	} `json:"models"`
}

// FetchFast reads the undocumented-but-stable rest endpoints the site's
// own frontend uses. New accounts legitimately come back with an empty
// badge list, the registry marks this platform as accepting zero solved.
func (c *Client) FetchFast(ctx context.Context, username string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchFast")
	defer span.End()

	var prof profileResponse
	res, err := c.api.R().
		SetContext(ctx).
		SetResult(&prof).
		Get("/rest/contests/master/hackers/" + username + "/profile")
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, username, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, username, res.StatusCode()); err != nil {
		return Profile{}, err
	}
	if prof.Model == nil || prof.Model.Username == "" {
		return Profile{}, scrapeerr.New(
			scrapeerr.KindUserNotFound, PlatformName, username,
			fmt.Errorf("rest profile model is empty"),
		)
	}

	profile := Profile{Username: prof.Model.Username}

	var badges badgesResponse
	res, err = c.api.R().
		SetContext(ctx).
		SetResult(&badges).
		Get("/rest/hackers/" + username + "/badges")
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, username, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, username, res.StatusCode()); err != nil {
		return Profile{}, err
	}

	for _, b := range badges.Models {
		profile.Badges = append(profile.Badges, Badge{
			Name:   b.BadgeName,
			Stars:  b.Stars,
			Solved: b.Solved,
		})
		profile.SolvedCount += b.Solved
	}

	return profile, nil
}

// FetchSlow scrapes the public profile page.
func (c *Client) FetchSlow(ctx context.Context, username string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchSlow")
	defer span.End()

	res, err := c.html.R().
		SetContext(ctx).
		Get("/profile/" + username)
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, username, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, username, res.StatusCode()); err != nil {
		return Profile{}, err
	}

	return ParseProfileHTML(username, string(res.Body()))
}
