package leetcode

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

var tracer = otel.Tracer("scrapers/leetcode")

const PlatformName = "leetcode"

// Profile is the raw leetcode shape, field names follow the graphql
// schema rather than the canonical statistics record.
type Profile struct {
	Username     string
	EasySolved   int64
	MediumSolved int64
	HardSolved   int64
	TotalSolved  int64
	Ranking      int64
	Badges       []string
}

type ClientOptions struct {
	// BaseUrl overrides https://leetcode.com, used by tests.
	BaseUrl string
}

type Client struct {
	api  *resty.Client
	html *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://leetcode.com"
	}

	api := resty.New()
	api.SetBaseURL(baseUrl)
	api.SetHeader("content-type", "application/json")
	api.SetHeader("referer", baseUrl)
	api.SetTimeout(time.Second * 10)
	telemetry.InstrumentResty(api, "scrapers/leetcode/graphql")

	html := resty.New()
	html.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err == nil {
		html.SetCookieJar(jar)
	}
	html.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	html.SetTimeout(time.Second * 10)
	html.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(html.GetClient().Transport)
	telemetry.InstrumentResty(html, "scrapers/leetcode/html")

	return &Client{api: api, html: html}
}

const userProfileQuery = `
query userProfile($username: String!) {
  matchedUser(username: $username) {
    username
    profile { ranking }
    badges { displayName }
    submitStatsGlobal {
      acSubmissionNum { difficulty count }
    }
  }
}`

type userProfileResponse struct {
	Data struct {
		MatchedUser *struct {
			Username string `json:"username"`
			Profile  struct {
				Ranking int64 `json:"ranking"`
			} `json:"profile"`
			Badges []struct {
				DisplayName string `json:"displayName"`
			} `json:"badges"`
			SubmitStatsGlobal struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int64  `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
		} `json:"matchedUser"`
	} `json:"data"`
}

// FetchFast queries the public graphql surface.
func (c *Client) FetchFast(ctx context.Context, username string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchFast")
	defer span.End()

	var out userProfileResponse
	res, err := c.api.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"operationName": "userProfile",
			"query":         userProfileQuery,
			"variables":     map[string]string{"username": username},
		}).
		SetResult(&out).
		Post("/graphql")
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, username, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, username, res.StatusCode()); err != nil {
		return Profile{}, err
	}

	matched := out.Data.MatchedUser
	if matched == nil {
		return Profile{}, scrapeerr.New(
			scrapeerr.KindUserNotFound, PlatformName, username,
			fmt.Errorf("graphql returned a null matchedUser"),
		)
	}

	profile := Profile{
		Username: matched.Username,
		Ranking:  matched.Profile.Ranking,
	}
	for _, n := range matched.SubmitStatsGlobal.AcSubmissionNum {
		switch n.Difficulty {
		case "All":
			profile.TotalSolved = n.Count
		case "Easy":
			profile.EasySolved = n.Count
		case "Medium":
			profile.MediumSolved = n.Count
		case "Hard":
			profile.HardSolved = n.Count
		}
	}
	for _, b := range matched.Badges {
		profile.Badges = append(profile.Badges, b.DisplayName)
	}
	return profile, nil
}

// FetchSlow pulls the server-rendered profile page and scrapes it.
func (c *Client) FetchSlow(ctx context.Context, username string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchSlow")
	defer span.End()

	res, err := c.html.R().
		SetContext(ctx).
		Get("/u/" + username + "/")
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, username, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, username, res.StatusCode()); err != nil {
		return Profile{}, err
	}

	return ParseProfileHTML(username, string(res.Body()))
}
