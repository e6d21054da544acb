package codeforces

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	"codetrack-backend/lib/scrapeerr"
	"codetrack-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/codeforces")

const PlatformName = "codeforces"

// number of recent submissions to scan when counting solved problems
// through the api. deep histories cost one page anyway, the api caps a
// single call at this count.
const submissionScanDepth = 1000

type Profile struct {
	Handle      string
	Rating      int64
	MaxRating   int64
	Rank        string
	SolvedCount int64
}

type ClientOptions struct {
	// BaseUrl overrides https://codeforces.com, used by tests.
	BaseUrl string
}

type Client struct {
	api  *resty.Client
	html *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://codeforces.com"
	}

	api := resty.New()
	api.SetBaseURL(baseUrl)
	api.SetTimeout(time.Second * 10)
	telemetry.InstrumentResty(api, "scrapers/codeforces/api")

	html := resty.New()
	html.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err == nil {
		html.SetCookieJar(jar)
	}
	html.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	html.SetTimeout(time.Second * 10)
	html.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(html.GetClient().Transport)
	telemetry.InstrumentResty(html, "scrapers/codeforces/html")

	return &Client{api: api, html: html}
}

type userInfoResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  []struct {
		Handle    string `json:"handle"`
		Rating    int64  `json:"rating"`
		MaxRating int64  `json:"maxRating"`
		Rank      string `json:"rank"`
	} `json:"result"`
}

type userStatusResponse struct {
	Status string `json:"status"`
	Result []struct {
		Verdict string `json:"verdict"`
		Problem struct {
			ContestId int64  `json:"contestId"`
			Index     string `json:"index"`
		} `json:"problem"`
	} `json:"result"`
}

// FetchFast reads the official REST api: user.info for identity/rating,
// user.status for an accepted-problem count. A handle with zero
// submissions is still a real handle, the registry marks this platform
// as accepting zero solved.
func (c *Client) FetchFast(ctx context.Context, handle string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchFast")
	defer span.End()

	var info userInfoResponse
	res, err := c.api.R().
		SetContext(ctx).
		SetQueryParam("handles", handle).
		SetResult(&info).
		SetError(&info).
		Get("/api/user.info")
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, handle, err)
	}
	if info.Status != "OK" {
		if strings.Contains(info.Comment, "not found") {
			return Profile{}, scrapeerr.New(
				scrapeerr.KindUserNotFound, PlatformName, handle,
				fmt.Errorf("api: %s", info.Comment),
			)
		}
		if err := scrapeerr.FromStatus(PlatformName, handle, res.StatusCode()); err != nil {
			return Profile{}, err
		}
		return Profile{}, scrapeerr.New(
			scrapeerr.KindParse, PlatformName, handle,
			fmt.Errorf("api status %q: %s", info.Status, info.Comment),
		)
	}
	if len(info.Result) == 0 {
		return Profile{}, scrapeerr.New(
			scrapeerr.KindUserNotFound, PlatformName, handle,
			fmt.Errorf("api returned an empty result set"),
		)
	}

	profile := Profile{
		Handle:    info.Result[0].Handle,
		Rating:    info.Result[0].Rating,
		MaxRating: info.Result[0].MaxRating,
		Rank:      info.Result[0].Rank,
	}

	var status userStatusResponse
	_, err = c.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"handle": handle,
			"from":   "1",
			"count":  fmt.Sprint(submissionScanDepth),
		}).
		SetResult(&status).
		Get("/api/user.status")
	if err != nil || status.Status != "OK" {
		// identity is already confirmed, a missing submission history
		// just means zero solved
		return profile, nil
	}

	solved := map[string]bool{}
	for _, sub := range status.Result {
		if sub.Verdict != "OK" {
			continue
		}
		solved[fmt.Sprintf("%d%s", sub.Problem.ContestId, sub.Problem.Index)] = true
	}
	profile.SolvedCount = int64(len(solved))

	return profile, nil
}

// FetchSlow scrapes the public profile page.
func (c *Client) FetchSlow(ctx context.Context, handle string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchSlow")
	defer span.End()

	res, err := c.html.R().
		SetContext(ctx).
		Get("/profile/" + handle)
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, handle, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, handle, res.StatusCode()); err != nil {
		return Profile{}, err
	}

	return ParseProfileHTML(handle, string(res.Body()))
}
