package geeksforgeeks

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

var tracer = otel.Tracer("scrapers/geeksforgeeks")

const PlatformName = "geeksforgeeks"

type Profile struct {
	Handle        string
	CodingScore   int64
	SolvedCount   int64
	MonthlyScore  int64
	InstituteRank int64
}

type ClientOptions struct {
	// ApiBaseUrl overrides https://authapi.geeksforgeeks.org, used by tests.
	ApiBaseUrl string
	// BaseUrl overrides https://www.geeksforgeeks.org, used by tests.
	BaseUrl string
}

type Client struct {
	api  *resty.Client
	html *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	apiBaseUrl := opts.ApiBaseUrl
	if apiBaseUrl == "" {
		apiBaseUrl = "https://authapi.geeksforgeeks.org"
	}
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://www.geeksforgeeks.org"
	}

	api := resty.New()
	api.SetBaseURL(apiBaseUrl)
	api.SetHeader("accept", "application/json")
	api.SetTimeout(time.Second * 10)
	telemetry.InstrumentResty(api, "scrapers/geeksforgeeks/api")

	html := resty.New()
	html.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err == nil {
		html.SetCookieJar(jar)
	}
	html.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	html.SetTimeout(time.Second * 10)
	html.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(html.GetClient().Transport)
	telemetry.InstrumentResty(html, "scrapers/geeksforgeeks/html")

	return &Client{api: api, html: html}
}

type profileInfoResponse struct {
	Message string `json:"message"`
	Data    *struct {
		Name                string `json:"name"`
		Score               int64  `json:"score"`
		TotalProblemsSolved int64  `json:"total_problems_solved"`
		MonthlyScore        int64  `json:"monthly_score"`
	} `json:"data"`
}

// FetchFast reads the auth api's profile-info endpoint, the same one the
// profile page's own frontend calls.
func (c *Client) FetchFast(ctx context.Context, handle string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchFast")
	defer span.End()

	var out profileInfoResponse
	res, err := c.api.R().
		SetContext(ctx).
		SetQueryParam("handle", handle).
		SetResult(&out).
		Get("/api-get/user-profile-info/")
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, handle, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, handle, res.StatusCode()); err != nil {
		return Profile{}, err
	}
	if out.Data == nil || out.Data.Name == "" {
		return Profile{}, scrapeerr.New(
			scrapeerr.KindUserNotFound, PlatformName, handle,
			fmt.Errorf("profile-info returned no data: %q", out.Message),
		)
	}

	return Profile{
		Handle:       out.Data.Name,
		CodingScore:  out.Data.Score,
		SolvedCount:  out.Data.TotalProblemsSolved,
		MonthlyScore: out.Data.MonthlyScore,
	}, nil
}

// FetchSlow scrapes the public profile page.
func (c *Client) FetchSlow(ctx context.Context, handle string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchSlow")
	defer span.End()

	res, err := c.html.R().
		SetContext(ctx).
		Get("/user/" + handle + "/")
	if err != nil {
		return Profile{}, scrapeerr.Network(PlatformName, handle, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, handle, res.StatusCode()); err != nil {
		return Profile{}, err
	}

	return ParseProfileHTML(handle, string(res.Body()))
}
