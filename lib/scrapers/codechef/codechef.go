// codechef has no public api at all, so even the fast tier is an HTML
// parse. it stays "fast" by only touching the handful of selectors that
// hold the headline numbers instead of walking the whole page.
package codechef

import (
	"context"
	"net/http/cookiejar"
	"time"

	"codetrack-backend/lib/scrapeerr"
	"codetrack-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/codechef")

const PlatformName = "codechef"

type Profile struct {
	Username    string
	Rating      int64
	Stars       int64
	GlobalRank  int64
	SolvedCount int64
	Badges      []string
}

type ClientOptions struct {
	// BaseUrl overrides https://www.codechef.com, used by tests.
	BaseUrl string
}

type Client struct {
	html *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://www.codechef.com"
	}

	html := resty.New()
	html.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err == nil {
		html.SetCookieJar(jar)
	}
	html.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	html.SetTimeout(time.Second * 10)
	html.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(html.GetClient().Transport)
	telemetry.InstrumentResty(html, "scrapers/codechef/html")

	return &Client{html: html}
}

func (c *Client) fetchPage(ctx context.Context, username string) (string, error) {
	res, err := c.html.R().
		SetContext(ctx).
		Get("/users/" + username)
	if err != nil {
		return "", scrapeerr.Network(PlatformName, username, err)
	}
	if err := scrapeerr.FromStatus(PlatformName, username, res.StatusCode()); err != nil {
		return "", err
	}
	return string(res.Body()), nil
}

// FetchFast grabs the page once and reads only the headline widgets.
func (c *Client) FetchFast(ctx context.Context, username string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchFast")
	defer span.End()

	page, err := c.fetchPage(ctx, username)
	if err != nil {
		return Profile{}, err
	}
	return parseHeadline(username, page)
}

// FetchSlow re-fetches and runs the full parse (stars, ranks, badges).
func (c *Client) FetchSlow(ctx context.Context, username string) (Profile, error) {
	ctx, span := tracer.Start(ctx, "FetchSlow")
	defer span.End()

	page, err := c.fetchPage(ctx, username)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfileHTML(username, page)
}
