// Package browser renders profile pages in headless Chrome for the
// platforms that hide their numbers behind client-side rendering or
// anti-scraping walls the plain HTTP clients cannot pass.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

const DefaultNavTimeout = time.Second * 30

type Options struct {
	// RemoteURL is the websocket url of an external Chrome instance.
	// Empty launches a local one via the rod launcher.
	RemoteURL string
	// NavTimeout bounds navigation + page load per fetch.
	NavTimeout time.Duration
}

// Fetcher owns at most one Chrome process, launched lazily on the first
// fetch. A fetch opens a stealth page, navigates, waits for load and
// returns the rendered outer HTML.
type Fetcher struct {
	opts Options

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

func NewFetcher(opts Options) *Fetcher {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = DefaultNavTimeout
	}
	return &Fetcher{opts: opts}
}

func (f *Fetcher) connect() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	var wsURL string
	if f.opts.RemoteURL != "" {
		wsURL = f.opts.RemoteURL
	} else {
		lnch := launcher.New().Headless(true)
		u, err := lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		f.lnch = lnch
		wsURL = u
	}

	b := rod.New().ControlURL(wsURL)
	err := b.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	f.browser = b
	return b, nil
}

// FetchHTML navigates to pageURL and returns the rendered document.
func (f *Fetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	b, err := f.connect()
	if err != nil {
		return "", err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return "", fmt.Errorf("create stealth page: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, f.opts.NavTimeout)
	defer cancel()

	err = page.Context(navCtx).Navigate(pageURL)
	if err != nil {
		return "", fmt.Errorf("navigate %s: %w", pageURL, err)
	}
	err = page.Context(navCtx).WaitLoad()
	if err != nil {
		return "", fmt.Errorf("wait load %s: %w", pageURL, err)
	}

	res, err := page.Context(navCtx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("read dom %s: %w", pageURL, err)
	}
	return res.Value.Str(), nil
}

// Close tears down the Chrome process if one was launched.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser == nil {
		return nil
	}
	err := f.browser.Close()
	f.browser = nil
	if f.lnch != nil {
		f.lnch.Cleanup()
		f.lnch = nil
	}
	return err
}
