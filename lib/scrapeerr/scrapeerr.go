// Package scrapeerr is the error taxonomy shared by every platform
// scraping client. Tier fallback in the statistics engine keys off the
// Kind, so clients must classify failures instead of returning bare
// transport errors.
package scrapeerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindUserNotFound means the platform confirmed no such profile.
	KindUserNotFound Kind = iota
	// KindAccessDenied means the platform blocked the request (403/429,
	// captcha walls, cloudflare challenges).
	KindAccessDenied
	// KindNetwork covers timeouts and connection failures.
	KindNetwork
	// KindParse means the markup or schema drifted out from under a
	// selector.
	KindParse
	// KindValidation means the scrape succeeded transport-wise but the
	// payload was implausible (empty-but-200 pages).
	KindValidation
	// KindAllTiersFailed is terminal, set only by the orchestrator after
	// fast, slow and browser tiers were all exhausted.
	KindAllTiersFailed
)

func (k Kind) String() string {
	switch k {
	case KindUserNotFound:
		return "user not found"
	case KindAccessDenied:
		return "access denied"
	case KindNetwork:
		return "network error"
	case KindParse:
		return "parse error"
	case KindValidation:
		return "validation failed"
	case KindAllTiersFailed:
		return "all tiers failed"
	}
	return "unknown"
}

type Error struct {
	Kind     Kind
	Platform string
	Username string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %s: %s", e.Platform, e.Username, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %q: %s", e.Platform, e.Username, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so callers can use
// errors.Is(err, scrapeerr.ErrUserNotFound) without caring which
// platform produced it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUserNotFound   = &Error{Kind: KindUserNotFound}
	ErrAccessDenied   = &Error{Kind: KindAccessDenied}
	ErrNetwork        = &Error{Kind: KindNetwork}
	ErrParse          = &Error{Kind: KindParse}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrAllTiersFailed = &Error{Kind: KindAllTiersFailed}
)

func New(kind Kind, platform, username string, err error) *Error {
	return &Error{Kind: kind, Platform: platform, Username: username, Err: err}
}

// FromStatus classifies an HTTP status code, returning nil for 2xx.
func FromStatus(platform, username string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return New(KindUserNotFound, platform, username, fmt.Errorf("http %d", status))
	case status == http.StatusForbidden || status == http.StatusTooManyRequests:
		return New(KindAccessDenied, platform, username, fmt.Errorf("http %d", status))
	default:
		return New(KindNetwork, platform, username, fmt.Errorf("http %d", status))
	}
}

// Network wraps a transport-level failure (nil-safe).
func Network(platform, username string, err error) error {
	if err == nil {
		return nil
	}
	return New(KindNetwork, platform, username, err)
}

// KindOf reports the Kind of an error produced by this package, or
// KindNetwork for anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNetwork
}
