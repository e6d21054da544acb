package codechef

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"codetrack-backend/lib/scrapeerr"

	"github.com/stretchr/testify/require"
)

const profilePage = `<html><body>
<div class="user-details-container"><header><h1>chef</h1></header></div>
<div class="rating-number">1823</div>
<span class="rating-star">★★★★</span>
<div class="rating-ranks"><a><strong>5012</strong></a></div>
<section class="problems-solved"><h3>Total Problems Solved: 312</h3></section>
<div class="badge"><p class="badge__title">Problem Solver - Gold</p></div>
</body></html>`

func TestFetchFastParsesHeadlineOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/chef", r.URL.Path)
		w.Write([]byte(profilePage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	profile, err := client.FetchFast(context.Background(), "chef")
	require.NoError(t, err)
	require.Equal(t, "chef", profile.Username)
	require.Equal(t, int64(1823), profile.Rating)
	require.Equal(t, int64(312), profile.SolvedCount)
	// headline parse skips stars, ranks and badges
	require.Zero(t, profile.GlobalRank)
	require.Empty(t, profile.Badges)
}

func TestFetchSlowRunsFullParse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(profilePage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	profile, err := client.FetchSlow(context.Background(), "chef")
	require.NoError(t, err)
	require.Equal(t, int64(4), profile.Stars)
	require.Equal(t, int64(5012), profile.GlobalRank)
	require.Equal(t, []string{"Problem Solver - Gold"}, profile.Badges)
}

func TestParseRejectsNonProfilePage(t *testing.T) {
	// unknown usernames get the homepage with a 200
	_, err := ParseProfileHTML("ghost", `<html><body><div class="home-banner">Welcome</div></body></html>`)
	require.Equal(t, scrapeerr.KindUserNotFound, scrapeerr.KindOf(err))
}
