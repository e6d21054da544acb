package hackerrank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"codetrack-backend/lib/scrapeerr"

	"github.com/stretchr/testify/require"
)

func TestFetchFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/contests/master/hackers/hana/profile":
			w.Write([]byte(`{"model":{"username":"hana"}}`))
		case "/rest/hackers/hana/badges":
			w.Write([]byte(`{"models":[
				{"badge_name":"Problem Solving","stars":5,"solved":30},
				{"badge_name":"SQL","stars":3,"solved":12}
			]}`))
		case "/rest/contests/master/hackers/ghost/profile":
			w.Write([]byte(`{"model":null}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})

	profile, err := client.FetchFast(context.Background(), "hana")
	require.NoError(t, err)
	require.Equal(t, "hana", profile.Username)
	require.Equal(t, int64(42), profile.SolvedCount)
	require.Len(t, profile.Badges, 2)
	require.Equal(t, int64(5), profile.Badges[0].Stars)

	_, err = client.FetchFast(context.Background(), "ghost")
	require.Equal(t, scrapeerr.KindUserNotFound, scrapeerr.KindOf(err))
}

func TestParseProfileHTML(t *testing.T) {
	html := `<html><body>
	<h1 class="profile-heading">@hana</h1>
	<div class="hacker-badge">
		<text class="badge-title">Problem Solving</text>
		<svg class="badge-star"></svg><svg class="badge-star"></svg>
		<span class="badge-solved">30 solved</span>
	</div>
	</body></html>`

	profile, err := ParseProfileHTML("hana", html)
	require.NoError(t, err)
	require.Equal(t, "hana", profile.Username)
	require.Equal(t, int64(30), profile.SolvedCount)
	require.Len(t, profile.Badges, 1)
	require.Equal(t, int64(2), profile.Badges[0].Stars)
}

func TestParseProfileHTMLMissingHeading(t *testing.T) {
	_, err := ParseProfileHTML("ghost", `<html><body><p>404</p></body></html>`)
	require.Equal(t, scrapeerr.KindUserNotFound, scrapeerr.KindOf(err))
}
