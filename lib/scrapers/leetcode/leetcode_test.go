package leetcode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codetrack-backend/lib/scrapeerr"

	"github.com/stretchr/testify/require"
)

func TestFetchFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/graphql", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		var body struct {
			Variables map[string]string `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Variables["username"] != "alice" {
			w.Write([]byte(`{"data":{"matchedUser":null}}`))
			return
		}
		w.Write([]byte(`{"data":{"matchedUser":{
			"username":"alice",
			"profile":{"ranking":512},
			"badges":[{"displayName":"Annual Badge 2025"}],
			"submitStatsGlobal":{"acSubmissionNum":[
				{"difficulty":"All","count":160},
				{"difficulty":"Easy","count":100},
				{"difficulty":"Medium","count":50},
				{"difficulty":"Hard","count":10}
			]}
		}}}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})

	profile, err := client.FetchFast(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, int64(160), profile.TotalSolved)
	require.Equal(t, int64(50), profile.MediumSolved)
	require.Equal(t, int64(512), profile.Ranking)
	require.Equal(t, []string{"Annual Badge 2025"}, profile.Badges)

	_, err = client.FetchFast(context.Background(), "nobody")
	require.Equal(t, scrapeerr.KindUserNotFound, scrapeerr.KindOf(err))
}

func TestParseProfileHTML(t *testing.T) {
	html := `<html><body>
		<span data-cy="username">alice</span>
		<div data-difficulty="easy">Easy 100/800</div>
		<div data-difficulty="medium">Medium 50/1700</div>
		<div data-difficulty="hard">Hard 10/700</div>
		<span class="text-label-1" data-cy="ranking">512</span>
		<div class="badge-container"><img alt="Annual Badge 2025"/></div>
	</body></html>`

	profile, err := ParseProfileHTML("alice", html)
	require.NoError(t, err)
	require.Equal(t, int64(160), profile.TotalSolved)
	require.Equal(t, int64(100), profile.EasySolved)
	require.Equal(t, int64(512), profile.Ranking)
	require.Equal(t, []string{"Annual Badge 2025"}, profile.Badges)
}

func TestParseProfileHTMLSelectorDrift(t *testing.T) {
	_, err := ParseProfileHTML("alice", `<html><body><p>redesigned page</p></body></html>`)
	require.Equal(t, scrapeerr.KindParse, scrapeerr.KindOf(err))
}
