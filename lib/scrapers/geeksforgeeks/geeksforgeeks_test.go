package geeksforgeeks

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
		require.Equal(t, "/api-get/user-profile-info/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("handle") {
		case "geek":
			w.Write([]byte(`{"message":"success","data":{
				"name":"geek","score":250,"total_problems_solved":120,"monthly_score":40
			}}`))
		default:
			w.Write([]byte(`{"message":"user not found","data":null}`))
		}
	}))
	defer server.Close()

	client := NewClient(ClientOptions{ApiBaseUrl: server.URL})

	profile, err := client.FetchFast(context.Background(), "geek")
	require.NoError(t, err)
	require.Equal(t, "geek", profile.Handle)
	require.Equal(t, int64(250), profile.CodingScore)
	require.Equal(t, int64(120), profile.SolvedCount)
	require.Equal(t, int64(40), profile.MonthlyScore)

	_, err = client.FetchFast(context.Background(), "ghost")
	require.Equal(t, scrapeerr.KindUserNotFound, scrapeerr.KindOf(err))
}

func TestParseProfileHTML(t *testing.T) {
	html := `<html><body>
	<div class="profilePicSection_head_userHandle">geek</div>
	<span class="educationDetails_head_left_userRankContainer--text"><b>7 Rank</b></span>
	<div class="scoreCard">
		<div class="scoreCard_head_left--text">Coding Score</div>
		<div class="scoreCard_head_left--score">250</div>
	</div>
	<div class="scoreCard">
		<div class="scoreCard_head_left--text">Problem Solved</div>
		<div class="scoreCard_head_left--score">120</div>
	</div>
	<div class="scoreCard">
		<div class="scoreCard_head_left--text">Monthly Coding Score</div>
		<div class="scoreCard_head_left--score">40</div>
	</div>
	</body></html>`

	profile, err := ParseProfileHTML("geek", html)
	require.NoError(t, err)
	require.Equal(t, int64(250), profile.CodingScore)
	require.Equal(t, int64(120), profile.SolvedCount)
	require.Equal(t, int64(40), profile.MonthlyScore)
	require.Equal(t, int64(7), profile.InstituteRank)
}

func TestParseProfileHTMLSelectorDrift(t *testing.T) {
	_, err := ParseProfileHTML("geek", `<html><body><p>new layout</p></body></html>`)
	require.Equal(t, scrapeerr.KindParse, scrapeerr.KindOf(err))
}
