package codeforces

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
		case "/api/user.info":
			if r.URL.Query().Get("handles") != "petr" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"status":"FAILED","comment":"handles: User with handle ghost not found"}`))
				return
			}
			w.Write([]byte(`{"status":"OK","result":[
				{"handle":"petr","rating":2900,"maxRating":3098,"rank":"legendary grandmaster"}
			]}`))
		case "/api/user.status":
			w.Write([]byte(`{"status":"OK","result":[
				{"verdict":"OK","problem":{"contestId":1,"index":"A"}},
				{"verdict":"OK","problem":{"contestId":1,"index":"A"}},
				{"verdict":"OK","problem":{"contestId":2,"index":"B"}},
				{"verdict":"WRONG_ANSWER","problem":{"contestId":3,"index":"C"}}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})

	profile, err := client.FetchFast(context.Background(), "petr")
	require.NoError(t, err)
	require.Equal(t, "petr", profile.Handle)
	require.Equal(t, int64(2900), profile.Rating)
	require.Equal(t, int64(3098), profile.MaxRating)
	// resubmissions of the same problem count once
	require.Equal(t, int64(2), profile.SolvedCount)

	_, err = client.FetchFast(context.Background(), "ghost")
	require.Equal(t, scrapeerr.KindUserNotFound, scrapeerr.KindOf(err))
}

func TestFetchFastToleratesMissingSubmissionHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/user.info":
			w.Write([]byte(`{"status":"OK","result":[{"handle":"lurker","rating":1200,"maxRating":1200,"rank":"pupil"}]}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	profile, err := client.FetchFast(context.Background(), "lurker")
	require.NoError(t, err)
	require.Equal(t, int64(0), profile.SolvedCount)
	require.Equal(t, int64(1200), profile.Rating)
}

func TestParseProfileHTML(t *testing.T) {
	html := `<html><body><div class="info">
		<div class="main-info"><h1><a>petr</a></h1></div>
		<ul><li>Contest rating: 2900 (max. legendary grandmaster, 3098)</li></ul>
	</div>
	<div class="user-rank"><span>Legendary Grandmaster</span></div>
	<div class="_UserActivityFrame_counterValue">2000 problems</div>
	</body></html>`

	profile, err := ParseProfileHTML("petr", html)
	require.NoError(t, err)
	require.Equal(t, "petr", profile.Handle)
	require.Equal(t, int64(2900), profile.Rating)
	require.Equal(t, int64(3098), profile.MaxRating)
	require.Equal(t, "Legendary Grandmaster", profile.Rank)
	require.Equal(t, int64(2000), profile.SolvedCount)
}

func TestParseProfileHTMLUnknownHandle(t *testing.T) {
	_, err := ParseProfileHTML("ghost", `<html><body><p>no such user</p></body></html>`)
	require.Equal(t, scrapeerr.KindUserNotFound, scrapeerr.KindOf(err))
}
