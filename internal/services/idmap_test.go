package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david325345/animetoday/internal/cache"
)

func TestIMDBIdFor(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/ids", r.URL.Path)
		assert.Equal(t, "anilist", r.URL.Query().Get("source"))
		assert.Equal(t, "176301", r.URL.Query().Get("id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"anilist": 176301, "imdb": "tt22248376", "thetvdb": 424536}`))
	}))
	defer srv.Close()

	svc := NewIDMap(cache.New(10, time.Minute))
	svc.SetBaseURL(srv.URL)

	imdbID, err := svc.IMDBIdFor(176301)
	require.NoError(t, err)
	assert.Equal(t, "tt22248376", imdbID)

	// memoized
	_, err = svc.IMDBIdFor(176301)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestIMDBIdForNoMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"anilist": 5, "imdb": null}`))
	}))
	defer srv.Close()

	svc := NewIDMap(cache.New(10, time.Minute))
	svc.SetBaseURL(srv.URL)

	imdbID, err := svc.IMDBIdFor(5)

	require.NoError(t, err)
	assert.Empty(t, imdbID)
}

func TestIMDBIdForUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewIDMap(cache.New(10, time.Minute))
	svc.SetBaseURL(srv.URL)

	_, err := svc.IMDBIdFor(5)

	assert.Error(t, err)
}
