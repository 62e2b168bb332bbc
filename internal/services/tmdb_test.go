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

// 32 hex chars, the v3 key format
const testTMDBKey = "0123456789abcdef0123456789abcdef"

func newTMDBServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	calls := new(int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search/tv":
			assert.Equal(t, "Frieren: Beyond Journey's End", r.URL.Query().Get("query"))
			w.Write([]byte(`{"results":[{"id": 209867, "name": "Frieren"}]}`))
		case "/tv/209867/images":
			w.Write([]byte(`{
				"posters": [
					{"file_path": "/ja.jpg", "iso_639_1": "ja"},
					{"file_path": "/en.jpg", "iso_639_1": "en"}
				],
				"backdrops": [
					{"file_path": "/none.jpg", "iso_639_1": ""}
				]
			}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestImagesForShowPicksLocaleAppropriateImages(t *testing.T) {
	srv, _ := newTMDBServer(t)
	svc := NewTMDB(testTMDBKey, cache.New(10, time.Minute))
	svc.SetBaseURL(srv.URL)

	images, err := svc.ImagesForShow("Frieren: Beyond Journey's End", 2025, 176301)

	require.NoError(t, err)
	require.NotNil(t, images)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/en.jpg", images.Poster)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/none.jpg", images.Backdrop)
}

func TestImagesForShowMemoizes(t *testing.T) {
	srv, calls := newTMDBServer(t)
	svc := NewTMDB(testTMDBKey, cache.New(10, time.Minute))
	svc.SetBaseURL(srv.URL)

	_, err := svc.ImagesForShow("Frieren: Beyond Journey's End", 2025, 176301)
	require.NoError(t, err)
	first := *calls

	_, err = svc.ImagesForShow("Frieren: Beyond Journey's End", 2025, 176301)
	require.NoError(t, err)

	assert.Equal(t, first, *calls, "second lookup should hit the cache")
}

func TestImagesForShowNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()
	svc := NewTMDB(testTMDBKey, cache.New(10, time.Minute))
	svc.SetBaseURL(srv.URL)

	images, err := svc.ImagesForShow("Completely Unknown Show", 0, 1)

	require.NoError(t, err)
	assert.Nil(t, images)
}

func TestImagesForShowRequiresKey(t *testing.T) {
	svc := NewTMDB("", cache.New(10, time.Minute))

	_, err := svc.ImagesForShow("Frieren", 2025, 176301)

	assert.Error(t, err)
}
