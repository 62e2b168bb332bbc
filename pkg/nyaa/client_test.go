package nyaa

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:nyaa="https://nyaa.si/xmlns/nyaa">
  <channel>
    <item>
      <title>[Subs] Frieren - 08 (1080p)</title>
      <guid isPermaLink="true">https://nyaa.si/view/1837420</guid>
      <nyaa:seeders>245</nyaa:seeders>
      <nyaa:infoHash>aab1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9</nyaa:infoHash>
      <nyaa:size>1.4 GiB</nyaa:size>
    </item>
    <item>
      <title>[Other] Frieren - 08 (720p)</title>
      <guid isPermaLink="true">https://nyaa.si/view/1837421</guid>
      <nyaa:seeders>12</nyaa:seeders>
      <nyaa:infoHash></nyaa:infoHash>
      <nyaa:size>700 MiB</nyaa:size>
    </item>
  </channel>
</rss>`

func TestSearchPageRSS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rss", r.URL.Query().Get("page"))
		assert.Equal(t, "Frieren 8", r.URL.Query().Get("q"))
		assert.Equal(t, "1_2", r.URL.Query().Get("c"))
		w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	c := NewClient(TransportRSS)
	c.SetBaseURL(srv.URL)

	torrents, err := c.SearchPage("Frieren 8", 1)

	require.NoError(t, err)
	require.Len(t, torrents, 2)
	assert.Equal(t, 1837420, torrents[0].ID)
	assert.Equal(t, "[Subs] Frieren - 08 (1080p)", torrents[0].Name)
	assert.Equal(t, 245, torrents[0].Seeders)
	assert.Equal(t, "1.4 GiB", torrents[0].Size)
	assert.Equal(t, "aab1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9", torrents[0].InfoHash())
	// no info hash, no magnet
	assert.Empty(t, torrents[1].Magnet)
}

func TestSearchPageRSSIsSinglePage(t *testing.T) {
	c := NewClient(TransportRSS)

	torrents, err := c.SearchPage("Frieren 8", 2)

	require.NoError(t, err)
	assert.Empty(t, torrents)
}

func TestSearchPageAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nyaa", r.URL.Path)
		assert.Equal(t, "Frieren 8", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id": 101, "title": "[Subs] Frieren - 08", "magnet": "magnet:?xt=urn:btih:aaa111", "size": "1.4 GiB", "seeder": 245},
			{"id": 102, "title": "[Other] Frieren - 08", "magnet": "", "size": "700 MiB", "seeder": "12"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(TransportAPI)
	c.SetBaseURL(srv.URL)

	torrents, err := c.SearchPage("Frieren 8", 2)

	require.NoError(t, err)
	require.Len(t, torrents, 2)
	assert.Equal(t, 245, torrents[0].Seeders)
	// string seeder counts are tolerated
	assert.Equal(t, 12, torrents[1].Seeders)
	assert.Empty(t, torrents[1].Magnet)
}

func TestFetchMagnet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nyaa/id/102", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 102, "title": "[Other] Frieren - 08", "magnet": "magnet:?xt=urn:btih:bbb222"}`))
	}))
	defer srv.Close()

	c := NewClient(TransportAPI)
	c.SetBaseURL(srv.URL)

	magnet, err := c.FetchMagnet(102)

	require.NoError(t, err)
	assert.Equal(t, "magnet:?xt=urn:btih:bbb222", magnet)
}

func TestFetchMagnetMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 103, "title": "no magnet here"}`))
	}))
	defer srv.Close()

	c := NewClient(TransportAPI)
	c.SetBaseURL(srv.URL)

	_, err := c.FetchMagnet(103)

	assert.Error(t, err)
}

func TestBuildMagnet(t *testing.T) {
	magnet := BuildMagnet("AAB1C2D3", "[Subs] Frieren - 08 (1080p)")

	assert.Contains(t, magnet, "magnet:?xt=urn:btih:AAB1C2D3")
	assert.Contains(t, magnet, "dn=")
	assert.Contains(t, magnet, "tr=")
}
