package nyaa

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/david325345/animetoday/pkg/httputil"
)

// Transport selects how the index is queried.
type Transport string

const (
	// TransportRSS queries the nyaa.si RSS feed. Items carry the info hash
	// directly, so no per-item follow-up is needed.
	TransportRSS Transport = "rss"
	// TransportAPI queries a structured JSON gateway with paged search.
	// Items occasionally omit the magnet and need one detail fetch.
	TransportAPI Transport = "api"
)

const (
	defaultRSSBaseURL = "https://nyaa.si"
	defaultAPIBaseURL = "https://nyaaapi.onrender.com"

	// English-translated anime category and no filter, matching what the
	// index calls c=1_2 / f=0.
	defaultCategory = "1_2"
	defaultFilter   = "0"

	searchTimeout = 10 * time.Second
)

// Client searches the Nyaa index over the configured transport.
type Client struct {
	httpClient *http.Client
	transport  Transport
	baseURL    string
	category   string
	filter     string
}

func NewClient(transport Transport) *Client {
	base := defaultRSSBaseURL
	if transport == TransportAPI {
		base = defaultAPIBaseURL
	}
	return &Client{
		httpClient: httputil.NewHTTPClient(searchTimeout),
		transport:  transport,
		baseURL:    base,
		category:   defaultCategory,
		filter:     defaultFilter,
	}
}

// SetBaseURL overrides the index endpoint, used by tests and self-hosted
// gateways.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SearchPage fetches one result page for a query. An empty slice with a nil
// error means the page had no results.
func (c *Client) SearchPage(query string, page int) ([]Torrent, error) {
	switch c.transport {
	case TransportAPI:
		return c.searchAPI(query, page)
	default:
		return c.searchRSS(query, page)
	}
}

// rssFeed mirrors the nyaa.si RSS document. The nyaa: namespace extensions
// carry seeders, size and info hash per item.
type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title    string `xml:"title"`
	GUID     string `xml:"guid"`
	InfoHash string `xml:"infoHash"`
	Seeders  int    `xml:"seeders"`
	Size     string `xml:"size"`
}

var viewIDPattern = regexp.MustCompile(`/view/(\d+)`)

func (c *Client) searchRSS(query string, page int) ([]Torrent, error) {
	// The RSS feed is not paged; any page past the first is empty so the
	// caller's pagination loop terminates after one fetch.
	if page > 1 {
		return nil, nil
	}

	feedURL := fmt.Sprintf("%s/?page=rss&q=%s&c=%s&f=%s",
		c.baseURL, url.QueryEscape(query), c.category, c.filter)

	resp, err := c.httpClient.Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nyaa feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nyaa feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read nyaa feed: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode nyaa feed: %w", err)
	}

	torrents := make([]Torrent, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		t := Torrent{
			ID:      extractViewID(item.GUID),
			Name:    item.Title,
			Size:    item.Size,
			Seeders: item.Seeders,
		}
		if item.InfoHash != "" {
			t.Magnet = BuildMagnet(item.InfoHash, item.Title)
		}
		torrents = append(torrents, t)
	}
	return torrents, nil
}

// apiResponse mirrors the JSON gateway search response.
type apiResponse struct {
	Data []apiTorrent `json:"data"`
}

type apiTorrent struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Magnet  string `json:"magnet"`
	Size    string `json:"size"`
	Seeders any    `json:"seeder"`
}

func (c *Client) searchAPI(query string, page int) ([]Torrent, error) {
	searchURL := fmt.Sprintf("%s/nyaa?q=%s&category=anime&page=%d",
		c.baseURL, url.QueryEscape(query), page)

	resp, err := c.httpClient.Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to search nyaa gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nyaa gateway returned status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode nyaa gateway response: %w", err)
	}

	torrents := make([]Torrent, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		torrents = append(torrents, Torrent{
			ID:      item.ID,
			Name:    item.Title,
			Magnet:  item.Magnet,
			Size:    item.Size,
			Seeders: toInt(item.Seeders),
		})
	}
	return torrents, nil
}

// FetchMagnet fetches the magnet URI for a single gateway item that lacked
// one in the search response.
func (c *Client) FetchMagnet(torrentID int) (string, error) {
	detailURL := fmt.Sprintf("%s/nyaa/id/%d", c.baseURL, torrentID)

	resp, err := c.httpClient.Get(detailURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch torrent detail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("torrent detail returned status %d", resp.StatusCode)
	}

	var detail apiTorrent
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return "", fmt.Errorf("failed to decode torrent detail: %w", err)
	}

	if detail.Magnet == "" {
		return "", fmt.Errorf("torrent %d has no magnet", torrentID)
	}
	return detail.Magnet, nil
}

// extractViewID pulls the numeric id out of a /view/<id> permalink.
func extractViewID(permalink string) int {
	m := viewIDPattern.FindStringSubmatch(permalink)
	if len(m) < 2 {
		return 0
	}
	id, _ := strconv.Atoi(m[1])
	return id
}

// toInt tolerates the gateway returning seeder counts as numbers or strings.
func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}
