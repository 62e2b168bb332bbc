// Package realdebrid implements a client for the Real-Debrid REST API.
package realdebrid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/david325345/animetoday/pkg/httputil"
)

const defaultBaseURL = "https://api.real-debrid.com/rest/1.0"

// Client talks to the Real-Debrid REST API. Every call authenticates with
// a caller-supplied bearer token; the client itself holds no credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: httputil.NewHTTPClient(10 * time.Second),
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint,
// used by tests to point at a fake backend.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: httputil.NewHTTPClient(10 * time.Second),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// AddMagnetResponse is the response from the addMagnet endpoint.
type AddMagnetResponse struct {
	ID  string `json:"id"`
	URI string `json:"uri"`
}

// TorrentInfoResponse is the response from the torrents/info endpoint.
type TorrentInfoResponse struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Hash     string   `json:"hash"`
	Status   string   `json:"status"`
	Progress float64  `json:"progress"`
	Links    []string `json:"links"`
	Files    []struct {
		ID       int    `json:"id"`
		Path     string `json:"path"`
		Bytes    int64  `json:"bytes"`
		Selected int    `json:"selected"`
	} `json:"files"`
}

// UnrestrictResponse is the response from the unrestrict/link endpoint.
type UnrestrictResponse struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Filesize   int64  `json:"filesize"`
	Link       string `json:"link"`
	Host       string `json:"host"`
	Download   string `json:"download"`
	Streamable int    `json:"streamable"`
}

// APIError is the error body returned by Real-Debrid on failures.
type APIError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("real-debrid API error %d: %s", e.Code, e.Message)
}

// AddMagnet registers a magnet URI and returns the backend torrent id.
func (c *Client) AddMagnet(apiKey, magnet string) (*AddMagnetResponse, error) {
	form := url.Values{}
	form.Set("magnet", magnet)

	var result AddMagnetResponse
	if err := c.postForm(apiKey, "/torrents/addMagnet", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddTorrent registers a raw torrent file and returns the backend torrent id.
func (c *Client) AddTorrent(apiKey string, torrent []byte) (*AddMagnetResponse, error) {
	req, err := http.NewRequest(http.MethodPut, c.baseURL+"/torrents/addTorrent", bytes.NewReader(torrent))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/x-bittorrent")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var result AddMagnetResponse
	if err := c.decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SelectFiles marks files of a registered torrent for download. Pass "all"
// to include every file.
func (c *Client) SelectFiles(apiKey, torrentID, files string) error {
	form := url.Values{}
	form.Set("files", files)

	return c.postForm(apiKey, "/torrents/selectFiles/"+torrentID, form, nil)
}

// GetTorrentInfo fetches the current status of a registered torrent.
func (c *Client) GetTorrentInfo(apiKey, torrentID string) (*TorrentInfoResponse, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/torrents/info/"+torrentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var result TorrentInfoResponse
	if err := c.decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnrestrictLink exchanges a hoster link for a direct download URL.
func (c *Client) UnrestrictLink(apiKey, link string) (*UnrestrictResponse, error) {
	form := url.Values{}
	form.Set("link", link)

	var result UnrestrictResponse
	if err := c.postForm(apiKey, "/unrestrict/link", form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTorrent removes a torrent from the account.
func (c *Client) DeleteTorrent(apiKey, torrentID string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/torrents/delete/"+torrentID, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.apiError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) postForm(apiKey, endpoint string, form url.Values, result interface{}) error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	if result == nil {
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			return c.apiError(resp)
		}
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	return c.decodeResponse(resp, result)
}

func (c *Client) decodeResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.apiError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("real-debrid API status %d", resp.StatusCode)
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		return fmt.Errorf("real-debrid API status %d", resp.StatusCode)
	}
	return &apiErr
}
