package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/david325345/animetoday/internal/cache"
	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/internal/database"
	"github.com/david325345/animetoday/internal/models"
	"github.com/david325345/animetoday/pkg/httputil"
	"github.com/david325345/animetoday/pkg/logger"
	"github.com/david325345/animetoday/pkg/ratelimiter"
	"github.com/david325345/animetoday/pkg/security"
)

const (
	tmdbAPIBase      = "https://api.themoviedb.org/3"
	tmdbImageBase    = "https://image.tmdb.org/t/p"
	tmdbPosterSize   = "w500"
	tmdbBackdropSize = "w1280"
)

// TMDB resolves poster and backdrop artwork for a show by title and year.
// Lookups are memoized in memory and in the database; a show that TMDB
// cannot find is not retried within a cache cycle.
type TMDB struct {
	apiKey      string
	baseURL     string
	cache       *cache.LRUCache
	db          database.Database
	rateLimiter *ratelimiter.TokenBucket
	httpClient  *http.Client
	logger      logger.Logger
	validator   *security.APIKeyValidator
}

func NewTMDB(apiKey string, memCache *cache.LRUCache) *TMDB {
	validator := security.NewAPIKeyValidator()

	sanitized := ""
	if apiKey != "" {
		sanitized = validator.SanitizeAPIKey(apiKey)
	}

	return &TMDB{
		apiKey:      sanitized,
		baseURL:     tmdbAPIBase,
		cache:       memCache,
		rateLimiter: ratelimiter.NewTokenBucket(constants.TMDBRateLimit, constants.TMDBRateBurst),
		httpClient:  httputil.NewHTTPClient(constants.TMDBTimeout),
		logger:      logger.New(),
		validator:   validator,
	}
}

// SetDB sets the database used for persistent memoization.
func (t *TMDB) SetDB(db database.Database) {
	t.db = db
}

// SetBaseURL overrides the API endpoint, used by tests.
func (t *TMDB) SetBaseURL(baseURL string) {
	t.baseURL = baseURL
}

func (t *TMDB) SetAPIKey(apiKey string) {
	sanitized := t.validator.SanitizeAPIKey(apiKey)
	if apiKey != "" && !t.validator.IsValidTMDBKey(sanitized) {
		t.logger.Errorf("[TMDB] failed to set API key: invalid format (key: %s)", t.validator.MaskAPIKey(sanitized))
		return
	}
	t.apiKey = sanitized
}

// ImagesForShow finds the best-match TMDB entry for a title and year and
// returns its chosen poster and backdrop. Returns nil images without error
// when TMDB has no match.
func (t *TMDB) ImagesForShow(title string, year int, mediaID int) (*models.TMDBImages, error) {
	cacheKey := fmt.Sprintf("tmdb:images:%d", mediaID)

	if data, found := t.cache.Get(cacheKey); found {
		return data.(*models.TMDBImages), nil
	}

	if t.db != nil {
		if cached, err := t.db.GetTMDBImages(mediaID); err == nil && cached != nil {
			images := &models.TMDBImages{Poster: cached.Poster, Backdrop: cached.Backdrop}
			t.cache.Set(cacheKey, images)
			return images, nil
		}
	}

	if t.apiKey == "" {
		return nil, fmt.Errorf("TMDB API key not configured")
	}

	tmdbID, err := t.searchShow(title, year)
	if err != nil {
		return nil, err
	}
	if tmdbID == 0 {
		return nil, nil
	}

	images, err := t.fetchImages(tmdbID)
	if err != nil {
		return nil, err
	}

	t.cache.Set(cacheKey, images)
	if t.db != nil {
		dbCache := &database.TMDBImagesCache{
			MediaID:  mediaID,
			TMDBID:   tmdbID,
			Poster:   images.Poster,
			Backdrop: images.Backdrop,
		}
		if err := t.db.StoreTMDBImages(dbCache); err != nil {
			t.logger.Warnf("[TMDB] failed to store images cache: %v", err)
		}
	}

	return images, nil
}

// searchShow returns the first TV search result id, or 0 when nothing
// matches.
func (t *TMDB) searchShow(title string, year int) (int, error) {
	t.rateLimiter.Wait()

	params := url.Values{}
	params.Set("api_key", t.apiKey)
	params.Set("query", title)
	if year > 0 {
		params.Set("first_air_date_year", fmt.Sprintf("%d", year))
	}

	searchURL := fmt.Sprintf("%s/search/tv?%s", t.baseURL, params.Encode())

	t.logger.Debugf("[TMDB] searching for %q (%d)", title, year)

	resp, err := t.httpClient.Get(searchURL)
	if err != nil {
		return 0, fmt.Errorf("failed to search TMDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("TMDB API error: status %d", resp.StatusCode)
	}

	var parsed models.TMDBSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode TMDB response: %w", err)
	}

	if len(parsed.Results) == 0 {
		return 0, nil
	}
	return parsed.Results[0].ID, nil
}

// fetchImages picks the first English or language-neutral poster and
// backdrop for a show.
func (t *TMDB) fetchImages(tmdbID int) (*models.TMDBImages, error) {
	t.rateLimiter.Wait()

	imagesURL := fmt.Sprintf("%s/tv/%d/images?api_key=%s", t.baseURL, tmdbID, t.apiKey)

	resp, err := t.httpClient.Get(imagesURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch TMDB images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB API error: status %d", resp.StatusCode)
	}

	var parsed models.TMDBImagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode TMDB images: %w", err)
	}

	images := &models.TMDBImages{}
	if p := pickImage(parsed.Posters); p != "" {
		images.Poster = fmt.Sprintf("%s/%s%s", tmdbImageBase, tmdbPosterSize, p)
	}
	if b := pickImage(parsed.Backdrops); b != "" {
		images.Backdrop = fmt.Sprintf("%s/%s%s", tmdbImageBase, tmdbBackdropSize, b)
	}
	return images, nil
}

// pickImage prefers an English or language-neutral image, falling back to
// the first one.
func pickImage(candidates []models.TMDBImage) string {
	for _, img := range candidates {
		if img.Language == "en" || img.Language == "" {
			return img.FilePath
		}
	}
	if len(candidates) > 0 {
		return candidates[0].FilePath
	}
	return ""
}
