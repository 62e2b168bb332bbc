package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/david325345/animetoday/internal/cache"
	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/internal/database"
	"github.com/david325345/animetoday/internal/models"
	"github.com/david325345/animetoday/pkg/httputil"
	"github.com/david325345/animetoday/pkg/logger"
)

const idMappingAPIBase = "https://arm.haglund.dev/api/v2"

// IDMap resolves alternate catalog identifiers for a schedule-source media
// id through the anime relations mapping service. Results are memoized in
// memory and in the database.
type IDMap struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.LRUCache
	db         database.Database
	logger     logger.Logger
}

func NewIDMap(memCache *cache.LRUCache) *IDMap {
	return &IDMap{
		httpClient: httputil.NewHTTPClient(constants.MappingTimeout),
		baseURL:    idMappingAPIBase,
		cache:      memCache,
		logger:     logger.New(),
	}
}

// SetDB sets the database used for persistent memoization.
func (m *IDMap) SetDB(db database.Database) {
	m.db = db
}

// SetBaseURL overrides the API endpoint, used by tests.
func (m *IDMap) SetBaseURL(baseURL string) {
	m.baseURL = baseURL
}

// IMDBIdFor returns the best-match IMDB identifier for a media id, or ""
// when the mapping service knows no equivalent.
func (m *IDMap) IMDBIdFor(mediaID int) (string, error) {
	cacheKey := fmt.Sprintf("idmap:%d", mediaID)

	if data, found := m.cache.Get(cacheKey); found {
		return data.(string), nil
	}

	if m.db != nil {
		if cached, err := m.db.GetIDMapping(mediaID); err == nil && cached != nil {
			m.cache.Set(cacheKey, cached.IMDBId)
			return cached.IMDBId, nil
		}
	}

	mappingURL := fmt.Sprintf("%s/ids?source=anilist&id=%d", m.baseURL, mediaID)

	resp, err := m.httpClient.Get(mappingURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch id mapping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("id mapping API error: status %d", resp.StatusCode)
	}

	var parsed models.IDMappingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode id mapping: %w", err)
	}

	m.cache.Set(cacheKey, parsed.IMDB)
	if m.db != nil {
		if err := m.db.StoreIDMapping(&database.IDMappingCache{MediaID: mediaID, IMDBId: parsed.IMDB}); err != nil {
			m.logger.Warnf("[IDMap] failed to store mapping cache: %v", err)
		}
	}

	return parsed.IMDB, nil
}
