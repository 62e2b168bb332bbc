package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/internal/models"
	"github.com/david325345/animetoday/pkg/httputil"
	"github.com/david325345/animetoday/pkg/logger"
)

const (
	aniListEndpoint = "https://graphql.anilist.co"

	airingScheduleQuery = `
	query ($dayStart: Int, $dayEnd: Int) {
	  Page(page: 1, perPage: %d) {
	    airingSchedules(airingAt_greater: $dayStart, airingAt_lesser: $dayEnd, sort: TIME) {
	      id
	      airingAt
	      episode
	      media {
	        id
	        title { romaji english native }
	        coverImage { extraLarge large }
	        bannerImage
	        description
	        genres
	        averageScore
	        season
	        seasonYear
	      }
	    }
	  }
	}`
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// AniList queries the AniList GraphQL API for the daily airing schedule.
type AniList struct {
	httpClient *http.Client
	endpoint   string
	logger     logger.Logger
	now        func() time.Time
}

func NewAniList() *AniList {
	return &AniList{
		httpClient: httputil.NewHTTPClient(constants.AniListTimeout),
		endpoint:   aniListEndpoint,
		logger:     logger.New(),
		now:        time.Now,
	}
}

// SetEndpoint overrides the GraphQL endpoint, used by tests.
func (a *AniList) SetEndpoint(endpoint string) {
	a.endpoint = endpoint
}

// TodaySchedule fetches all airing instances within the current UTC
// calendar day and converts them to schedule entries.
func (a *AniList) TodaySchedule(ctx context.Context) ([]*models.ScheduleEntry, error) {
	now := a.now().Unix()
	dayStart := now - (now % constants.SecondsPerDay)
	dayEnd := dayStart + constants.SecondsPerDay

	payload := map[string]interface{}{
		"query": fmt.Sprintf(airingScheduleQuery, constants.SchedulePageSize),
		"variables": map[string]int64{
			"dayStart": dayStart,
			"dayEnd":   dayEnd,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule source returned status %d", resp.StatusCode)
	}

	var parsed models.AniListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode schedule response: %w", err)
	}

	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("schedule source error: %s", parsed.Errors[0].Message)
	}

	schedules := parsed.Data.Page.AiringSchedules
	entries := make([]*models.ScheduleEntry, 0, len(schedules))
	for _, s := range schedules {
		entries = append(entries, convertSchedule(s))
	}

	a.logger.Debugf("[AniList] fetched %d airing instances for window %d-%d", len(entries), dayStart, dayEnd)
	return entries, nil
}

// convertSchedule maps one airing instance to a schedule entry, stripping
// HTML from the synopsis.
func convertSchedule(s models.AiringSchedule) *models.ScheduleEntry {
	m := s.Media
	return &models.ScheduleEntry{
		MediaID:         m.ID,
		Episode:         s.Episode,
		AiringAt:        s.AiringAt,
		TitleRomaji:     m.Title.Romaji,
		TitleEnglish:    m.Title.English,
		TitleNative:     m.Title.Native,
		CoverExtraLarge: m.CoverImage.ExtraLarge,
		CoverLarge:      m.CoverImage.Large,
		Banner:          m.BannerImage,
		Description:     htmlTagPattern.ReplaceAllString(m.Description, ""),
		Genres:          m.Genres,
		Score:           m.AverageScore,
		Season:          m.Season,
		SeasonYear:      m.SeasonYear,
	}
}
