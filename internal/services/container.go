// Package services provides the third-party API clients and the dependency
// injection container wiring them together.
package services

import (
	"context"

	"github.com/david325345/animetoday/internal/cache"
	"github.com/david325345/animetoday/internal/database"
	"github.com/david325345/animetoday/internal/models"
	"github.com/david325345/animetoday/internal/schedule"
	"github.com/david325345/animetoday/pkg/logger"
	"github.com/david325345/animetoday/pkg/nyaa"
)

// Container holds all application services for dependency injection.
type Container struct {
	Schedule   *schedule.Cache
	AniList    ScheduleService
	TMDB       TMDBService
	IDMap      IDMappingService
	Torrents   TorrentService
	RealDebrid UnlockService
	Cache      *cache.LRUCache
	DB         database.Database
	Logger     logger.Logger
}

// ScheduleService fetches the current day's airing schedule.
type ScheduleService interface {
	TodaySchedule(ctx context.Context) ([]*models.ScheduleEntry, error)
}

// TMDBService resolves artwork from the secondary metadata source.
type TMDBService interface {
	SetAPIKey(apiKey string)
	ImagesForShow(title string, year int, mediaID int) (*models.TMDBImages, error)
}

// IDMappingService resolves alternate catalog identifiers.
type IDMappingService interface {
	IMDBIdFor(mediaID int) (string, error)
}

// TorrentService searches the torrent index for an episode.
type TorrentService interface {
	Search(title string, episode int) []nyaa.Torrent
}

// UnlockService converts a magnet into a direct download URL through the
// debrid backend. An empty URL with a nil error means the job was accepted
// but not ready within the polling budget.
type UnlockService interface {
	Resolve(magnet, apiKey string) (string, error)
}
