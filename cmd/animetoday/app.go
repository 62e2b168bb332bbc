package main

import (
	"context"
	"os"

	"github.com/david325345/animetoday/internal/cache"
	"github.com/david325345/animetoday/internal/config"
	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/internal/database"
	"github.com/david325345/animetoday/internal/handlers"
	"github.com/david325345/animetoday/internal/schedule"
	"github.com/david325345/animetoday/internal/services"
	"github.com/david325345/animetoday/pkg/logger"
	"github.com/david325345/animetoday/pkg/nyaa"
	"github.com/david325345/animetoday/pkg/realdebrid"
)

var (
	Logger           logger.Logger
	DB               database.Database
	memoryCache      *cache.LRUCache
	cfg              *config.Config
	serviceContainer *services.Container
	handler          *handlers.Handler
)

func InitializeLogger() {
	Logger = logger.NewWithLevel(logger.ParseLevel(os.Getenv("LOG_LEVEL")))
}

func InitializeConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		Logger.Fatalf("[App] failed to load configuration: %v", err)
	}
	Logger.Infof("[App] base URL: %s, transport: %s, unlock mode: %s",
		cfg.BaseURL, cfg.SearchTransport, cfg.UnlockMode)
}

func InitializeDatabase() {
	var err error
	DB, err = database.NewBolt(cfg.DatabasePath)
	if err != nil {
		Logger.Fatalf("[App] failed to initialize database: %v", err)
	}
	Logger.Infof("[App] bolt database initialized at %s", cfg.DatabasePath)
}

func InitializeServices() {
	memoryCache = cache.New(cfg.CacheSize, cfg.CacheTTL)

	anilistService := services.NewAniList()

	tmdbService := services.NewTMDB(cfg.TMDBAPIKey, memoryCache)
	tmdbService.SetDB(DB)

	idmapService := services.NewIDMap(memoryCache)
	idmapService.SetDB(DB)

	scheduleCache := schedule.NewCache(anilistService)
	if cfg.TMDBAPIKey != "" {
		scheduleCache.SetImageProvider(tmdbService)
	}
	scheduleCache.SetIDMapper(idmapService)

	torrentService := services.NewTorrents(nyaa.NewClient(nyaa.Transport(cfg.SearchTransport)))
	unlockService := services.NewRealDebrid(realdebrid.NewClient())

	serviceContainer = &services.Container{
		Schedule:   scheduleCache,
		AniList:    anilistService,
		TMDB:       tmdbService,
		IDMap:      idmapService,
		Torrents:   torrentService,
		RealDebrid: unlockService,
		Cache:      memoryCache,
		DB:         DB,
		Logger:     Logger,
	}

	handler = handlers.New(serviceContainer, cfg)

	Logger.Infof("[App] services initialized successfully")
}

// StartBackgroundJobs launches the schedule refresh loop and the cache
// cleanup routine. Both stop when the context is cancelled.
func StartBackgroundJobs(ctx context.Context) {
	go serviceContainer.Schedule.Run(ctx, constants.RefreshInterval)
	go memoryCache.StartCleanup(ctx)
}
