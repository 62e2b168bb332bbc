package schedule

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/david325345/animetoday/internal/constants"
	apperrors "github.com/david325345/animetoday/internal/errors"
	"github.com/david325345/animetoday/internal/models"
	"github.com/david325345/animetoday/pkg/logger"
)

// Source produces the raw schedule for the current day.
type Source interface {
	TodaySchedule(ctx context.Context) ([]*models.ScheduleEntry, error)
}

// ImageProvider supplies poster and backdrop artwork for a show.
type ImageProvider interface {
	ImagesForShow(title string, year int, mediaID int) (*models.TMDBImages, error)
}

// IDMapper resolves an AniList media ID to an IMDB ID.
type IDMapper interface {
	IMDBIdFor(mediaID int) (string, error)
}

// Cache holds the current schedule snapshot. Reads never block: Current
// always returns the last published snapshot, and Refresh publishes a
// new one atomically only after it is fully built and enriched.
type Cache struct {
	snapshot atomic.Pointer[Snapshot]
	source   Source
	images   ImageProvider
	ids      IDMapper
	logger   logger.Logger

	// enrichDelay spaces out artwork lookups so a 50-entry refresh stays
	// inside the upstream rate limits. Tests set it to zero.
	enrichDelay time.Duration
}

func NewCache(source Source) *Cache {
	c := &Cache{
		source:      source,
		logger:      logger.New(),
		enrichDelay: constants.EnrichmentDelay,
	}
	c.snapshot.Store(NewSnapshot(nil))
	return c
}

// SetImageProvider enables TMDB artwork enrichment on refresh.
func (c *Cache) SetImageProvider(images ImageProvider) {
	c.images = images
}

// SetIDMapper enables IMDB id enrichment on refresh.
func (c *Cache) SetIDMapper(ids IDMapper) {
	c.ids = ids
}

// Current returns the last published snapshot, never nil.
func (c *Cache) Current() *Snapshot {
	return c.snapshot.Load()
}

// Refresh rebuilds the snapshot from the source. A source failure keeps
// the previous snapshot in place so readers keep serving stale data; a
// successful fetch with zero entries publishes an empty snapshot, since
// a day with no airings is a real state, not an error.
func (c *Cache) Refresh(ctx context.Context) error {
	entries, err := c.source.TodaySchedule(ctx)
	if err != nil {
		c.logger.Errorf("[Schedule] refresh failed, keeping previous snapshot: %v", err)
		return apperrors.NewScheduleFetchError("failed to refresh schedule", err)
	}

	c.enrich(ctx, entries)

	snapshot := NewSnapshot(entries)
	c.snapshot.Store(snapshot)
	c.logger.Infof("[Schedule] published snapshot with %d entries", snapshot.Len())
	return nil
}

// Run refreshes the schedule immediately and then on a fixed interval
// until the context is cancelled. The initial failure is logged but not
// fatal: the addon starts with an empty catalog and recovers on the next
// tick.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warnf("[Schedule] initial refresh failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				c.logger.Warnf("[Schedule] periodic refresh failed: %v", err)
			}
		}
	}
}

// enrich decorates entries with artwork and IMDB ids. Every lookup is
// fail-soft: an entry that cannot be enriched keeps its AniList data.
func (c *Cache) enrich(ctx context.Context, entries []*models.ScheduleEntry) {
	if c.images == nil && c.ids == nil {
		return
	}

	for i, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		if c.images != nil {
			images, err := c.images.ImagesForShow(entry.SearchTitle(), entry.SeasonYear, entry.MediaID)
			if err != nil {
				c.logger.Debugf("[Schedule] no TMDB images for %q: %v", entry.SearchTitle(), err)
			} else if images != nil {
				entry.TMDBPoster = images.Poster
				entry.TMDBBackdrop = images.Backdrop
			}
		}

		if c.ids != nil {
			imdbID, err := c.ids.IMDBIdFor(entry.MediaID)
			if err != nil {
				c.logger.Debugf("[Schedule] no IMDB id for media %d: %v", entry.MediaID, err)
			} else {
				entry.IMDBId = imdbID
			}
		}

		if c.enrichDelay > 0 && i < len(entries)-1 {
			time.Sleep(c.enrichDelay)
		}
	}
}
