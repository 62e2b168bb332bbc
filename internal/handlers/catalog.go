package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/internal/models"
)

func (h *Handler) handleCatalog(c *gin.Context) {
	catalogType := c.Param("type")
	catalogID := c.Param("id")

	if catalogType != "series" || catalogID != constants.CatalogID {
		h.services.Logger.Warnf("[CatalogHandler] unknown catalog: %s/%s", catalogType, catalogID)
		c.JSON(http.StatusOK, models.CatalogResponse{Metas: []models.Meta{}})
		return
	}

	// The whole day fits in one page; any skip means the player already
	// has everything.
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err == nil && skip > 0 {
		c.JSON(http.StatusOK, models.CatalogResponse{Metas: []models.Meta{}})
		return
	}

	snapshot := h.services.Schedule.Current()
	metas := make([]models.Meta, 0, snapshot.Len())
	for _, entry := range snapshot.Entries() {
		metas = append(metas, h.entryToMeta(entry))
	}

	h.services.Logger.Infof("[CatalogHandler] returning %d airing entries", len(metas))
	c.JSON(http.StatusOK, models.CatalogResponse{Metas: metas})
}

func (h *Handler) handleMeta(c *gin.Context) {
	metaID := c.Param("id")

	id, ok := models.ParseEpisodeID(metaID)
	if !ok {
		h.services.Logger.Warnf("[MetaHandler] invalid id: %s", metaID)
		c.JSON(http.StatusOK, models.MetaResponse{Meta: nil})
		return
	}

	entry, found := h.services.Schedule.Current().Find(id.MediaID, id.Episode)
	if !found {
		h.services.Logger.Debugf("[MetaHandler] no schedule entry for %s", metaID)
		c.JSON(http.StatusOK, models.MetaResponse{Meta: nil})
		return
	}

	meta := h.entryToMeta(entry)
	meta.Videos = []models.Video{
		{
			ID:       meta.ID,
			Title:    fmt.Sprintf("Episode %d", entry.Episode),
			Season:   1,
			Episode:  entry.Episode,
			Released: time.Unix(entry.AiringAt, 0).UTC().Format(time.RFC3339),
		},
	}

	c.JSON(http.StatusOK, models.MetaResponse{Meta: &meta})
}

func (h *Handler) entryToMeta(entry *models.ScheduleEntry) models.Meta {
	poster := firstNonEmpty(entry.TMDBPoster, entry.CoverExtraLarge, entry.CoverLarge, constants.PlaceholderPoster)
	background := firstNonEmpty(entry.Banner, entry.TMDBBackdrop, poster)

	description := fmt.Sprintf("Episode %d", entry.Episode)
	if entry.Description != "" {
		description += "\n\n" + entry.Description
	}

	id := models.EpisodeID{MediaID: entry.MediaID, Episode: entry.Episode}
	return models.Meta{
		ID:          id.String(),
		Type:        "series",
		Name:        entry.DisplayTitle(),
		Poster:      poster,
		Background:  background,
		Description: description,
		ReleaseInfo: entry.ReleaseInfo(),
		IMDBRating:  entry.Rating(),
		IMDBId:      entry.IMDBId,
		Genres:      entry.Genres,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
