package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cehbz/torrentname"
	"github.com/gin-gonic/gin"

	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/internal/models"
	"github.com/david325345/animetoday/pkg/nyaa"
)

func (h *Handler) handleStream(c *gin.Context) {
	configuration := c.Param("configuration")
	streamID := c.Param("id")

	user := decodeUserConfig(configuration)
	apiKey := h.config.RealDebridKey(user)

	id, ok := models.ParseEpisodeID(streamID)
	if !ok {
		h.services.Logger.Warnf("[StreamHandler] invalid id: %s", streamID)
		c.JSON(http.StatusOK, models.StreamResponse{Streams: []models.Stream{}})
		return
	}

	entry, found := h.services.Schedule.Current().Find(id.MediaID, id.Episode)
	if !found {
		h.services.Logger.Debugf("[StreamHandler] no schedule entry for %s", streamID)
		c.JSON(http.StatusOK, models.StreamResponse{Streams: []models.Stream{}})
		return
	}

	h.services.Logger.Infof("[StreamHandler] processing %s episode %d", entry.DisplayTitle(), entry.Episode)

	torrents := h.services.Torrents.Search(entry.DisplayTitle(), entry.Episode)
	if len(torrents) == 0 && entry.TitleEnglish != "" && entry.TitleEnglish != entry.DisplayTitle() {
		torrents = h.services.Torrents.Search(entry.TitleEnglish, entry.Episode)
	}

	streams := h.buildStreams(torrents, apiKey)
	c.JSON(http.StatusOK, models.StreamResponse{Streams: streams})
}

// buildStreams converts the ranked candidates into stream entries. In lazy
// mode every entry points at the /rd redirect, so nothing is unlocked until
// the user actually presses play. Eager mode unlocks the top candidates up
// front so the player gets direct URLs.
func (h *Handler) buildStreams(torrents []nyaa.Torrent, apiKey string) []models.Stream {
	streams := make([]models.Stream, 0, len(torrents))
	eager := h.config.UnlockMode == constants.UnlockModeEager && apiKey != ""

	for i, torrent := range torrents {
		if torrent.Magnet == "" {
			continue
		}

		stream := models.Stream{
			Name:  h.streamName(torrent),
			Title: h.streamTitle(torrent),
		}

		if eager {
			if i < constants.MaxEagerUnlocks {
				if direct, err := h.services.RealDebrid.Resolve(torrent.Magnet, apiKey); err == nil && direct != "" {
					stream.URL = direct
					streams = append(streams, stream)
					continue
				} else if err != nil {
					h.services.Logger.Warnf("[StreamHandler] eager unlock failed for %q: %v", torrent.Name, err)
				}
			}
			// not unlocked: offer the magnet itself
			stream.URL = torrent.Magnet
			stream.BehaviorHints = &models.StreamBehaviorHints{NotWebReady: true}
			streams = append(streams, stream)
			continue
		}

		if apiKey != "" {
			stream.URL = h.redirectURL(torrent.Magnet, apiKey)
		} else {
			// Without a debrid credential the magnet itself is all we
			// can offer.
			stream.URL = torrent.Magnet
			stream.BehaviorHints = &models.StreamBehaviorHints{NotWebReady: true}
		}
		streams = append(streams, stream)
	}

	return streams
}

func (h *Handler) redirectURL(magnet, apiKey string) string {
	return fmt.Sprintf("%s/rd/%s?key=%s",
		h.config.BaseURL, url.QueryEscape(magnet), url.QueryEscape(apiKey))
}

func (h *Handler) streamName(torrent nyaa.Torrent) string {
	resolution := "?"
	if parsed := torrentname.Parse(torrent.Name); parsed != nil && parsed.Resolution != "" {
		resolution = parsed.Resolution
	}
	return fmt.Sprintf("%s\n%s", constants.AddonName, resolution)
}

func (h *Handler) streamTitle(torrent nyaa.Torrent) string {
	title := torrent.Name
	if torrent.Size != "" {
		title += fmt.Sprintf("\n💾 %s", torrent.Size)
	}
	title += fmt.Sprintf("\n👤 %d seeders", torrent.Seeders)
	return title
}

// handleRedirect unlocks a magnet through the debrid backend at play time
// and bounces the player to the resulting direct URL.
func (h *Handler) handleRedirect(c *gin.Context) {
	magnet := strings.TrimPrefix(c.Param("magnet"), "/")
	apiKey := c.Query("key")

	if apiKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing key parameter"})
		return
	}
	if magnet == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing magnet"})
		return
	}

	direct, err := h.services.RealDebrid.Resolve(magnet, apiKey)
	if err != nil {
		h.services.Logger.Errorf("[RedirectHandler] unlock failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to unlock torrent"})
		return
	}
	if direct == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "torrent not ready, try again later"})
		return
	}

	c.Redirect(http.StatusFound, direct)
}
