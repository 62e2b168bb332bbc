// Package handlers implements HTTP request handlers for the Stremio addon API.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/david325345/animetoday/internal/config"
	"github.com/david325345/animetoday/internal/services"
)

// Handler handles HTTP requests for the Stremio addon.
type Handler struct {
	services *services.Container
	config   *config.Config
}

// New creates a new Handler with the provided services and configuration.
func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers all HTTP routes for the Stremio addon.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.handleHome)

	// Configuration page
	r.GET("/configure", h.handleConfigure)
	r.GET("/:configuration/configure", h.handleConfigure)

	// Manifest routes
	r.GET("/manifest.json", h.handleManifest)
	r.GET("/:configuration/manifest.json", h.handleManifest)

	// Resource routes - wrappers handle both with and without .json in the id
	r.GET("/:configuration/catalog/:type/:id", h.handleCatalogWrapper)
	r.GET("/:configuration/catalog/:type/:id/*extra", h.handleCatalogWrapper)
	r.GET("/:configuration/meta/:type/:id", h.handleMetaWrapper)
	r.GET("/:configuration/stream/:type/:id", h.handleStreamWrapper)

	// Debrid redirect used by lazily unlocked streams. Catch-all so
	// encoded slashes inside the magnet survive routing.
	r.GET("/rd/*magnet", h.handleRedirect)
}

func (h *Handler) handleHome(c *gin.Context) {
	c.String(200, "Welcome to Anime Today! Install the addon via /manifest.json.")
}

func (h *Handler) handleCatalogWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")
	promoteExtraParams(c)
	h.handleCatalog(c)
}

func (h *Handler) handleMetaWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")
	h.handleMeta(c)
}

func (h *Handler) handleStreamWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")
	h.handleStream(c)
}
