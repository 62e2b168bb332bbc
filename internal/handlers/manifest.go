package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/david325345/animetoday/internal/constants"
	"github.com/david325345/animetoday/internal/models"
)

func (h *Handler) handleManifest(c *gin.Context) {
	c.JSON(http.StatusOK, h.createManifest())
}

func (h *Handler) createManifest() models.Manifest {
	return models.Manifest{
		ID:          constants.AddonID,
		Version:     constants.AddonVersion,
		Name:        constants.AddonName,
		Description: constants.AddonDescription,
		Types:       []string{"series"},
		Resources:   []string{"catalog", "meta", "stream"},
		Catalogs: []models.Catalog{
			{
				Type: "series",
				ID:   constants.CatalogID,
				Name: "Airing Today",
				Extra: []models.ExtraField{
					{Name: "skip"},
				},
			},
		},
		BehaviorHints: models.BehaviorHints{
			Configurable: true,
		},
		IDPrefixes: []string{constants.IDPrefix},
	}
}
