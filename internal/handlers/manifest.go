package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/images"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
)

func (h *Handler) handleManifest(c *gin.Context) {
	c.JSON(http.StatusOK, h.Manifest())
}

// Manifest describes the addon. The same manifest is served with or without
// a configuration segment.
func (h *Handler) Manifest() models.Manifest {
	return models.Manifest{
		ID:          constants.AddonID,
		Version:     constants.AddonVersion,
		Name:        constants.AddonName,
		Description: constants.AddonDescription,
		Types:       []string{constants.ContentTypeTV},
		Resources:   []string{ResourceCatalog, ResourceMeta, ResourceStream},
		Catalogs:    []models.Catalog{h.eventsCatalog()},
		BehaviorHints: models.BehaviorHints{
			Configurable: true,
		},
		IDPrefixes: []string{constants.IDPrefix},
		Background: images.DefaultBackground,
		Logo:       constants.AddonLogo,
	}
}

func (h *Handler) eventsCatalog() models.Catalog {
	categories := make([]string, 0, len(h.catalog.Categories)+1)
	categories = append(categories, constants.CategoryAll)
	categories = append(categories, h.catalog.Categories...)

	return models.Catalog{
		Type: constants.ContentTypeTV,
		ID:   constants.CatalogID,
		Name: constants.CatalogName,
		Extra: []models.ExtraField{
			{Name: constants.ExtraStatus, Options: constants.StatusOptions},
			{Name: constants.ExtraCategory, Options: categories},
		},
	}
}
