// Package handlers implements HTTP request handlers for the Stremio addon API.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/config"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/services"
)

// Catalog is the catalog data computed once at startup.
type Catalog struct {
	Categories []string
}

// Handler handles HTTP requests for the Stremio addon.
type Handler struct {
	services *services.Container
	config   *config.Config
	catalog  Catalog
	routes   map[routeKey]resourceFunc
}

// New creates a new Handler with the provided services, configuration and catalog data.
func New(services *services.Container, config *config.Config, catalog Catalog) *Handler {
	h := &Handler{
		services: services,
		config:   config,
		catalog:  Catalog{Categories: append([]string(nil), catalog.Categories...)},
	}
	h.routes = h.buildRoutes()
	return h
}

// RegisterRoutes registers all HTTP routes for the Stremio addon.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.handleHome)
	r.GET("/health", h.handleHealth)
	if h.config.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Configuration routes
	r.GET("/configure", h.handleConfigure)
	r.GET("/:configuration/configure", h.handleConfigure)

	// Manifest routes
	r.GET("/manifest.json", h.handleManifest)
	r.GET("/:configuration/manifest.json", h.handleManifest)

	// Resource routes, with and without the configuration segment
	for _, prefix := range []string{"", "/:configuration"} {
		r.GET(prefix+"/catalog/:type/:id", h.handleResource(ResourceCatalog))
		r.GET(prefix+"/catalog/:type/:id/*extra", h.handleResource(ResourceCatalog))
		r.GET(prefix+"/meta/:type/:id", h.handleResource(ResourceMeta))
		r.GET(prefix+"/stream/:type/:id", h.handleResource(ResourceStream))
	}
}

func (h *Handler) handleHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/configure")
}

// handleResource adapts an addon resource request to Dispatch.
func (h *Handler) handleResource(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		stripJSONExtension(c, "id")

		req := Request{
			Resource: resource,
			Type:     c.Param("type"),
			ID:       c.Param("id"),
			Extra:    parseExtra(c.Param("extra"), c.Request.URL.Query()),
			Config:   h.userConfig(c.Param("configuration")),
		}

		ctx := c.Request.Context()
		if resource == ResourceStream && h.config.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.config.RequestTimeout.Std())
			defer cancel()
		}

		resp := h.Dispatch(ctx, req)
		if resp == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *Handler) userConfig(encoded string) models.UserConfig {
	if encoded == "" {
		return models.UserConfig{}
	}
	cfg, err := decodeUserConfig(encoded)
	if err != nil {
		h.services.Logger.Warnf("[Handler] ignoring undecodable configuration: %v", err)
		return models.UserConfig{}
	}
	return cfg
}
