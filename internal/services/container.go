// Package services provides dependency injection container for application services.
package services

import (
	"context"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/cache"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/database"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/events"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/images"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/providers"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Logger   logger.Logger
	Registry *providers.Registry
	Engine   StreamResolver
	Events   events.Store
	Images   *images.Manager
	DB       database.Database
	Cache    cache.Cache[[]models.EventGroup]
}

// StreamResolver turns an event group into playable streams.
type StreamResolver interface {
	Resolve(ctx context.Context, group *models.EventGroup, enabledProviders []string) []models.Stream
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
