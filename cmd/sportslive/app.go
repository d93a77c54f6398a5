package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/cache"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/config"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/database"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/events"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/handlers"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/images"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/providers"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/resolver"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/services"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/httputil"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

// app holds everything built during startup.
type app struct {
	logger    logger.Logger
	config    *config.Config
	db        *database.BoltDB
	listings  *cache.LRU[[]models.EventGroup]
	events    *events.Manager
	images    *images.Manager
	container *services.Container
	handler   *handlers.Handler
}

func (a *app) InitializeLogger() {
	a.logger = logger.New()
}

func (a *app) InitializeConfig() {
	cfg, err := config.Load(a.logger)
	if err != nil {
		a.logger.Fatalf("[App] invalid configuration: %v", err)
	}
	if !logger.ValidLevel(cfg.LogLevel) {
		a.logger.Warnf("[App] unknown log level '%s', defaulting to info", cfg.LogLevel)
	}
	a.logger = logger.NewWithWriter(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	a.config = cfg
}

func (a *app) InitializeDatabase() {
	db, err := database.NewBolt(a.config.DatabasePath)
	if err != nil {
		a.logger.Fatalf("[App] failed to initialize database: %v", err)
	}
	a.db = db
	a.logger.Infof("[App] bolt database initialized at %s", a.config.DatabasePath)
}

// InitializeServices builds the provider registry, loads artwork and events
// in parallel, then derives the catalog categories.
func (a *app) InitializeServices(ctx context.Context) {
	registry, err := providers.NewDefault(a.config, a.logger)
	if err != nil {
		a.logger.Fatalf("[App] failed to register providers: %v", err)
	}
	a.logger.Infof("[App] stream providers: %v", registry.IDs())

	a.listings = cache.New[[]models.EventGroup](a.config.CacheSize, 2*a.config.RefreshInterval.Std())
	a.images = images.NewManager(a.config.ImagesFile, a.logger)
	feed := events.NewSource(a.config.EventsFeedURL, httputil.NewHTTPClient(constants.FeedTimeout))
	a.events = events.NewManager(feed, a.images, a.db, a.listings, a.logger)

	var raw []models.RawEvent
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.images.InitImageMaps(gctx)
	})
	g.Go(func() error {
		var err error
		raw, err = a.events.FetchAllEvents(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.logger.Fatalf("[App] startup data load failed: %v", err)
	}

	// events may have been grouped before the artwork finished loading
	a.events.Rebuild(ctx)

	categories := events.Categories(raw)
	a.logger.Infof("[App] %d events, categories: %v", len(raw), categories)

	a.container = &services.Container{
		Logger:   a.logger,
		Registry: registry,
		Engine: resolver.NewEngine(registry, a.logger, resolver.Options{
			Timeout:     a.config.ResolverTimeout.Std(),
			Concurrency: a.config.ResolverConcurrency,
		}),
		Events: a.events,
		Images: a.images,
		DB:     a.db,
		Cache:  a.listings,
	}

	a.handler = handlers.New(a.container, a.config, handlers.Catalog{Categories: categories})
	a.logger.Infof("[App] services initialized successfully")
}

// StartBackground runs the refresh loop and cache cleanup until ctx is done.
func (a *app) StartBackground(ctx context.Context) {
	a.events.Start(ctx, a.config.RefreshInterval.Std())
	a.listings.StartCleanup(ctx, time.Minute)
}

func (a *app) Close() {
	if a.container != nil {
		if err := a.container.Close(); err != nil {
			a.logger.Errorf("[App] failed to close database: %v", err)
		}
	}
}
