package providers

import (
	"context"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/config"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/httputil"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/ratelimiter"
)

// defaultOrder is the registration order of the built-in providers.
var defaultOrder = []string{
	constants.ProviderStreamTP,
	constants.ProviderLa12HD,
	constants.ProviderEnVivo,
}

// browserProviders need JavaScript to reveal the stream URL.
var browserProviders = map[string]bool{
	constants.ProviderEnVivo: true,
}

// rateLimited throttles calls to a single upstream site.
type rateLimited struct {
	id      string
	limiter ratelimiter.RateLimiter
	next    Resolver
}

// WithRateLimit wraps next so every call first waits for a token from limiter.
func WithRateLimit(id string, limiter ratelimiter.RateLimiter, next Resolver) Resolver {
	return &rateLimited{id: id, limiter: limiter, next: next}
}

func (r *rateLimited) Resolve(ctx context.Context, rawLink string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", apperrors.NewProviderError(r.id, "rate limit wait aborted", err)
	}
	return r.next.Resolve(ctx, rawLink)
}

// NewDefault builds the registry of built-in providers from configuration.
// Providers absent from cfg.Providers are skipped.
func NewDefault(cfg *config.Config, log logger.Logger) (*Registry, error) {
	registry := NewRegistry()
	client := httputil.NewHTTPClient(cfg.ResolverTimeout.Std())

	for _, id := range defaultOrder {
		pc, ok := cfg.Providers[id]
		if !ok {
			log.Warnf("[Providers] %s has no configuration, skipping", id)
			continue
		}

		var resolver Resolver
		if browserProviders[id] && cfg.BrowserEnabled {
			resolver = NewBrowserResolver(id, pc, log.WithFields(logger.Fields{"provider": id}))
		} else {
			resolver = NewPageResolver(id, pc, client)
		}
		resolver = WithRateLimit(id, ratelimiter.NewTokenBucket(int64(pc.Burst), int64(pc.RateLimit)), resolver)

		if err := registry.Register(id, constants.ProviderDisplayNames[id], resolver); err != nil {
			return nil, err
		}
		log.Debugf("[Providers] registered %s (base %s)", id, pc.BaseURL)
	}

	if registry.Len() == 0 {
		return nil, apperrors.NewConfigurationError("no stream providers configured", nil)
	}
	return registry, nil
}
