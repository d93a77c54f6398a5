package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/metrics"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/providers"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

// Options tunes how the engine drives resolver calls.
type Options struct {
	// Timeout bounds a single (link, provider) attempt.
	Timeout time.Duration
	// Concurrency caps resolver calls in flight for one request.
	Concurrency int
}

// Engine resolves event groups into playable streams using a provider registry.
type Engine struct {
	registry    *providers.Registry
	logger      logger.Logger
	timeout     time.Duration
	concurrency int
}

// attempt is one (link, provider) pair, in emission order.
type attempt struct {
	linkIndex int
	link      string
	channel   string
	provider  providers.Provider
}

// NewEngine creates an Engine. Zero options fall back to the package defaults.
func NewEngine(registry *providers.Registry, log logger.Logger, opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = constants.ResolverTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = constants.ResolverConcurrency
	}

	return &Engine{
		registry:    registry,
		logger:      log,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
	}
}

// FormatTitle builds the display title of a resolved stream.
func FormatTitle(channel string, option int, providerName string) string {
	return fmt.Sprintf("%s (Opción %d)\nDesde %s", channel, option, providerName)
}

// EnabledProviders returns the set of provider ids to try: the requested ids
// when any were given, every registered provider otherwise.
func (e *Engine) EnabledProviders(requested []string) map[string]bool {
	ids := requested
	if len(ids) == 0 {
		ids = e.registry.IDs()
	}

	enabled := make(map[string]bool, len(ids))
	for _, id := range ids {
		enabled[id] = true
	}
	return enabled
}

// Resolve returns the playable streams of group, ordered by link and then by
// provider registration order. Option numbers follow that order regardless of
// which resolver call finished first. Failed attempts are logged and skipped.
func (e *Engine) Resolve(ctx context.Context, group *models.EventGroup, enabledProviders []string) []models.Stream {
	streams := []models.Stream{}

	if group == nil {
		return streams
	}

	log := e.logger.WithFields(logger.Fields{"event_id": group.ID, "event": group.Title})

	if group.DisplayStatus == constants.DisplayFinished {
		log.Debugf("[Resolver] event is finished, no streams")
		return streams
	}
	if len(group.Links) == 0 {
		log.Debugf("[Resolver] event has no links")
		return streams
	}

	attempts := e.plan(group, e.EnabledProviders(enabledProviders), log)
	if len(attempts) == 0 {
		return streams
	}

	results := e.run(ctx, attempts, log)

	option := 1
	for i, a := range attempts {
		if results[i] == "" {
			continue
		}
		streams = append(streams, models.Stream{
			URL:   results[i],
			Title: FormatTitle(a.channel, option, a.provider.DisplayName),
		})
		option++
	}

	log.Infof("[Resolver] resolved %d stream(s) from %d attempt(s)", len(streams), len(attempts))
	return streams
}

// plan lists the attempts in the order their results must be emitted.
func (e *Engine) plan(group *models.EventGroup, enabled map[string]bool, log logger.Logger) []attempt {
	registered := e.registry.Providers()
	attempts := make([]attempt, 0, len(group.Links)*len(registered))

	for i, link := range group.Links {
		channel, err := ChannelName(link)
		if err != nil {
			log.WithFields(logger.Fields{"link_index": i + 1, "link": link}).Warnf("[Resolver] skipping link: %v", err)
			continue
		}

		for _, p := range registered {
			if !enabled[p.ID] {
				continue
			}
			attempts = append(attempts, attempt{linkIndex: i + 1, link: link, channel: channel, provider: p})
		}
	}
	return attempts
}

// run executes every attempt concurrently and returns the URLs by attempt index.
// Failed attempts leave an empty slot.
func (e *Engine) run(ctx context.Context, attempts []attempt, log logger.Logger) []string {
	results := make([]string, len(attempts))

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i, a := range attempts {
		g.Go(func() error {
			url, err := e.try(ctx, a)
			if err != nil {
				log.WithFields(logger.Fields{
					"provider":   a.provider.ID,
					"link_index": a.linkIndex,
					"link":       a.link,
				}).Warnf("[Resolver] provider attempt failed: %v", err)
				return nil
			}
			results[i] = url
			return nil
		})
	}

	_ = g.Wait()
	return results
}

type outcome struct {
	url string
	err error
}

// try runs a single resolver call under the per-attempt timeout. A resolver
// that ignores its context is abandoned once the deadline passes.
func (e *Engine) try(ctx context.Context, a attempt) (string, error) {
	id := a.provider.ID
	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: apperrors.NewProviderError(id, fmt.Sprintf("resolver panic: %v", r), nil)}
			}
		}()
		url, err := a.provider.Resolver.Resolve(callCtx, a.link)
		done <- outcome{url: url, err: err}
	}()

	select {
	case res := <-done:
		switch {
		case res.err != nil:
			metrics.RecordResolve(id, metrics.OutcomeFailure, time.Since(start))
			return "", res.err
		case strings.TrimSpace(res.url) == "":
			metrics.RecordResolve(id, metrics.OutcomeEmpty, time.Since(start))
			return "", apperrors.NewEmptyResultError(id)
		}
		metrics.RecordResolve(id, metrics.OutcomeSuccess, time.Since(start))
		return res.url, nil

	case <-callCtx.Done():
		metrics.RecordResolve(id, metrics.OutcomeTimeout, time.Since(start))
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", apperrors.NewTimeoutError("resolve " + id)
		}
		return "", apperrors.NewProviderError(id, "attempt abandoned", callCtx.Err())
	}
}
