// Package events loads the sporting events feed and serves grouped, filtered listings.
package events

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/cache"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/database"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/metrics"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

// Store is what request handling needs from the event store.
type Store interface {
	// FetchAllEvents refreshes the snapshot and returns the raw feed entries.
	FetchAllEvents(ctx context.Context) ([]models.RawEvent, error)
	// GroupedEvents lists the groups of the current snapshot matching status and category.
	GroupedEvents(ctx context.Context, status, category string) ([]models.EventGroup, error)
}

// Decorator fills presentation fields on freshly grouped events.
type Decorator interface {
	Apply(groups []models.EventGroup)
}

// Manager keeps the published snapshot and refreshes it from a Source.
type Manager struct {
	source    Source
	decorator Decorator
	db        database.Database
	cache     cache.Cache[[]models.EventGroup]
	logger    logger.Logger

	mu       sync.RWMutex
	snapshot *models.Snapshot
	raw      []models.RawEvent
}

// NewManager wires a Manager. decorator and db may be nil.
func NewManager(source Source, decorator Decorator, db database.Database, c cache.Cache[[]models.EventGroup], log logger.Logger) *Manager {
	if c == nil {
		c = cache.New[[]models.EventGroup](constants.DefaultCacheSize, 0)
	}
	return &Manager{
		source:    source,
		decorator: decorator,
		db:        db,
		cache:     c,
		logger:    log,
	}
}

// FetchAllEvents fetches the feed and publishes it. When the feed is
// unavailable and nothing is published yet, the persisted snapshot is used.
func (m *Manager) FetchAllEvents(ctx context.Context) ([]models.RawEvent, error) {
	raw, err := m.source.Fetch(ctx)
	if err == nil {
		m.publish(ctx, raw)
		return raw, nil
	}

	m.logger.Errorf("[Events] feed fetch failed: %v", err)
	if current := m.current(); current != nil {
		return nil, err
	}
	if m.db == nil {
		return nil, err
	}

	stored, loadErr := m.db.LoadSnapshot(ctx)
	if loadErr != nil {
		m.logger.Errorf("[Events] failed to load persisted snapshot: %v", loadErr)
		return nil, err
	}
	if stored == nil {
		return nil, err
	}

	m.logger.Warnf("[Events] serving persisted snapshot from %s (%d groups)", stored.FetchedAt.Format(time.RFC3339), len(stored.Groups))
	raw = flatten(stored.Groups)
	m.swap(stored, raw)
	return raw, nil
}

// Rebuild regroups the last fetched entries, re-applying the decorator.
func (m *Manager) Rebuild(ctx context.Context) {
	m.mu.RLock()
	raw := m.raw
	m.mu.RUnlock()

	if raw != nil {
		m.publish(ctx, raw)
	}
}

// Refresh fetches the feed and replaces the snapshot. On failure the
// previous snapshot stays published.
func (m *Manager) Refresh(ctx context.Context) error {
	raw, err := m.source.Fetch(ctx)
	if err != nil {
		metrics.RefreshFailures.Inc()
		return err
	}
	m.publish(ctx, raw)
	return nil
}

// Start refreshes the snapshot every interval until ctx is done.
func (m *Manager) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.Refresh(ctx); err != nil {
					m.logger.Warnf("[Events] refresh failed, keeping previous snapshot: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// GroupedEvents returns the filtered groups in display order. The returned
// slice is shared and must not be modified.
func (m *Manager) GroupedEvents(ctx context.Context, status, category string) ([]models.EventGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := m.current()
	if snap == nil {
		return nil, apperrors.NewEventSourceError("no events loaded", nil)
	}

	// keyed by snapshot too, so a listing computed during a swap is never served afterwards
	key := strconv.FormatInt(snap.FetchedAt.UnixNano(), 36) + "|" + status + "|" + category
	if groups, ok := m.cache.Get(key); ok {
		return groups, nil
	}

	groups := Filter(snap.Groups, status, category)
	m.cache.Set(key, groups)
	return groups, nil
}

// Snapshot returns the published snapshot, or nil before the first load.
func (m *Manager) Snapshot() *models.Snapshot {
	return m.current()
}

func (m *Manager) publish(ctx context.Context, raw []models.RawEvent) {
	groups := Group(raw)
	if m.decorator != nil {
		m.decorator.Apply(groups)
	}

	snap := &models.Snapshot{Groups: groups, FetchedAt: time.Now().UTC()}
	m.swap(snap, raw)
	m.logger.Infof("[Events] published %d groups from %d feed entries", len(groups), len(raw))

	if m.db != nil {
		if err := m.db.SaveSnapshot(ctx, snap); err != nil {
			m.logger.Warnf("[Events] failed to persist snapshot: %v", err)
		}
	}
}

func (m *Manager) swap(snap *models.Snapshot, raw []models.RawEvent) {
	m.mu.Lock()
	m.snapshot = snap
	m.raw = raw
	m.cache.Clear()
	m.mu.Unlock()

	metrics.EventGroups.Set(float64(len(snap.Groups)))
}

func (m *Manager) current() *models.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
