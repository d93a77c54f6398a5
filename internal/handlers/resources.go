package handlers

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

// ListCatalog returns the metas of the events catalog filtered by the estado
// and categoria extras. Any other catalog is empty.
func (h *Handler) ListCatalog(ctx context.Context, contentType, id string, extra map[string]string) (resp models.CatalogResponse) {
	resp = models.CatalogResponse{Metas: []models.Meta{}}
	defer h.recoverTo("CatalogHandler", func() { resp = models.CatalogResponse{Metas: []models.Meta{}} })

	if contentType != constants.ContentTypeTV || id != constants.CatalogID {
		h.services.Logger.Debugf("[CatalogHandler] no catalog for type=%s id=%s", contentType, id)
		return resp
	}

	status := valueOr(extra[constants.ExtraStatus], constants.StatusAll)
	category := valueOr(extra[constants.ExtraCategory], constants.CategoryAll)

	groups, err := h.services.Events.GroupedEvents(ctx, status, category)
	if err != nil {
		h.services.Logger.Errorf("[CatalogHandler] failed to list events: %v", err)
		return resp
	}

	for i := range groups {
		resp.Metas = append(resp.Metas, toMeta(&groups[i]))
	}
	h.services.Logger.Infof("[CatalogHandler] returning %d metas (estado=%s, categoria=%s)", len(resp.Metas), status, category)
	return resp
}

// GetMeta returns the details of one event group, or a null meta.
func (h *Handler) GetMeta(ctx context.Context, contentType, id string) (resp models.MetaResponse) {
	defer h.recoverTo("MetaHandler", func() { resp = models.MetaResponse{} })

	group := h.findGroup(ctx, contentType, id)
	if group == nil {
		return models.MetaResponse{}
	}

	meta := toMeta(group)
	return models.MetaResponse{Meta: &meta}
}

// GetStreams resolves the playable streams of one event group.
func (h *Handler) GetStreams(ctx context.Context, contentType, id string, cfg models.UserConfig) (resp models.StreamResponse) {
	resp = models.StreamResponse{Streams: []models.Stream{}}
	defer h.recoverTo("StreamHandler", func() { resp = models.StreamResponse{Streams: []models.Stream{}} })

	group := h.findGroup(ctx, contentType, id)
	if group == nil {
		return resp
	}

	streams := h.services.Engine.Resolve(ctx, group, cfg.EnabledProviders)
	if streams == nil {
		streams = []models.Stream{}
	}
	return models.StreamResponse{Streams: streams}
}

// findGroup looks up a "sportslive:" id among all events.
func (h *Handler) findGroup(ctx context.Context, contentType, id string) *models.EventGroup {
	if contentType != constants.ContentTypeTV || !strings.HasPrefix(id, constants.IDPrefix) {
		return nil
	}
	groupID := strings.TrimPrefix(id, constants.IDPrefix)

	groups, err := h.services.Events.GroupedEvents(ctx, constants.StatusAll, constants.CategoryAll)
	if err != nil {
		h.services.Logger.Errorf("[Handler] failed to list events: %v", err)
		return nil
	}

	for i := range groups {
		if groups[i].ID == groupID {
			group := groups[i]
			return &group
		}
	}
	h.services.Logger.WithFields(logger.Fields{"event_id": groupID}).Infof("[Handler] event not found")
	return nil
}

// recoverTo turns a panic into the empty response set by reset.
func (h *Handler) recoverTo(component string, reset func()) {
	if r := recover(); r != nil {
		h.services.Logger.Errorf("[%s] recovered from panic: %v\n%s", component, r, debug.Stack())
		reset()
	}
}

func toMeta(g *models.EventGroup) models.Meta {
	return models.Meta{
		ID:          constants.IDPrefix + g.ID,
		Type:        constants.ContentTypeTV,
		Name:        g.Title,
		Poster:      g.Poster,
		PosterShape: constants.PosterShapeTV,
		Background:  g.Background,
		Description: g.Description,
		ReleaseInfo: fmt.Sprintf("%s - %s", g.Time, g.DisplayStatus),
	}
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
