package handlers

import (
	"context"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
)

// Addon resources
const (
	ResourceCatalog = "catalog"
	ResourceMeta    = "meta"
	ResourceStream  = "stream"
)

// Request is one addon request, whatever its resource.
type Request struct {
	Resource string
	Type     string
	ID       string
	Extra    map[string]string
	Config   models.UserConfig
}

type routeKey struct {
	resource    string
	contentType string
}

type resourceFunc func(ctx context.Context, req Request) interface{}

func (h *Handler) buildRoutes() map[routeKey]resourceFunc {
	return map[routeKey]resourceFunc{
		{ResourceCatalog, constants.ContentTypeTV}: func(ctx context.Context, req Request) interface{} {
			return h.ListCatalog(ctx, req.Type, req.ID, req.Extra)
		},
		{ResourceMeta, constants.ContentTypeTV}: func(ctx context.Context, req Request) interface{} {
			return h.GetMeta(ctx, req.Type, req.ID)
		},
		{ResourceStream, constants.ContentTypeTV}: func(ctx context.Context, req Request) interface{} {
			return h.GetStreams(ctx, req.Type, req.ID, req.Config)
		},
	}
}

// Dispatch routes req by resource and content type. Unsupported types get the
// empty response of their resource; unknown resources get nil.
func (h *Handler) Dispatch(ctx context.Context, req Request) interface{} {
	if fn, ok := h.routes[routeKey{req.Resource, req.Type}]; ok {
		return fn(ctx, req)
	}
	return emptyResponse(req.Resource)
}

func emptyResponse(resource string) interface{} {
	switch resource {
	case ResourceCatalog:
		return models.CatalogResponse{Metas: []models.Meta{}}
	case ResourceMeta:
		return models.MetaResponse{}
	case ResourceStream:
		return models.StreamResponse{Streams: []models.Stream{}}
	}
	return nil
}
