package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
)

type snapshotter interface {
	Snapshot() *models.Snapshot
}

// handleHealth reports whether events are loaded and how old they are.
func (h *Handler) handleHealth(c *gin.Context) {
	body := gin.H{
		"status":    "ok",
		"providers": h.services.Registry.IDs(),
	}

	if s, ok := h.services.Events.(snapshotter); ok {
		if snap := s.Snapshot(); snap != nil {
			body["events"] = len(snap.Groups)
			body["fetched_at"] = snap.FetchedAt.Format(time.RFC3339)
			body["snapshot_age_seconds"] = int(time.Since(snap.FetchedAt).Seconds())
		} else {
			body["status"] = "loading"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}

	c.JSON(http.StatusOK, body)
}
