package events

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/httputil"
)

// Source yields the raw entries of the events feed.
type Source interface {
	Fetch(ctx context.Context) ([]models.RawEvent, error)
}

// NewSource picks an HTTP or file source from the location's scheme.
func NewSource(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &httpSource{url: location, client: client}
	}
	return &fileSource{path: location}
}

type httpSource struct {
	url    string
	client *http.Client
}

func (s *httpSource) Fetch(ctx context.Context) ([]models.RawEvent, error) {
	body, err := httputil.FetchPage(ctx, s.client, s.url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, apperrors.NewEventSourceError("failed to fetch "+s.url, err)
	}
	return decodeFeed(body, false)
}

type fileSource struct {
	path string
}

func (s *fileSource) Fetch(ctx context.Context) ([]models.RawEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperrors.NewEventSourceError("failed to read "+s.path, err)
	}
	ext := strings.ToLower(filepath.Ext(s.path))
	return decodeFeed(body, ext == ".yaml" || ext == ".yml")
}

// feedEnvelope is the wrapped feed form {"events": [...]}.
type feedEnvelope struct {
	Events []models.RawEvent `json:"events" yaml:"events"`
}

// decodeFeed accepts either a bare list of events or an object with an events list.
func decodeFeed(body []byte, isYAML bool) ([]models.RawEvent, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, apperrors.NewEventSourceError("empty events feed", nil)
	}

	var events []models.RawEvent
	var err error

	if isYAML {
		if err = yaml.Unmarshal(trimmed, &events); err != nil {
			var env feedEnvelope
			if err = yaml.Unmarshal(trimmed, &env); err == nil {
				events = env.Events
			}
		}
	} else if trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &events)
	} else {
		var env feedEnvelope
		err = json.Unmarshal(trimmed, &env)
		events = env.Events
	}

	if err != nil {
		return nil, apperrors.NewEventSourceError("malformed events feed", err)
	}
	if events == nil {
		events = []models.RawEvent{}
	}
	return events, nil
}
