// Package images assigns posters and backgrounds to event groups by category.
package images

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/httputil"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

const (
	DefaultPoster     = "https://i.imgur.com/eo6sbBO.png"
	DefaultBackground = "https://i.imgur.com/lL3k1bQ.jpg"
)

// Image is the artwork of one category.
type Image struct {
	Poster     string `json:"poster" yaml:"poster"`
	Background string `json:"background" yaml:"background"`
}

// Maps is the content of the images file.
type Maps struct {
	Default    Image            `json:"default" yaml:"default"`
	Categories map[string]Image `json:"categories" yaml:"categories"`
}

// Manager holds the category artwork loaded at startup.
type Manager struct {
	source string
	logger logger.Logger

	mu         sync.RWMutex
	fallback   Image
	categories map[string]Image
}

// NewManager creates a Manager reading from source, a file path or an http(s) URL.
// An empty source leaves only the built-in default artwork.
func NewManager(source string, log logger.Logger) *Manager {
	return &Manager{
		source:     source,
		logger:     log,
		fallback:   Image{Poster: DefaultPoster, Background: DefaultBackground},
		categories: map[string]Image{},
	}
}

// InitImageMaps loads the images file. It is called once before serving.
func (m *Manager) InitImageMaps(ctx context.Context) error {
	if m.source == "" {
		m.logger.Infof("[Images] no images file configured, using defaults")
		return nil
	}

	data, err := m.read(ctx)
	if err != nil {
		return apperrors.NewConfigurationError("failed to read images file "+m.source, err)
	}

	var maps Maps
	if isYAML(m.source) {
		err = yaml.Unmarshal(data, &maps)
	} else {
		err = json.Unmarshal(data, &maps)
	}
	if err != nil {
		return apperrors.NewConfigurationError("failed to parse images file "+m.source, err)
	}

	categories := make(map[string]Image, len(maps.Categories))
	for name, img := range maps.Categories {
		categories[key(name)] = img
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if maps.Default.Poster != "" {
		m.fallback.Poster = maps.Default.Poster
	}
	if maps.Default.Background != "" {
		m.fallback.Background = maps.Default.Background
	}
	m.categories = categories

	m.logger.Infof("[Images] loaded artwork for %d categories", len(categories))
	return nil
}

// For returns the artwork of category, falling back to the default per field.
func (m *Manager) For(category string) Image {
	m.mu.RLock()
	defer m.mu.RUnlock()

	img := m.categories[key(category)]
	if img.Poster == "" {
		img.Poster = m.fallback.Poster
	}
	if img.Background == "" {
		img.Background = m.fallback.Background
	}
	return img
}

// Apply fills missing artwork on groups in place.
func (m *Manager) Apply(groups []models.EventGroup) {
	for i := range groups {
		img := m.For(groups[i].Category)
		if groups[i].Poster == "" {
			groups[i].Poster = img.Poster
		}
		if groups[i].Background == "" {
			groups[i].Background = img.Background
		}
	}
}

func (m *Manager) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(m.source, "http://") || strings.HasPrefix(m.source, "https://") {
		return httputil.FetchPage(ctx, httputil.NewDefaultHTTPClient(), m.source, nil)
	}
	return os.ReadFile(m.source)
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func key(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
