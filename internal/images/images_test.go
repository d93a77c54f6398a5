package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInitImageMapsYAML(t *testing.T) {
	path := writeFile(t, "images.yaml", `
default:
  background: https://img/default-bg.jpg
categories:
  Fútbol:
    poster: https://img/futbol.png
    background: https://img/futbol-bg.jpg
  Tenis:
    poster: https://img/tenis.png
`)
	m := NewManager(path, logger.Discard())
	require.NoError(t, m.InitImageMaps(context.Background()))

	assert.Equal(t, Image{Poster: "https://img/futbol.png", Background: "https://img/futbol-bg.jpg"}, m.For("fútbol"))
	assert.Equal(t, Image{Poster: "https://img/tenis.png", Background: "https://img/default-bg.jpg"}, m.For("Tenis"))
	assert.Equal(t, Image{Poster: DefaultPoster, Background: "https://img/default-bg.jpg"}, m.For("Rugby"))
}

func TestInitImageMapsJSONOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"categories":{"NBA":{"poster":"https://img/nba.png"}}}`))
	}))
	defer srv.Close()

	m := NewManager(srv.URL+"/images.json", logger.Discard())
	require.NoError(t, m.InitImageMaps(context.Background()))
	assert.Equal(t, "https://img/nba.png", m.For("nba").Poster)
}

func TestInitImageMapsErrors(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.json"), logger.Discard())
	assert.Error(t, m.InitImageMaps(context.Background()))

	m = NewManager(writeFile(t, "bad.json", "{"), logger.Discard())
	assert.Error(t, m.InitImageMaps(context.Background()))

	m = NewManager("", logger.Discard())
	assert.NoError(t, m.InitImageMaps(context.Background()))
	assert.Equal(t, DefaultPoster, m.For("anything").Poster)
}

func TestApplyKeepsExistingArtwork(t *testing.T) {
	m := NewManager("", logger.Discard())
	groups := []models.EventGroup{
		{ID: "a", Poster: "https://img/own.png"},
		{ID: "b"},
	}

	m.Apply(groups)

	assert.Equal(t, "https://img/own.png", groups[0].Poster)
	assert.Equal(t, DefaultBackground, groups[0].Background)
	assert.Equal(t, DefaultPoster, groups[1].Poster)
}
