package events

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/database"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/httputil"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

type fakeSource struct {
	mu     sync.Mutex
	events []models.RawEvent
	err    error
	calls  int
}

func (f *fakeSource) Fetch(context.Context) ([]models.RawEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.events, f.err
}

func (f *fakeSource) set(events []models.RawEvent, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events, f.err = events, err
}

type posterDecorator struct{}

func (posterDecorator) Apply(groups []models.EventGroup) {
	for i := range groups {
		groups[i].Poster = "https://img/" + groups[i].Category
	}
}

func openDB(t *testing.T) *database.BoltDB {
	t.Helper()
	db, err := database.NewBolt(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGroupedEventsBeforeLoad(t *testing.T) {
	m := NewManager(&fakeSource{}, nil, nil, nil, logger.Discard())

	_, err := m.GroupedEvents(context.Background(), constants.StatusAll, constants.CategoryAll)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEventSourceFailed))
}

func TestFetchAllEventsPublishesSnapshot(t *testing.T) {
	src := &fakeSource{events: sampleFeed()}
	db := openDB(t)
	m := NewManager(src, posterDecorator{}, db, nil, logger.Discard())

	raw, err := m.FetchAllEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw, len(sampleFeed()))

	groups, err := m.GroupedEvents(context.Background(), constants.StatusLive, constants.CategoryAll)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "https://img/Fútbol", groups[1].Poster)

	stored, err := db.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Groups, 4)
}

func TestFetchAllEventsFallsBackToPersistedSnapshot(t *testing.T) {
	db := openDB(t)
	first := NewManager(&fakeSource{events: sampleFeed()}, nil, db, nil, logger.Discard())
	_, err := first.FetchAllEvents(context.Background())
	require.NoError(t, err)

	down := &fakeSource{err: errors.New("feed down")}
	second := NewManager(down, nil, db, nil, logger.Discard())

	raw, err := second.FetchAllEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fútbol", "NBA", "Tenis", "fútbol"}, Categories(raw))

	groups, err := second.GroupedEvents(context.Background(), constants.StatusAll, constants.CategoryAll)
	require.NoError(t, err)
	assert.Len(t, groups, 4)
}

func TestFetchAllEventsFailsWithoutFallback(t *testing.T) {
	m := NewManager(&fakeSource{err: errors.New("feed down")}, nil, openDB(t), nil, logger.Discard())

	_, err := m.FetchAllEvents(context.Background())
	assert.Error(t, err)
}

func TestRefreshKeepsPreviousSnapshotOnFailure(t *testing.T) {
	src := &fakeSource{events: sampleFeed()}
	m := NewManager(src, nil, nil, nil, logger.Discard())
	_, err := m.FetchAllEvents(context.Background())
	require.NoError(t, err)

	before, err := m.GroupedEvents(context.Background(), constants.StatusAll, constants.CategoryAll)
	require.NoError(t, err)

	src.set(nil, errors.New("timeout"))
	assert.Error(t, m.Refresh(context.Background()))

	after, err := m.GroupedEvents(context.Background(), constants.StatusAll, constants.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRefreshInvalidatesListings(t *testing.T) {
	src := &fakeSource{events: sampleFeed()}
	m := NewManager(src, nil, nil, nil, logger.Discard())
	_, err := m.FetchAllEvents(context.Background())
	require.NoError(t, err)

	groups, err := m.GroupedEvents(context.Background(), constants.StatusAll, "NBA")
	require.NoError(t, err)
	require.Len(t, groups, 1)

	src.set([]models.RawEvent{
		{Title: "Lakers vs Celtics", Time: "20:00", Status: "live", Category: "NBA", Link: "https://p/?stream=a"},
		{Title: "Heat vs Knicks", Time: "22:00", Status: "pronto", Category: "NBA", Link: "https://p/?stream=b"},
	}, nil)
	require.NoError(t, m.Refresh(context.Background()))

	groups, err = m.GroupedEvents(context.Background(), constants.StatusAll, "NBA")
	require.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Equal(t, constants.DisplayLive, groups[0].DisplayStatus)
}

func TestSourcesDecodeFeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"title":"A vs B","time":"10:00","status":"EN VIVO","link":"https://p/?stream=x"}]}`))
	}))
	defer srv.Close()

	events, err := NewSource(srv.URL, httputil.NewDefaultHTTPClient()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "A vs B", events[0].Title)

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "events.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"title":"C vs D","time":"11:00"}]`), 0644))
	events, err = NewSource(jsonPath, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "C vs D", events[0].Title)

	yamlPath := filepath.Join(dir, "events.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("- title: E vs F\n  time: \"12:00\"\n  category: Rugby\n"), 0644))
	events, err = NewSource(yamlPath, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Rugby", events[0].Category)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"events": 3}`), 0644))
	_, err = NewSource(badPath, nil).Fetch(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeEventSourceFailed))

	_, err = NewSource(filepath.Join(dir, "missing.json"), nil).Fetch(context.Background())
	assert.Error(t, err)
}

type switchableDecorator struct{ poster string }

func (d *switchableDecorator) Apply(groups []models.EventGroup) {
	for i := range groups {
		if groups[i].Poster == "" {
			groups[i].Poster = d.poster
		}
	}
}

func TestRebuildReappliesDecorator(t *testing.T) {
	deco := &switchableDecorator{poster: "https://img/default.png"}
	m := NewManager(&fakeSource{events: sampleFeed()}, deco, nil, nil, logger.Discard())
	_, err := m.FetchAllEvents(context.Background())
	require.NoError(t, err)

	deco.poster = "https://img/loaded.png"
	m.Rebuild(context.Background())

	groups, err := m.GroupedEvents(context.Background(), constants.StatusAll, constants.CategoryAll)
	require.NoError(t, err)
	for _, g := range groups {
		assert.Equal(t, "https://img/loaded.png", g.Poster)
	}
}
