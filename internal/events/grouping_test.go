package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
)

func sampleFeed() []models.RawEvent {
	return []models.RawEvent{
		{Title: "Boca vs River", Time: "21:00", Status: "Pronto", Category: "Fútbol", Link: "https://p/?stream=espn"},
		{Title: "Boca vs River", Time: "21:00", Status: "EN VIVO", Category: "", Link: "https://p/?stream=tnt_sports"},
		{Title: "Boca vs River", Time: "21:00", Status: "pronto", Link: "https://p/?stream=espn"},
		{Title: "Lakers vs Celtics", Time: "20:00", Status: "upcoming", Category: "NBA", Link: "https://p/?stream=espn_2"},
		{Title: "Alcaraz vs Sinner", Time: "09:00", Status: "Finalizado", Category: "Tenis", Link: "https://p/?stream=star"},
		{Title: "Racing vs Lanús", Time: "18:00", Status: "live", Category: "fútbol"},
		{Title: "  ", Time: "10:00", Status: "live", Link: "https://p/?stream=x"},
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]string{
		"EN VIVO":    constants.DisplayLive,
		" live ":     constants.DisplayLive,
		"En_Vivo":    constants.DisplayLive,
		"Pronto":     constants.DisplayUpcoming,
		"upcoming":   constants.DisplayUpcoming,
		"FINALIZADO": constants.DisplayFinished,
		"finished":   constants.DisplayFinished,
		"???":        constants.DisplayUpcoming,
		"":           constants.DisplayUpcoming,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeStatus(in), in)
	}
}

func TestGroupMergesAndOrders(t *testing.T) {
	groups := Group(sampleFeed())
	require.Len(t, groups, 4)

	var titles []string
	for _, g := range groups {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Racing vs Lanús", "Boca vs River", "Lakers vs Celtics", "Alcaraz vs Sinner"}, titles)

	boca := groups[1]
	assert.Equal(t, constants.DisplayLive, boca.DisplayStatus, "live if any member is live")
	assert.Equal(t, "Fútbol", boca.Category)
	assert.Equal(t, []string{"https://p/?stream=espn", "https://p/?stream=tnt_sports"}, boca.Links)
	assert.Equal(t, GroupID("Boca vs River", "21:00"), boca.ID)
	assert.NotEmpty(t, boca.Description)

	assert.NotNil(t, groups[0].Links)
	assert.Empty(t, groups[0].Links)
}

func TestGroupIDIsStable(t *testing.T) {
	assert.Equal(t, GroupID("A", "1"), GroupID("A", "1"))
	assert.NotEqual(t, GroupID("A", "1"), GroupID("A", "2"))
	assert.Len(t, GroupID("A", "1"), 36)
}

func TestFilter(t *testing.T) {
	groups := Group(sampleFeed())

	tests := []struct {
		name     string
		status   string
		category string
		want     int
	}{
		{"everything", constants.StatusAll, constants.CategoryAll, 4},
		{"defaults when empty", "", "", 4},
		{"live only", constants.StatusLive, constants.CategoryAll, 2},
		{"upcoming only", constants.StatusUpcoming, constants.CategoryAll, 1},
		{"finished only", constants.StatusFinished, constants.CategoryAll, 1},
		{"category case-insensitive", constants.StatusAll, "FÚTBOL", 2},
		{"live and category", constants.StatusLive, "NBA", 0},
		{"unknown status matches all", "Mañana", constants.CategoryAll, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Filter(groups, tt.status, tt.category), tt.want)
		})
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Fútbol", "NBA", "Tenis", "fútbol"}, Categories(sampleFeed()))
	assert.Empty(t, Categories(nil))
}

func TestFlattenRoundTrip(t *testing.T) {
	groups := Group(sampleFeed())
	again := Group(flatten(groups))
	assert.Equal(t, groups, again)
}
