package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
)

func TestChannelName(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://x/?stream=canal_uno", "CANAL UNO"},
		{"https://x/?stream=espn", "ESPN"},
		{"https://x/global1.php?stream=tnt_sports_premium&lang=es", "TNT SPORTS PREMIUM"},
		{"https://x/", "CANAL DESCONOCIDO"},
		{"https://x/?stream=", "CANAL DESCONOCIDO"},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, err := ChannelName(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChannelNameMalformed(t *testing.T) {
	for _, link := range []string{"::nope", "https://x/%zz", "/relative?stream=x", ""} {
		_, err := ChannelName(link)
		assert.Error(t, err, link)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidLink), link)
	}
}
