package handlers

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUserConfig(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    []string
	}{
		{"raw json", `{"enabledProviders":["streamtp","la12hd"]}`, []string{"streamtp", "la12hd"}},
		{"url encoded json", url.PathEscape(`{"enabledProviders":["1envivo"]}`), []string{"1envivo"}},
		{"base64", base64.StdEncoding.EncodeToString([]byte(`{"enabledProviders":["la12hd"]}`)), []string{"la12hd"}},
		{"base64 url unpadded", base64.RawURLEncoding.EncodeToString([]byte(`{"enabledProviders":["streamtp"]}`)), []string{"streamtp"}},
		{"comma separated string", `{"enabledProviders":"streamtp, la12hd,"}`, []string{"streamtp", "la12hd"}},
		{"empty list", `{"enabledProviders":[]}`, nil},
		{"missing key", `{}`, nil},
		{"null", `{"enabledProviders":null}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := decodeUserConfig(tt.encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.EnabledProviders)
		})
	}
}

func TestDecodeUserConfigRejectsGarbage(t *testing.T) {
	for _, encoded := range []string{"%%%", "{not json", `{"enabledProviders":42}`} {
		_, err := decodeUserConfig(encoded)
		assert.Error(t, err, encoded)
	}
}

func TestParseExtra(t *testing.T) {
	extra := parseExtra("/estado=En%20vivo&categoria=F%C3%BAtbol.json", url.Values{"categoria": {"NBA"}, "skip": {"0"}})
	assert.Equal(t, map[string]string{"estado": "En vivo", "categoria": "Fútbol", "skip": "0"}, extra)

	assert.Empty(t, parseExtra("", nil))
	assert.Equal(t, map[string]string{"estado": "Pronto"}, parseExtra("/estado=Pronto&junk", nil))
}
