package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/models"
)

// stripJSONExtension removes .json extension from a parameter if present
func stripJSONExtension(c *gin.Context, paramName string) {
	value := c.Param(paramName)
	if strings.HasSuffix(value, ".json") {
		for i, param := range c.Params {
			if param.Key == paramName {
				c.Params[i].Value = strings.TrimSuffix(value, ".json")
				break
			}
		}
	}
}

// parseExtra reads path extras such as "/estado=En%20vivo&categoria=NBA.json".
// Query parameters fill in keys the path does not set.
func parseExtra(pathExtra string, query url.Values) map[string]string {
	extra := map[string]string{}

	pathExtra = strings.TrimSuffix(strings.TrimPrefix(pathExtra, "/"), ".json")
	for _, param := range strings.Split(pathExtra, "&") {
		key, value, ok := strings.Cut(param, "=")
		if !ok || key == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		extra[key] = value
	}

	for key, values := range query {
		if _, set := extra[key]; !set && len(values) > 0 {
			extra[key] = values[0]
		}
	}
	return extra
}

// decodeUserConfig accepts the configuration segment as JSON (raw or
// URL-encoded) or as base64-encoded JSON. enabledProviders may be a list or
// a comma separated string.
func decodeUserConfig(encoded string) (models.UserConfig, error) {
	data, err := configBytes(encoded)
	if err != nil {
		return models.UserConfig{}, err
	}

	var raw struct {
		EnabledProviders json.RawMessage `json:"enabledProviders"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.UserConfig{}, apperrors.NewConfigurationError("configuration is not valid JSON", err)
	}

	var cfg models.UserConfig
	if len(raw.EnabledProviders) == 0 || string(raw.EnabledProviders) == "null" {
		return cfg, nil
	}

	var list []string
	if err = json.Unmarshal(raw.EnabledProviders, &list); err != nil {
		var joined string
		if err = json.Unmarshal(raw.EnabledProviders, &joined); err != nil {
			return models.UserConfig{}, apperrors.NewConfigurationError("enabledProviders must be a list or a string", err)
		}
		list = strings.Split(joined, ",")
	}

	for _, id := range list {
		if id = strings.TrimSpace(id); id != "" {
			cfg.EnabledProviders = append(cfg.EnabledProviders, id)
		}
	}
	return cfg, nil
}

func configBytes(encoded string) ([]byte, error) {
	if strings.HasPrefix(strings.TrimSpace(encoded), "{") {
		return []byte(encoded), nil
	}
	if unescaped, err := url.PathUnescape(encoded); err == nil && strings.HasPrefix(strings.TrimSpace(unescaped), "{") {
		return []byte(unescaped), nil
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(encoded); err == nil {
			return data, nil
		}
	}
	return nil, apperrors.NewConfigurationError("configuration is neither JSON nor base64", nil)
}
