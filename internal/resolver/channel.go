// Package resolver turns an event group's raw links into titled, playable streams.
package resolver

import (
	"net/url"
	"strings"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
)

// ChannelName extracts the display channel from a link's stream parameter:
// underscores become spaces and the result is uppercased. Links without the
// parameter get the unknown-channel placeholder.
func ChannelName(rawLink string) (string, error) {
	u, err := url.Parse(rawLink)
	if err != nil {
		return "", apperrors.NewInvalidLinkError(rawLink, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", apperrors.NewInvalidLinkError(rawLink, nil)
	}

	name := u.Query().Get("stream")
	if name == "" {
		name = constants.UnknownChannel
	}
	return strings.ToUpper(strings.ReplaceAll(name, "_", " ")), nil
}
