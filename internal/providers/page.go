package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/config"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/httputil"
)

var (
	// Ordered from most to least specific. The first capture group holds the URL.
	playablePatterns = []*regexp.Regexp{
		regexp.MustCompile(`playbackURL\s*=\s*["']([^"']+)["']`),
		regexp.MustCompile(`(?:source|file|src)\s*:\s*["']([^"']+\.m3u8[^"']*)["']`),
		regexp.MustCompile(`(https?:\\?/\\?/[^\s"'<>]+\.m3u8[^\s"'<>]*)`),
	}
	atobPattern = regexp.MustCompile(`atob\(\s*["']([A-Za-z0-9+/=]+)["']\s*\)`)
)

// PageResolver fetches a provider's embed page and scrapes the playable URL out of it.
type PageResolver struct {
	id      string
	baseURL string
	referer string
	client  *http.Client
}

// NewPageResolver creates a resolver for the provider described by cfg.
func NewPageResolver(id string, cfg config.ProviderConfig, client *http.Client) *PageResolver {
	return &PageResolver{
		id:      id,
		baseURL: cfg.BaseURL,
		referer: cfg.Referer,
		client:  client,
	}
}

func (p *PageResolver) Resolve(ctx context.Context, rawLink string) (string, error) {
	embed, err := EmbedURL(p.baseURL, rawLink)
	if err != nil {
		return "", apperrors.NewInvalidLinkError(rawLink, err)
	}

	body, err := httputil.FetchPage(ctx, p.client, embed, map[string]string{"Referer": p.referer})
	if err != nil {
		return "", apperrors.NewProviderError(p.id, "failed to fetch embed page", err)
	}

	playable := ExtractPlayableURL(string(body), embed)
	if playable == "" {
		return "", apperrors.NewEmptyResultError(p.id)
	}
	return playable, nil
}

// EmbedURL points a raw link at a provider: the link's stream parameter is
// carried over to baseURL. Links without a stream parameter are used as-is.
func EmbedURL(baseURL, rawLink string) (string, error) {
	link, err := url.Parse(rawLink)
	if err != nil {
		return "", err
	}

	stream := link.Query().Get("stream")
	if stream == "" || baseURL == "" {
		return rawLink, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("bad provider base url: %w", err)
	}
	q := base.Query()
	q.Set("stream", stream)
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// ExtractPlayableURL returns the first playable URL found in an embed page,
// decoding atob("...") payloads first. Relative matches resolve against pageURL.
func ExtractPlayableURL(body, pageURL string) string {
	candidates := []string{body}
	for _, m := range atobPattern.FindAllStringSubmatch(body, -1) {
		if decoded, err := base64.StdEncoding.DecodeString(m[1]); err == nil {
			candidates = append(candidates, string(decoded))
		}
	}

	for _, re := range playablePatterns {
		for _, text := range candidates {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if u := absolutize(strings.ReplaceAll(m[1], `\/`, "/"), pageURL); u != "" {
				return u
			}
		}
	}

	// a bare base64 payload may itself be the URL
	for _, text := range candidates[1:] {
		if isPlayable(text) {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

func absolutize(ref, pageURL string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	if !u.IsAbs() {
		base, err := url.Parse(pageURL)
		if err != nil || !base.IsAbs() {
			return ""
		}
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func isPlayable(s string) bool {
	s = strings.TrimSpace(s)
	return (strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")) && strings.Contains(s, ".m3u8")
}
