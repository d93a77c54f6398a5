package providers

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/config"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/httputil"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

// How long to watch network traffic after navigation before falling back to the DOM.
const browserSettle = 6 * time.Second

// BrowserResolver loads the embed page in headless Chrome and captures the
// first playlist request the player issues. Used for providers that only
// assemble the stream URL in JavaScript.
type BrowserResolver struct {
	id      string
	baseURL string
	referer string
	logger  logger.Logger
	opts    []chromedp.ExecAllocatorOption
}

func NewBrowserResolver(id string, cfg config.ProviderConfig, log logger.Logger) *BrowserResolver {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("mute-audio", true),
		chromedp.UserAgent(httputil.DefaultUserAgent),
	)

	return &BrowserResolver{
		id:      id,
		baseURL: cfg.BaseURL,
		referer: cfg.Referer,
		logger:  log,
		opts:    opts,
	}
}

func (b *BrowserResolver) Resolve(ctx context.Context, rawLink string) (string, error) {
	embed, err := EmbedURL(b.baseURL, rawLink)
	if err != nil {
		return "", apperrors.NewInvalidLinkError(rawLink, err)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(b.logger.Debugf))
	defer cancelTab()

	found := make(chan string, 1)
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		e, ok := ev.(*network.EventRequestWillBeSent)
		if !ok || !isPlayable(e.Request.URL) {
			return
		}
		select {
		case found <- e.Request.URL:
		default:
		}
	})

	headers := network.Headers{}
	if b.referer != "" {
		headers["Referer"] = b.referer
	}

	err = chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.Navigate(embed),
	)
	if err != nil {
		return "", apperrors.NewProviderError(b.id, "browser navigation failed", err)
	}

	timer := time.NewTimer(browserSettle)
	defer timer.Stop()

	select {
	case u := <-found:
		return u, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", apperrors.NewProviderError(b.id, "failed to read rendered page", err)
	}
	if u := ExtractPlayableURL(html, embed); u != "" {
		return u, nil
	}
	return "", apperrors.NewEmptyResultError(b.id)
}
