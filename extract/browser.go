package extract

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// articleBodyMarker is the selector the browser waits on before reading the
// rendered DOM.
const articleBodyMarker = `section.main-article-body`

// Browser renders article pages with headless Chrome. One Browser may be
// shared across documents but serves a single Render call at a time; each
// call owns its chromedp contexts and cancels them on every exit path.
type Browser struct {
	mu      sync.Mutex
	logger  *zap.Logger
	options []chromedp.ExecAllocatorOption
}

func NewBrowser(logger *zap.Logger) *Browser {
	return &Browser{
		logger: logger,
		options: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.DisableGPU,
			chromedp.NoSandbox,
			chromedp.Headless,
			chromedp.UserAgent(userAgent),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("exclude-switches", "enable-automation"),
			chromedp.Flag("disable-extensions", ""),
		),
	}
}

// Render navigates to url and returns the DOM once the article body marker
// is visible. The wait is bounded by ctx.
func (b *Browser) Render(ctx context.Context, url string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.options...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	b.logger.Info("rendering page", zap.String("url", url))

	var html string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
		chromedp.Navigate(url),
		chromedp.WaitVisible(articleBodyMarker, chromedp.ByQuery),
		// Late scripts still mutate the body right after the marker shows.
		chromedp.Sleep(time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}

	b.logger.Info("page rendered",
		zap.String("url", url),
		zap.Int("dom_length", len(html)))
	return html, nil
}
