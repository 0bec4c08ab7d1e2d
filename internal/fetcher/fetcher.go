package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/hharuki/sitemapper/internal/config"
)

// expanderSelectors are the control groups clicked during the
// best-effort expansion pass, one pass per group. The lists are fixed;
// they cover the common Bootstrap-style patterns.
var expanderSelectors = []string{
	`.menu-button, .navbar-toggler, button[aria-expanded="false"]`,
	`.accordion-button, .collapse-toggle, [data-bs-toggle="collapse"]`,
}

// expandScript clicks every visible, enabled element matching the
// selector and reports how many it clicked.
const expandScript = `
(() => {
	let clicked = 0;
	for (const el of document.querySelectorAll(%q)) {
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden') continue;
		if (el.disabled) continue;
		try { el.click(); clicked++; } catch (e) {}
	}
	return clicked;
})()
`

// Page is one rendered page.
type Page struct {
	// URL is the address that was fetched.
	URL string

	// Title is the document title, possibly empty.
	Title string

	// HTML is the rendered markup after settling and expansion.
	HTML string
}

// session is one borrowed Chrome tab.
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Browser renders pages through a pool of Chrome tabs.
type Browser struct {
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc

	// sessions is the tab pool; borrowing is a channel receive.
	sessions chan *session

	// done is closed on Close so blocked borrowers fail fast.
	done chan struct{}

	pageTimeout time.Duration
	settleDelay time.Duration
	clickDelay  time.Duration
	userAgent   string

	logger *slog.Logger
}

// NewBrowser starts one Chrome process and opens a tab pool sized to
// the worker-pool width. The caller must Close it.
func NewBrowser(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Browser, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)

	// The first context starts the browser; later contexts derived from
	// it are tabs in the same process.
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	b := &Browser{
		allocCancel:   allocCancel,
		browserCancel: browserCancel,
		sessions:      make(chan *session, cfg.Workers),
		done:          make(chan struct{}),
		pageTimeout:   cfg.PageTimeout,
		settleDelay:   cfg.SettleDelay,
		clickDelay:    cfg.ClickDelay,
		userAgent:     cfg.UserAgent,
		logger:        logger,
	}

	for i := 0; i < cfg.Workers; i++ {
		tabCtx, tabCancel := chromedp.NewContext(browserCtx)
		if err := chromedp.Run(tabCtx); err != nil {
			tabCancel()
			for len(b.sessions) > 0 {
				(<-b.sessions).cancel()
			}
			browserCancel()
			allocCancel()
			return nil, fmt.Errorf("failed to open tab %d: %w", i, err)
		}
		b.sessions <- &session{ctx: tabCtx, cancel: tabCancel}
	}

	return b, nil
}

// Close waits for borrowed tabs to come back, then shuts the pool and
// the Chrome process down. Must not be called concurrently with itself.
func (b *Browser) Close() {
	close(b.done)
	for i := 0; i < cap(b.sessions); i++ {
		(<-b.sessions).cancel()
	}
	b.browserCancel()
	b.allocCancel()
}

// Fetch renders one page: navigate, wait for the body, settle, expand
// collapsed controls, then read the title and outer HTML.
//
// Every failure mode is collapsed into ErrPageUnreachable. The caller
// cannot act differently on a timeout versus a DNS error; both mean
// the node is broken.
func (b *Browser) Fetch(ctx context.Context, url string) (*Page, error) {
	s, err := b.borrow(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { b.sessions <- s }()

	tctx, cancel := context.WithTimeout(s.ctx, b.pageTimeout)
	defer cancel()

	err = chromedp.Run(tctx,
		emulation.SetUserAgentOverride(b.userAgent),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(b.settleDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPageUnreachable, url, err)
	}

	b.expand(tctx, url)

	var (
		title string
		html  string
	)
	err = chromedp.Run(tctx,
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPageUnreachable, url, err)
	}

	return &Page{URL: url, Title: title, HTML: html}, nil
}

// expand clicks collapsed-menu and accordion controls so hidden links
// render. Strictly best effort: a site whose controls throw on click
// still yields its visible markup.
func (b *Browser) expand(ctx context.Context, url string) {
	for _, sel := range expanderSelectors {
		var clicked int
		err := chromedp.Run(ctx,
			chromedp.Evaluate(fmt.Sprintf(expandScript, sel), &clicked),
		)
		if err != nil {
			b.logger.Debug("expansion pass failed",
				"url", url,
				"selector", sel,
				"error", err,
			)
			continue
		}
		if clicked > 0 {
			// Give the click handlers time to mutate the DOM.
			if err := chromedp.Run(ctx, chromedp.Sleep(b.clickDelay)); err != nil {
				return
			}
		}
	}
}

// borrow takes a session from the pool, honoring ctx cancellation.
func (b *Browser) borrow(ctx context.Context) (*session, error) {
	select {
	case s := <-b.sessions:
		return s, nil
	case <-b.done:
		return nil, ErrBrowserClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
