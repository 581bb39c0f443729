package browser

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/nicholaihel7/hype-intelligence-backend/engine"
	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// Fetch renders the requested URL in a pooled page and returns the final
// HTML. It satisfies engine.BrowserFetchFunc.
//
// Lifecycle:
//
//  1. Timeout guard        – hard deadline on the entire operation
//  2. Acquire page         – borrow a tab from the pool (or create one)
//  3. DEFER: cleanup       – about:blank + return to pool (leak prevention)
//  4. Stealth injection    – mask navigator.webdriver etc. (before navigation!)
//  5. Headers              – custom headers + Google Referer
//  6. Hijack mount         – block images/CSS/fonts/media (before navigation!)
//  7. Navigate + wait      – DOM stable
//  8. Extract              – HTML, title, final URL, status via Performance API
//
// Steps 4-6 must precede navigation: stealth JS, extra headers, and
// resource blocking only apply to navigations that start after they are
// installed. Step 3 uses the ORIGINAL page reference (no request context)
// so cleanup succeeds even after the request context expires.
func (b *Browser) Fetch(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	// ── 1. Timeout guard ─────────────────────────────────────────────
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = b.cfg.NavigationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ── 2. Acquire page from pool ────────────────────────────────────
	b.activePages.Add(1)
	defer b.activePages.Add(-1)

	page, acquireErr := b.pagePool.Get(func() (*rod.Page, error) {
		return b.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// ── 3. Cleanup: prevent DOM memory leak + guarantee pool return ──
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		b.pagePool.Put(page)
	}()

	// ── 4. Stealth injection ─────────────────────────────────────────
	if req.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
		}
	}

	// ── 5. Extra headers: custom + a Google search Referer ──────────
	extraHeaders := make(map[string]string, len(req.Headers)+1)
	if _, hasReferer := req.Headers["Referer"]; !hasReferer {
		if u, parseErr := url.Parse(req.URL); parseErr == nil {
			extraHeaders["Referer"] = "https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())
		}
	}
	for k, v := range req.Headers {
		extraHeaders[k] = v
	}
	if len(extraHeaders) > 0 {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(extraHeaders),
		}.Call(page)
	}

	// ── 6. Mount hijack router (blocks Image/Stylesheet/Font/Media) ──
	router := setupHijack(page, b.cfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	// Bind the request context to all subsequent rod operations.
	p := page.Context(ctx)

	// ── 7. Navigate + wait ───────────────────────────────────────────
	if navErr := p.Navigate(req.URL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to search page failed")
	}
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", stableErr)
	}

	// ── 8. Extract ───────────────────────────────────────────────────
	// Status code via the Performance API: no CDP event listeners needed,
	// which avoids the Fetch/Network domain conflict on Chromium 145+.
	statusCode := 0
	if res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`); err == nil {
		statusCode = res.Value.Int()
	}

	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}

	title := evalStringOrEmpty(p, `() => document.title`)
	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = req.URL
	}

	return &engine.FetchResult{
		HTML:       rawHTML,
		Title:      title,
		StatusCode: statusCode,
		FinalURL:   finalURL,
	}, nil
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (used for optional metadata extraction).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
