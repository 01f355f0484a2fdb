package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/brandsift/brandsift/config"
	"github.com/brandsift/brandsift/models"
)

// Extractor drives a headless browser at a target URL and pulls brand name
// and description out of the rendered HTML.
//
// Every Extract call launches its own browser process and tears it down
// before returning, so a crashed render cannot corrupt a sibling request.
// The Extractor itself holds no mutable state and is safe for concurrent use.
type Extractor struct {
	browserCfg config.BrowserConfig
	scraperCfg config.ScraperConfig
}

// NewExtractor creates an Extractor. No browser is launched until Extract.
func NewExtractor(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) *Extractor {
	return &Extractor{
		browserCfg: browserCfg,
		scraperCfg: scraperCfg,
	}
}

// Extract runs one full extraction and always returns a structured result:
// navigation and input failures are folded into the result rather than
// surfaced as errors.
//
// Lifecycle:
//
//  1. URL validation        – reject non-http(s) input before any browser work
//  2. Timeout guard         – hard deadline on the entire operation
//  3. Launch browser        – fresh process, hardened flag set
//  4. DEFER: teardown       – close page, close browser, kill the process
//  5. Stealth + headers     – must be installed before navigation
//  6. Hijack mount          – block heavy resource types (before navigation!)
//  7. Navigate              – bounded, with exactly one retry after a fixed delay
//  8. Wait                  – DOM stable
//  9. Parse + extract       – goquery selector chains over the rendered HTML
func (e *Extractor) Extract(ctx context.Context, rawURL string) *models.ScrapeResult {
	// ── 1. URL validation ────────────────────────────────────────────
	if err := validateURL(rawURL); err != nil {
		return models.NewFailedResult(rawURL, models.NewCategorizedError(models.ErrCategoryInvalidURL, err))
	}

	// ── 2. Timeout guard ─────────────────────────────────────────────
	timeout := e.scraperCfg.Timeout
	if timeout > e.scraperCfg.MaxTimeout {
		timeout = e.scraperCfg.MaxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ── 3. Launch browser ────────────────────────────────────────────
	browser, l, err := e.launchBrowser()
	if err != nil {
		slog.Error("browser launch failed", "url", rawURL, "error", err)
		return models.NewFailedResult(rawURL, models.NewCategorizedError(models.ErrCategoryUnknown, err))
	}

	// ── 4. Teardown on every exit path ───────────────────────────────
	// Close is graceful; Kill guarantees the process is gone even when the
	// CDP connection is already broken. Browser processes are heavyweight
	// and leak-prone under repeated failures, so this is not best-effort.
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			slog.Warn("browser close failed, killing process", "error", closeErr)
		}
		l.Kill()
		l.Cleanup()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return models.NewFailedResult(rawURL, models.NewCategorizedError(models.ErrCategoryUnknown, err))
	}
	defer func() { _ = page.Close() }()

	// ── 5. Stealth injection + Referer header ────────────────────────
	// Both only take effect for navigations that happen after they are
	// installed.
	if e.browserCfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
		}
	}
	if u, parseErr := url.Parse(rawURL); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(page)
	}

	// ── 6. Mount hijack router ───────────────────────────────────────
	router := setupHijack(page, e.browserCfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	p := page.Context(ctx)

	// ── 7. Navigate with a single retry ──────────────────────────────
	if navErr := e.navigateWithRetry(ctx, p, rawURL); navErr != nil {
		scrapeErr := Classify(navErr)
		slog.Warn("navigation failed",
			"url", rawURL,
			"category", scrapeErr.Category,
			"error", navErr,
		)
		return models.NewFailedResult(rawURL, scrapeErr)
	}

	// ── 8. Wait for the DOM to settle ────────────────────────────────
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"url", rawURL, "error", stableErr,
		)
	}

	// ── 9. Parse rendered HTML and run the selector chains ───────────
	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return models.NewFailedResult(rawURL, Classify(htmlErr))
	}

	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if docErr != nil {
		return models.NewFailedResult(rawURL, models.NewCategorizedError(models.ErrCategoryUnknown, docErr))
	}

	brandName := ExtractBrandName(doc)
	description := ExtractDescription(doc)

	slog.Info("extraction complete", "url", rawURL, "brand", brandName)
	return models.NewExtractedResult(rawURL, brandName, description)
}

// navigateWithRetry attempts the page load once and, on failure, retries
// exactly once after a fixed delay. Arbitrary public websites have highly
// variable latency; no backoff curve is tuned beyond this single retry.
func (e *Extractor) navigateWithRetry(ctx context.Context, p *rod.Page, rawURL string) error {
	navErr := p.Navigate(rawURL)
	if navErr == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return navErr
	case <-time.After(e.scraperCfg.RetryDelay):
	}

	slog.Debug("retrying navigation", "url", rawURL, "error", navErr)
	return p.Navigate(rawURL)
}

// launchBrowser starts a fresh browser process with the hardened flag set
// and connects to it. The caller owns teardown.
func (e *Extractor) launchBrowser() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Headless(e.browserCfg.Headless).
		NoSandbox(e.browserCfg.NoSandbox)

	if e.browserCfg.BrowserBin != "" {
		l = l.Bin(e.browserCfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, err
	}

	return browser, l, nil
}

// validateURL rejects anything that is not an absolute http(s) URL.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &url.Error{Op: "parse", URL: rawURL, Err: errUnsupportedScheme}
	}
	if u.Host == "" {
		return &url.Error{Op: "parse", URL: rawURL, Err: errMissingHost}
	}
	return nil
}

var (
	errUnsupportedScheme = errors.New("scheme must be http or https")
	errMissingHost       = errors.New("missing host")
)
