// Package browser drives a real browser with playwright. A Launcher owns the playwright
// driver and one browser process; every Session is an isolated browser context (own
// cookies and storage) with a single page and a network watcher attached to it.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/playwright-community/playwright-go"

	"github.com/umputun/authcheck/app/netwatch"
)

// Options configures the browser launch and sessions made by the launcher.
type Options struct {
	Browser          string        // chromium, firefox or webkit
	Headed           bool          // show browser window
	SlowMo           time.Duration // delay between browser operations, headed debugging
	Install          bool          // install driver and browser before launch
	Width, Height    int           // viewport size
	BaseURL          string        // application URL, Visit paths are relative to it
	CommandTimeout   time.Duration // bound of every UI command and wait
	RequestTimeout   time.Duration // default bound of network waits
	MobileBreakpoint int           // viewport width below which the mobile layout is used
	SnapshotDir      string        // directory for snapshots, empty disables them
}

// default values for zero options
const (
	defaultWidth          = 1280
	defaultHeight         = 1000
	defaultCommandTimeout = 10 * time.Second
	defaultRequestTimeout = 10 * time.Second
	defaultBreakpoint     = 414
)

// Launcher starts playwright and the browser once and makes sessions on it.
type Launcher struct {
	opts    Options
	pw      *playwright.Playwright
	browser playwright.Browser

	mu       sync.Mutex
	sessions int
}

// Launch starts playwright and the configured browser.
func Launch(opts Options) (*Launcher, error) {
	opts = opts.withDefaults()
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	if opts.Install {
		log.Printf("[INFO] installing playwright driver and %s", opts.Browser)
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{opts.Browser}}); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch opts.Browser {
	case "chromium":
		bt = pw.Chromium
	case "firefox":
		bt = pw.Firefox
	case "webkit":
		bt = pw.WebKit
	default:
		_ = pw.Stop()
		return nil, fmt.Errorf("unsupported browser %q", opts.Browser)
	}

	browser, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!opts.Headed),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", opts.Browser, err)
	}
	log.Printf("[INFO] %s launched, headed=%v, viewport %dx%d", opts.Browser, opts.Headed, opts.Width, opts.Height)
	return &Launcher{opts: opts, pw: pw, browser: browser}, nil
}

// NewSession opens a fresh browser context with one page. Waits of the session are
// bounded by ctx as well as by the command timeout.
func (l *Launcher) NewSession(ctx context.Context, name string) (*Session, error) {
	bctx, err := l.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: l.opts.Width, Height: l.opts.Height},
		BaseURL:  playwright.String(l.opts.BaseURL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	l.mu.Lock()
	l.sessions++
	l.mu.Unlock()

	s := &Session{
		ctx:   ctx,
		name:  name,
		opts:  l.opts,
		bctx:  bctx,
		page:  page,
		watch: netwatch.New(l.opts.RequestTimeout),
	}
	page.OnResponse(func(resp playwright.Response) {
		s.watch.Observe(resp.Request(), resp.Status(), nil)
	})
	page.OnRequestFailed(func(req playwright.Request) {
		s.watch.Observe(req, 0, req.Failure())
	})
	log.Printf("[DEBUG] session %q opened", name)
	return s, nil
}

// Close shuts the browser and playwright down.
func (l *Launcher) Close() error {
	var errs []error
	if err := l.browser.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
	}
	if err := l.pw.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
	}
	l.mu.Lock()
	log.Printf("[DEBUG] browser closed after %d sessions", l.sessions)
	l.mu.Unlock()
	return errors.Join(errs...)
}

func (o Options) withDefaults() Options {
	o.Browser = strings.ToLower(strings.TrimSpace(o.Browser))
	if o.Browser == "" {
		o.Browser = "chromium"
	}
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	if o.CommandTimeout <= 0 {
		o.CommandTimeout = defaultCommandTimeout
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = defaultRequestTimeout
	}
	if o.MobileBreakpoint <= 0 {
		o.MobileBreakpoint = defaultBreakpoint
	}
	o.BaseURL = strings.TrimSuffix(o.BaseURL, "/")
	return o
}
