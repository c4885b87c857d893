package browser

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/playwright-community/playwright-go"

	"github.com/umputun/authcheck/app/netwatch"
)

const pollInterval = 100 * time.Millisecond

// inputSelector finds the element itself or its descendant form control; test ids of
// styled inputs usually sit on a wrapper.
const inputSelector = "xpath=descendant-or-self::*[self::input or self::textarea][1]"

// Session is one isolated browser context with a single page.
type Session struct {
	ctx   context.Context
	name  string
	opts  Options
	bctx  playwright.BrowserContext
	page  playwright.Page
	watch *netwatch.Watcher

	mu        sync.Mutex
	snapshots int
}

// Net returns the network watcher attached to the page.
func (s *Session) Net() *netwatch.Watcher { return s.watch }

// Visit navigates to a path relative to the base URL and waits for the load event.
func (s *Session) Visit(path string) error {
	timeout, err := s.budget()
	if err != nil {
		return err
	}
	target := s.opts.BaseURL + "/" + strings.TrimPrefix(path, "/")
	log.Printf("[DEBUG] %s: visit %s", s.name, target)
	if _, err := s.page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   ms(timeout),
	}); err != nil {
		return fmt.Errorf("failed to visit %s: %w", path, err)
	}
	return nil
}

// Path returns the pathname of the current location.
func (s *Session) Path() string {
	return pathOf(s.page.URL())
}

// WaitPath waits until the current pathname equals one of paths and returns it.
func (s *Session) WaitPath(paths ...string) (string, error) {
	var last string
	err := s.poll(func() (bool, error) {
		last = s.Path()
		return slices.Contains(paths, last), nil
	})
	if err != nil {
		return last, fmt.Errorf("expected pathname %s, got %q: %w", strings.Join(paths, " or "), last, err)
	}
	return last, nil
}

// Click clicks the first matching element once it is actionable.
func (s *Session) Click(sel Selector) error {
	timeout, err := s.budget()
	if err != nil {
		return err
	}
	if err := s.locate(sel).First().Click(playwright.LocatorClickOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("failed to click %s: %w", sel, err)
	}
	return nil
}

// Type types text key by key into the element or its descendant input.
func (s *Session) Type(sel Selector, text string) error {
	timeout, err := s.budget()
	if err != nil {
		return err
	}
	input := s.input(sel)
	if err := input.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("failed to type into %s: %w", sel, err)
	}
	return nil
}

// Clear empties the input of the element.
func (s *Session) Clear(sel Selector) error {
	timeout, err := s.budget()
	if err != nil {
		return err
	}
	if err := s.input(sel).Clear(playwright.LocatorClearOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("failed to clear %s: %w", sel, err)
	}
	return nil
}

// Blur removes focus from the input of the element.
func (s *Session) Blur(sel Selector) error {
	timeout, err := s.budget()
	if err != nil {
		return err
	}
	if err := s.input(sel).Blur(playwright.LocatorBlurOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("failed to blur %s: %w", sel, err)
	}
	return nil
}

// Check ticks the checkbox of the element.
func (s *Session) Check(sel Selector) error {
	timeout, err := s.budget()
	if err != nil {
		return err
	}
	if err := s.input(sel).Check(playwright.LocatorCheckOptions{Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("failed to check %s: %w", sel, err)
	}
	return nil
}

// WaitVisible waits for the element to be visible.
func (s *Session) WaitVisible(sel Selector) error {
	return s.waitState(sel, playwright.WaitForSelectorStateVisible, "visible")
}

// WaitPresent waits for the element to be attached to the document.
func (s *Session) WaitPresent(sel Selector) error {
	return s.waitState(sel, playwright.WaitForSelectorStateAttached, "present")
}

// WaitAbsent waits until no element matches.
func (s *Session) WaitAbsent(sel Selector) error {
	return s.waitState(sel, playwright.WaitForSelectorStateDetached, "absent")
}

// WaitContains waits for the element to be visible with text containing substr.
func (s *Session) WaitContains(sel Selector, substr string) error {
	return s.waitText(sel, func(text string) bool { return strings.Contains(text, substr) },
		fmt.Sprintf("containing %q", substr))
}

// WaitText waits for the element to be visible with trimmed text equal to text.
func (s *Session) WaitText(sel Selector, text string) error {
	return s.waitText(sel, func(got string) bool { return strings.TrimSpace(got) == text },
		fmt.Sprintf("with text %q", text))
}

// WaitDisabled waits for the element to be disabled.
func (s *Session) WaitDisabled(sel Selector) error {
	loc := s.locate(sel).First()
	err := s.poll(func() (bool, error) {
		disabled, err := loc.IsDisabled(playwright.LocatorIsDisabledOptions{Timeout: ms(pollInterval)})
		if err != nil {
			return false, nil //nolint:nilerr // element may not be rendered yet
		}
		return disabled, nil
	})
	if err != nil {
		return fmt.Errorf("expected %s to be disabled: %w", sel, err)
	}
	return nil
}

// Cookie returns the cookie with the name for the base URL, nil if absent.
func (s *Session) Cookie(name string) (*Cookie, error) {
	cookies, err := s.bctx.Cookies(s.opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}
	return findCookie(cookies, name), nil
}

// WaitCookie polls until the cookie with the name is set, or gone when present is false.
// Returns the cookie, nil once it is gone.
func (s *Session) WaitCookie(name string, present bool) (*Cookie, error) {
	var found *Cookie
	err := s.poll(func() (bool, error) {
		c, err := s.Cookie(name)
		if err != nil {
			return false, err
		}
		found = c
		return (c != nil) == present, nil
	})
	if err != nil {
		return found, fmt.Errorf("expected cookie %s to be %s: %w", name, cookieState(present), err)
	}
	return found, nil
}

// IsMobile reports whether the viewport is narrower than the mobile breakpoint.
func (s *Session) IsMobile() bool {
	return isMobile(s.opts.Width, s.opts.MobileBreakpoint)
}

// Snapshot saves a full-page screenshot when a snapshot directory is set.
// Failures are logged only.
func (s *Session) Snapshot(name string) {
	if s.opts.SnapshotDir == "" {
		return
	}
	s.mu.Lock()
	s.snapshots++
	n := s.snapshots
	s.mu.Unlock()

	file := snapshotPath(s.opts.SnapshotDir, s.name, n, name)
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		log.Printf("[WARN] can't make snapshot directory: %v", err)
		return
	}
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(file),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Printf("[WARN] can't take snapshot %q: %v", name, err)
		return
	}
	log.Printf("[DEBUG] snapshot %s", file)
}

// Close closes the browser context and drops recorded requests.
func (s *Session) Close() error {
	s.watch.Reset()
	if err := s.bctx.Close(); err != nil {
		return fmt.Errorf("failed to close session %q: %w", s.name, err)
	}
	log.Printf("[DEBUG] session %q closed", s.name)
	return nil
}

func (s *Session) locate(sel Selector) playwright.Locator {
	return s.page.Locator(sel.Expr())
}

func (s *Session) input(sel Selector) playwright.Locator {
	return s.locate(sel).First().Locator(inputSelector)
}

func (s *Session) waitState(sel Selector, state *playwright.WaitForSelectorState, what string) error {
	timeout, err := s.budget()
	if err != nil {
		return err
	}
	if err := s.locate(sel).First().WaitFor(playwright.LocatorWaitForOptions{State: state, Timeout: ms(timeout)}); err != nil {
		return fmt.Errorf("expected %s to be %s: %w", sel, what, err)
	}
	return nil
}

func (s *Session) waitText(sel Selector, match func(string) bool, what string) error {
	if err := s.WaitVisible(sel); err != nil {
		return err
	}
	loc := s.locate(sel).First()
	var last string
	err := s.poll(func() (bool, error) {
		text, err := loc.TextContent(playwright.LocatorTextContentOptions{Timeout: ms(pollInterval)})
		if err != nil {
			return false, nil //nolint:nilerr // element may be re-rendered
		}
		last = text
		return match(text), nil
	})
	if err != nil {
		return fmt.Errorf("expected %s %s, got %q: %w", sel, what, last, err)
	}
	return nil
}

// budget returns the time left for a command, the command timeout capped by the
// session context deadline.
func (s *Session) budget() (time.Duration, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	timeout := s.opts.CommandTimeout
	if dl, ok := s.ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return 0, context.DeadlineExceeded
	}
	return timeout, nil
}

// poll calls check every pollInterval until it returns true, the command timeout
// elapses or the session context is done.
func (s *Session) poll(check func() (bool, error)) error {
	return poll(s.ctx, s.opts.CommandTimeout, check)
}

func poll(ctx context.Context, timeout time.Duration, check func() (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		ok, err := check()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out after %v: %w", timeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

func isMobile(width, breakpoint int) bool {
	return width < breakpoint
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	res := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if res == "" {
		return "snapshot"
	}
	return res
}

func snapshotPath(dir, session string, n int, name string) string {
	return filepath.Join(dir, slug(session), fmt.Sprintf("%02d-%s.png", n, slug(name)))
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
