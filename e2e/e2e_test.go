//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/stretchr/testify/require"

	"github.com/umputun/authcheck/app/browser"
	"github.com/umputun/authcheck/app/config"
	"github.com/umputun/authcheck/app/fixture"
	"github.com/umputun/authcheck/app/scenario"
)

// the application under test is started outside unless E2E_APP_CMD is set
var (
	appURL  = envOr("E2E_APP_URL", "http://localhost:3000")
	apiURL  = envOr("E2E_API_URL", "http://localhost:3001")
	appCmd  = os.Getenv("E2E_APP_CMD")
	suiteFn = os.Getenv("E2E_SUITE")
)

const requestTimeout = 10 * time.Second

var (
	appProc  *exec.Cmd
	launcher *browser.Launcher // single browser instance, reused across tests via sessions
	fixtures *fixture.Client
	suite    config.Suite
)

// TestMain starts the application if asked, launches the browser and tears all down
func TestMain(m *testing.M) {
	if appCmd != "" {
		args, err := shellwords.Parse(appCmd)
		if err != nil || len(args) == 0 {
			log.Fatalf("bad E2E_APP_CMD %q: %v", appCmd, err)
		}
		appProc = exec.Command(args[0], args[1:]...) //nolint:gosec // test code with controlled command
		appProc.Stdout, appProc.Stderr = os.Stderr, os.Stderr
		if err := appProc.Start(); err != nil {
			log.Fatalf("failed to start application: %v", err)
		}
	}

	// wait for application to be ready
	if err := waitForServer(appURL, 2*time.Minute); err != nil {
		stopApp()
		log.Fatalf("application not ready: %v", err)
	}

	if err := loadSuite(); err != nil {
		stopApp()
		log.Fatalf("failed to load suite: %v", err)
	}

	var err error
	if fixtures, err = fixture.New(apiURL, fixture.WithTimeout(requestTimeout)); err != nil {
		stopApp()
		log.Fatalf("failed to make fixture client: %v", err)
	}

	// launch browser once, installing it if needed
	headless := os.Getenv("E2E_HEADLESS") != "false"
	var slowMo time.Duration
	if !headless {
		slowMo = 50 * time.Millisecond // slow down visible browser for easier observation
	}
	launcher, err = browser.Launch(browser.Options{
		Browser:          envOr("E2E_BROWSER", "chromium"),
		Headed:           !headless,
		SlowMo:           slowMo,
		Install:          true,
		BaseURL:          appURL,
		RequestTimeout:   requestTimeout,
		MobileBreakpoint: suite.Viewport.MobileBreakpoint,
		SnapshotDir:      os.Getenv("E2E_SNAPSHOTS"),
	})
	if err != nil {
		stopApp()
		log.Fatalf("failed to launch browser: %v", err)
	}

	// run tests
	code := m.Run()

	// cleanup
	_ = launcher.Close()
	_ = fixtures.Close()
	stopApp()

	os.Exit(code)
}

func loadSuite() error {
	vldt, err := config.NewValidator()
	if err != nil {
		return err
	}
	h, err := config.NewHolder(suiteFn, vldt)
	if err != nil {
		return err
	}
	suite = h.Current()
	return nil
}

func stopApp() {
	if appProc != nil && appProc.Process != nil {
		_ = appProc.Process.Kill()
		_ = appProc.Wait()
	}
}

func waitForServer(serverURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(serverURL) //nolint:gosec // test code with controlled URL
		if err == nil && resp.StatusCode == http.StatusOK {
			_ = resp.Body.Close()
			return nil
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// newEnv opens an isolated browser session for the test and returns scenario environment over it
func newEnv(t *testing.T, l *browser.Launcher) scenario.Env {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	sess, err := l.NewSession(ctx, t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	return scenario.Env{
		Ctx:            ctx,
		UI:             sess,
		Net:            sess.Net(),
		Fixtures:       fixtures,
		Suite:          suite,
		APIURL:         apiURL,
		RequestTimeout: requestTimeout,
	}
}

// runScenario looks up the named scenario and executes it in a fresh session
func runScenario(t *testing.T, name string) {
	t.Helper()
	sc, ok := scenario.Lookup(name)
	require.True(t, ok, "scenario %s not found", name)
	scenario.Execute(t, newEnv(t, launcher), sc)
}
