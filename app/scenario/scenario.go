// Package scenario holds the authentication scenarios and the helpers they share.
//
// Scenarios report through T, a subset of testing.T, so the same code runs under go test
// and under the CLI runner. Every application fact (routes, selectors, texts, fixture
// data) comes from the suite in Env; scenarios only encode the flow and the expectations.
package scenario

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/require"

	"github.com/umputun/authcheck/app/browser"
	"github.com/umputun/authcheck/app/config"
	"github.com/umputun/authcheck/app/fixture"
	"github.com/umputun/authcheck/app/netwatch"
)

// request aliases armed by Prepare and Login
const (
	AliasLogin             = "loginUser"
	AliasSignup            = "signup"
	AliasCreateBankAccount = "gqlCreateBankAccountMutation"
)

// T is the part of testing.T scenarios use.
type T interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
	Logf(format string, args ...any)
	Name() string
}

// UI drives the page of one browser session.
type UI interface {
	Visit(path string) error
	Path() string
	WaitPath(paths ...string) (string, error)
	Click(sel browser.Selector) error
	Type(sel browser.Selector, text string) error
	Clear(sel browser.Selector) error
	Blur(sel browser.Selector) error
	Check(sel browser.Selector) error
	WaitVisible(sel browser.Selector) error
	WaitPresent(sel browser.Selector) error
	WaitAbsent(sel browser.Selector) error
	WaitContains(sel browser.Selector, substr string) error
	WaitText(sel browser.Selector, text string) error
	WaitDisabled(sel browser.Selector) error
	WaitCookie(name string, present bool) (*browser.Cookie, error)
	IsMobile() bool
	Snapshot(name string)
}

// Network records requests of the session under aliases.
type Network interface {
	Intercept(rule netwatch.Rule) error
	Wait(ctx context.Context, alias string, timeout time.Duration) (netwatch.Record, error)
}

// Fixtures resets and queries the application test data.
type Fixtures interface {
	Seed(ctx context.Context) error
	FindUser(ctx context.Context, collection string, query map[string]any) (fixture.User, error)
}

// Env is everything a scenario runs against.
type Env struct {
	Ctx            context.Context
	UI             UI
	Net            Network
	Fixtures       Fixtures
	Suite          config.Suite
	APIURL         string        // api host, graphql requests are matched against it when set
	RequestTimeout time.Duration // bound of network waits, zero for the watcher default
}

// Scenario is a named flow with expectations.
type Scenario struct {
	Name  string
	Title string
	Run   func(t T, env Env)
}

// LoginOptions tunes Login.
type LoginOptions struct {
	RememberUser bool
}

// Login signs in through the form and waits for the login request to complete.
// It does not assert the outcome of the login.
func Login(t T, env Env, username, password string, opts LoginOptions) {
	t.Helper()
	s := env.Suite
	require.NoError(t, env.Net.Intercept(netwatch.Rule{Alias: AliasLogin, Method: s.API.Login.Method, URL: s.API.Login.Path}))

	if env.UI.Path() != s.Routes.SignIn {
		require.NoError(t, env.UI.Visit(s.Routes.SignIn))
	}
	require.NoError(t, env.UI.Type(browser.BySel(s.Selectors.SignIn.Username), username))
	require.NoError(t, env.UI.Type(browser.BySel(s.Selectors.SignIn.Password), password))
	if opts.RememberUser {
		require.NoError(t, env.UI.Check(browser.BySel(s.Selectors.SignIn.RememberMe)))
	}
	require.NoError(t, env.UI.Click(browser.BySel(s.Selectors.SignIn.Submit)))

	rec, err := env.Net.Wait(env.Ctx, AliasLogin, env.RequestTimeout)
	require.NoError(t, err, "login request")
	log.Printf("[DEBUG] login as %s, remember=%v, status %d", username, opts.RememberUser, rec.Status)
}

// Logout signs out through the navigation, opening the side menu first on mobile
// layouts. The root page is a signed-out landing too, so the session cookie has to be
// dropped before the landing pathname counts. Returns the landing pathname.
func Logout(t T, env Env) string {
	t.Helper()
	s := env.Suite
	if env.UI.IsMobile() {
		require.NoError(t, env.UI.Click(browser.BySel(s.Selectors.Nav.Toggle)))
	}
	require.NoError(t, env.UI.Click(browser.BySel(s.Selectors.Nav.SignOut)))
	_, err := env.UI.WaitCookie(s.Session.Cookie, false)
	require.NoError(t, err, "session cookie %s after sign-out", s.Session.Cookie)
	landing, err := env.UI.WaitPath(s.Routes.SignedOut...)
	require.NoError(t, err, "landing after sign-out")
	return landing
}

// Prepare resets fixtures and arms the aliases every scenario may wait on.
func Prepare(t T, env Env) {
	t.Helper()
	s := env.Suite
	require.NoError(t, env.Fixtures.Seed(env.Ctx), "seed fixtures")
	require.NoError(t, env.Net.Intercept(netwatch.Rule{Alias: AliasSignup, Method: s.API.SignUp.Method, URL: s.API.SignUp.Path}))
	require.NoError(t, env.Net.Intercept(netwatch.Rule{
		Alias:     AliasCreateBankAccount,
		Method:    http.MethodPost,
		URL:       graphqlURL(env),
		Operation: s.API.BankAccountOperation,
	}))
}

// Execute prepares the environment and runs the scenario.
func Execute(t T, env Env, sc Scenario) {
	t.Helper()
	Prepare(t, env)
	sc.Run(t, env)
}

// seededUser returns the first seeded user.
func seededUser(t T, env Env) fixture.User {
	t.Helper()
	user, err := env.Fixtures.FindUser(env.Ctx, env.Suite.Fixtures.Users, nil)
	require.NoError(t, err, "seeded user")
	return user
}

// fillSignUp opens the sign-up form from the root page and fills it with the identity.
func fillSignUp(t T, env Env, id config.Identity) {
	t.Helper()
	s := env.Suite
	sel := s.Selectors.SignUp
	require.NoError(t, env.UI.Visit(s.Routes.Root))
	require.NoError(t, env.UI.Click(browser.BySel(sel.Link)))
	require.NoError(t, env.UI.WaitVisible(browser.BySel(sel.Title)))
	require.NoError(t, env.UI.WaitContains(browser.BySel(sel.Title), s.Messages.SignUpTitle))
	env.UI.Snapshot("Sign Up Title")

	require.NoError(t, env.UI.Type(browser.BySel(sel.FirstName), id.FirstName))
	require.NoError(t, env.UI.Type(browser.BySel(sel.LastName), id.LastName))
	require.NoError(t, env.UI.Type(browser.BySel(sel.Username), id.Username))
	require.NoError(t, env.UI.Type(browser.BySel(sel.Password), id.Password))
	require.NoError(t, env.UI.Type(browser.BySel(sel.ConfirmPassword), id.Password))
	env.UI.Snapshot("About to Sign Up")
}

// expectRememberedCookie waits for the session cookie, asserts it is persistent and logs it.
func expectRememberedCookie(t T, env Env) {
	t.Helper()
	name := env.Suite.Session.Cookie
	cookie, err := env.UI.WaitCookie(name, true)
	require.NoError(t, err, "cookie %s after login", name)
	require.NotNil(t, cookie.Expiry, "cookie %s has no expiry", name)
	log.Printf("[DEBUG] cookie %s: domain=%s path=%s expiry=%s", cookie.Name, cookie.Domain, cookie.Path,
		cookie.Expiry.Format(time.RFC3339))
}

func graphqlURL(env Env) string {
	if env.APIURL == "" {
		return env.Suite.API.GraphQL
	}
	return strings.TrimSuffix(env.APIURL, "/") + env.Suite.API.GraphQL
}

func protectedRoute(t T, env Env, idx int) string {
	t.Helper()
	routes := env.Suite.Routes.Protected
	require.Greater(t, len(routes), idx, fmt.Sprintf("suite lists %d protected routes", len(routes)))
	return routes[idx]
}
