//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/authcheck/app/browser"
	"github.com/umputun/authcheck/app/scenario"
)

func TestAuth_UnauthenticatedRedirects(t *testing.T) {
	for _, name := range []string{"redirect-personal", "redirect-notifications", "redirect-settings"} {
		t.Run(name, func(t *testing.T) {
			runScenario(t, name)
		})
	}
}

func TestAuth_LoginLogout(t *testing.T) {
	t.Run("login redirects home", func(t *testing.T) {
		runScenario(t, "login-redirects-home")
	})

	t.Run("logout redirects", func(t *testing.T) {
		runScenario(t, "logout-redirects")
	})
}

func TestAuth_RememberSession(t *testing.T) {
	t.Run("remembered cookie", func(t *testing.T) {
		runScenario(t, "remember-session")
	})

	t.Run("cookie cleared on signout", func(t *testing.T) {
		runScenario(t, "cookie-cleared-on-signout")
	})
}

func TestAuth_SessionCookieNotRemembered(t *testing.T) {
	env := newEnv(t, launcher)
	scenario.Prepare(t, env)

	user, err := env.Fixtures.FindUser(env.Ctx, suite.Fixtures.Users, nil)
	require.NoError(t, err)
	scenario.Login(t, env, user.Username, suite.Fixtures.Password, scenario.LoginOptions{})

	_, err = env.UI.WaitPath(suite.Routes.Root)
	require.NoError(t, err)
	cookie, err := env.UI.WaitCookie(suite.Session.Cookie, true)
	require.NoError(t, err, "session cookie is set")
	assert.Nil(t, cookie.Expiry, "login without remember-me gives a session cookie")
}

func TestAuth_InvalidCredentials(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		runScenario(t, "invalid-user")
	})

	t.Run("wrong password", func(t *testing.T) {
		runScenario(t, "invalid-password")
	})
}

func TestAuth_MobileLogout(t *testing.T) {
	mobile, err := browser.Launch(browser.Options{
		Width:            375,
		Height:           812,
		BaseURL:          appURL,
		RequestTimeout:   requestTimeout,
		MobileBreakpoint: suite.Viewport.MobileBreakpoint,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mobile.Close() })

	env := newEnv(t, mobile)
	require.True(t, env.UI.IsMobile())
	sc, ok := scenario.Lookup("logout-redirects")
	require.True(t, ok)
	scenario.Execute(t, env, sc)
}
