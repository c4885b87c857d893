package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "/", s.Routes.Root)
	assert.Equal(t, "/signin", s.Routes.SignIn)
	assert.Equal(t, []string{"/personal", "/notifications", "/user/settings"}, s.Routes.Protected)
	assert.Equal(t, []string{"/signin", "/"}, s.Routes.SignedOut)
	assert.Equal(t, "connect.sid", s.Session.Cookie)
	assert.Equal(t, "POST", s.API.SignUp.Method)
	assert.Equal(t, "/users", s.API.SignUp.Path)
	assert.Equal(t, "CreateBankAccount", s.API.BankAccountOperation)
	assert.Equal(t, "signup-confirmPassword", s.Selectors.SignUp.ConfirmPassword)
	assert.Equal(t, "#confirmPassword-helper-text", s.Selectors.HelperText.ConfirmPassword)
	assert.Equal(t, "Username or password is invalid", s.Messages.InvalidCredentials)
	assert.Equal(t, "You're all set!", s.Messages.OnboardingFinishedContent)
	assert.Equal(t, "s3cret", s.Fixtures.Password)
	assert.Equal(t, "PainterJoy90", s.Signup.Username)
	assert.Equal(t, "KlarasTestUser", s.ProbeUser.Username)
	assert.Equal(t, BankAccount{BankName: "The Best Bank", AccountNumber: "123456789", RoutingNumber: "987654321"}, s.BankAccount)
	assert.Equal(t, 414, s.Viewport.MobileBreakpoint)
}

func TestLoad(t *testing.T) {
	vldt, err := NewValidator()
	require.NoError(t, err)

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "suite.yml")
		require.NoError(t, os.WriteFile(path, defaultSuite, 0o600))

		s, err := Load(path, vldt)
		require.NoError(t, err)
		assert.Equal(t, "/signin", s.Routes.SignIn)
	})

	t.Run("toml file with defaults applied", func(t *testing.T) {
		s, err := Load("testdata/suite.toml", vldt)
		require.NoError(t, err)
		assert.Equal(t, "/login", s.Routes.SignIn)
		assert.Equal(t, []string{"/account"}, s.Routes.Protected)
		assert.Equal(t, []string{"/login", "/"}, s.Routes.SignedOut, "signed-out routes default to sign-in and root")
		assert.Equal(t, "POST", s.API.SignUp.Method)
		assert.Equal(t, "AddBank", s.API.BankAccountOperation)
		assert.Equal(t, "people", s.Fixtures.Users)
		assert.Equal(t, 414, s.Viewport.MobileBreakpoint)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/suite.yml", vldt)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read suite file")
	})

	t.Run("unknown field rejected by schema", func(t *testing.T) {
		data := strings.Replace(string(defaultSuite), "session:\n  cookie: connect.sid", "session:\n  cookie: connect.sid\n  cokie: typo", 1)
		path := filepath.Join(t.TempDir(), "suite.yml")
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		_, err := Load(path, vldt)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "suite validation failed")
	})

	t.Run("missing required section", func(t *testing.T) {
		data := strings.Replace(string(defaultSuite), "session:\n  cookie: connect.sid\n", "", 1)
		path := filepath.Join(t.TempDir(), "suite.yml")
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		_, err := Load(path, vldt)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "suite validation failed")
	})

	t.Run("bad routing number", func(t *testing.T) {
		data := strings.Replace(string(defaultSuite), `routing_number: "987654321"`, `routing_number: "98765"`, 1)
		path := filepath.Join(t.TempDir(), "suite.yml")
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		_, err := Load(path, vldt)
		require.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "suite.yml")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		_, err := Load(path, vldt)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("broken yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "suite.yml")
		require.NoError(t, os.WriteFile(path, []byte("routes: [\n"), 0o600))

		_, err := Load(path, vldt)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse suite")
	})
}

func TestParse_WithoutValidator(t *testing.T) {
	t.Run("semantic checks still apply", func(t *testing.T) {
		data := strings.Replace(string(defaultSuite), "signin: /signin", "signin: signin", 1)
		_, err := Parse([]byte(data), FormatYAML, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "route signin must start with /")
	})

	t.Run("protected route equal to sign-in", func(t *testing.T) {
		data := strings.Replace(string(defaultSuite), "    - /personal\n", "    - /signin\n", 1)
		_, err := Parse([]byte(data), FormatYAML, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can't be the sign-in route")
	})

	t.Run("method is uppercased", func(t *testing.T) {
		data := strings.Replace(string(defaultSuite), "method: POST\n    path: /users", "method: post\n    path: /users", 1)
		s, err := Parse([]byte(data), FormatYAML, nil)
		require.NoError(t, err)
		assert.Equal(t, "POST", s.API.SignUp.Method)
	})

	t.Run("explicit signed-out routes kept", func(t *testing.T) {
		data := strings.Replace(string(defaultSuite), "  signed_out:\n    - /signin\n    - /\n", "  signed_out:\n    - /bye\n", 1)
		s, err := Parse([]byte(data), FormatYAML, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/bye"}, s.Routes.SignedOut)
	})
}
