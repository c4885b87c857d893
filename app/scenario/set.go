package scenario

import (
	"net/url"

	log "github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/authcheck/app/browser"
	"github.com/umputun/authcheck/app/netwatch"
)

const aliasSignupRequest = "signupRequest"

// Set returns all scenarios in execution order.
func Set() []Scenario {
	return []Scenario{
		{Name: "redirect-personal", Title: "unauthenticated visit of the personal page redirects to sign-in",
			Run: redirectToSignIn(0)},
		{Name: "redirect-notifications", Title: "unauthenticated visit of the notifications page redirects to sign-in",
			Run: redirectToSignIn(1)},
		{Name: "redirect-settings", Title: "unauthenticated visit of the settings page redirects to sign-in",
			Run: redirectToSignIn(2)},
		{Name: "login-redirects-home", Title: "login lands on the home page", Run: loginRedirectsHome},
		{Name: "logout-redirects", Title: "logout lands on a public page", Run: logoutRedirects},
		{Name: "signup-request-captured", Title: "sign-up request is captured with the submitted identity",
			Run: signupRequestCaptured},
		{Name: "remember-session", Title: "remembered login keeps a persistent session cookie", Run: rememberSession},
		{Name: "cookie-cleared-on-signout", Title: "session cookie is removed by sign-out", Run: cookieClearedOnSignout},
		{Name: "signup-onboarding-logout", Title: "visitor signs up, logs in, completes onboarding and logs out",
			Run: signupOnboardingLogout},
		{Name: "signin-validation-errors", Title: "sign-in form shows validation errors", Run: signinValidationErrors},
		{Name: "signup-validation-errors", Title: "sign-up form shows validation errors", Run: signupValidationErrors},
		{Name: "invalid-user", Title: "unknown user can't sign in", Run: invalidUser},
		{Name: "invalid-password", Title: "existing user with a wrong password can't sign in", Run: invalidPassword},
	}
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	for _, sc := range Set() {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

func redirectToSignIn(idx int) func(t T, env Env) {
	return func(t T, env Env) {
		t.Helper()
		route := protectedRoute(t, env, idx)
		require.NoError(t, env.UI.Visit(route))
		t.Logf("location after visiting %s: %s", route, env.UI.Path())
		_, err := env.UI.WaitPath(env.Suite.Routes.SignIn)
		require.NoError(t, err)
		env.UI.Snapshot("Redirect to SignIn")
	}
}

func loginRedirectsHome(t T, env Env) {
	user := seededUser(t, env)
	Login(t, env, user.Username, env.Suite.Fixtures.Password, LoginOptions{RememberUser: true})
	_, err := env.UI.WaitPath(env.Suite.Routes.Root)
	require.NoError(t, err)
}

func logoutRedirects(t T, env Env) {
	user := seededUser(t, env)
	Login(t, env, user.Username, env.Suite.Fixtures.Password, LoginOptions{RememberUser: false})
	landing := Logout(t, env)
	t.Logf("signed out to %s", landing)
	env.UI.Snapshot("Redirect to SignIn")
}

func signupRequestCaptured(t T, env Env) {
	s := env.Suite
	require.NoError(t, env.Net.Intercept(netwatch.Rule{Alias: aliasSignupRequest, Method: s.API.SignUp.Method, URL: s.API.SignUp.Path}))

	fillSignUp(t, env, s.ProbeUser)
	require.NoError(t, env.UI.Click(browser.BySel(s.Selectors.SignUp.Submit)))

	rec, err := env.Net.Wait(env.Ctx, aliasSignupRequest, env.RequestTimeout)
	require.NoError(t, err)

	log.Printf("[INFO] sign-up request body: %s", rec.Body)
	log.Printf("[INFO] sign-up request method: %s", rec.Method)
	log.Printf("[INFO] sign-up request resource type: %s", rec.ResourceType)
	log.Printf("[INFO] sign-up request url: %s", rec.URL)

	assert.Equal(t, s.API.SignUp.Method, rec.Method)
	if u, err := url.Parse(rec.URL); assert.NoError(t, err) {
		assert.Equal(t, s.API.SignUp.Path, u.Path)
	}

	var body struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Username  string `json:"username"`
		Password  string `json:"password"`
	}
	require.NoError(t, rec.JSON(&body))
	assert.Equal(t, s.ProbeUser.FirstName, body.FirstName)
	assert.Equal(t, s.ProbeUser.LastName, body.LastName)
	assert.Equal(t, s.ProbeUser.Username, body.Username)
	assert.Equal(t, s.ProbeUser.Password, body.Password)
}

func rememberSession(t T, env Env) {
	user := seededUser(t, env)
	Login(t, env, user.Username, env.Suite.Fixtures.Password, LoginOptions{RememberUser: true})
	expectRememberedCookie(t, env)

	Logout(t, env)
	_, err := env.UI.WaitPath(env.Suite.Routes.SignIn)
	require.NoError(t, err)
	env.UI.Snapshot("Redirect to SignIn")
}

func cookieClearedOnSignout(t T, env Env) {
	rememberSession(t, env)

	name := env.Suite.Session.Cookie
	_, err := env.UI.WaitCookie(name, false)
	require.NoError(t, err, "cookie %s after sign-out", name)
}

func signupOnboardingLogout(t T, env Env) {
	s := env.Suite
	sel := s.Selectors

	fillSignUp(t, env, s.Signup)
	require.NoError(t, env.UI.Click(browser.BySel(sel.SignUp.Submit)))
	_, err := env.Net.Wait(env.Ctx, AliasSignup, env.RequestTimeout)
	require.NoError(t, err, "sign-up request")

	Login(t, env, s.Signup.Username, s.Signup.Password, LoginOptions{})

	require.NoError(t, env.UI.WaitVisible(browser.BySel(sel.Onboarding.Dialog)))
	require.NoError(t, env.UI.WaitAbsent(browser.BySel(sel.Nav.ListSkeleton)))
	require.NoError(t, env.UI.WaitPresent(browser.BySel(sel.Nav.NotificationsCount)))
	env.UI.Snapshot("User Onboarding Dialog")
	require.NoError(t, env.UI.Click(browser.BySel(sel.Onboarding.Next)))

	require.NoError(t, env.UI.WaitContains(browser.BySel(sel.Onboarding.Title), s.Messages.OnboardingBankTitle))
	require.NoError(t, env.UI.Type(browser.BySelLike(sel.BankForm.BankName), s.BankAccount.BankName))
	require.NoError(t, env.UI.Type(browser.BySelLike(sel.BankForm.AccountNumber), s.BankAccount.AccountNumber))
	require.NoError(t, env.UI.Type(browser.BySelLike(sel.BankForm.RoutingNumber), s.BankAccount.RoutingNumber))
	env.UI.Snapshot("About to complete User Onboarding")
	require.NoError(t, env.UI.Click(browser.BySelLike(sel.BankForm.Submit)))

	_, err = env.Net.Wait(env.Ctx, AliasCreateBankAccount, env.RequestTimeout)
	require.NoError(t, err, "bank account mutation")

	require.NoError(t, env.UI.WaitContains(browser.BySel(sel.Onboarding.Title), s.Messages.OnboardingFinishedTitle))
	require.NoError(t, env.UI.WaitContains(browser.BySel(sel.Onboarding.Content), s.Messages.OnboardingFinishedContent))
	env.UI.Snapshot("Finished User Onboarding")
	require.NoError(t, env.UI.Click(browser.BySel(sel.Onboarding.Next)))

	require.NoError(t, env.UI.WaitVisible(browser.BySel(sel.Nav.TransactionList)))
	env.UI.Snapshot("Transaction List is visible after User Onboarding")

	Logout(t, env)
	_, err = env.UI.WaitPath(s.Routes.SignIn)
	require.NoError(t, err)
	env.UI.Snapshot("Redirect to SignIn")
}

// fieldCheck is one form field validation step: type input, optionally clear it,
// leave the field and expect the helper text.
type fieldCheck struct {
	field   string
	helper  string
	input   string
	clear   bool
	message string
}

func (fc fieldCheck) run(t T, env Env) {
	t.Helper()
	field := browser.BySel(fc.field)
	require.NoError(t, env.UI.Type(field, fc.input))
	if fc.clear {
		require.NoError(t, env.UI.Clear(field))
	}
	require.NoError(t, env.UI.Blur(field))
	helper := browser.CSS(fc.helper)
	require.NoError(t, env.UI.WaitVisible(helper))
	require.NoError(t, env.UI.WaitContains(helper, fc.message))
}

func signinValidationErrors(t T, env Env) {
	s := env.Suite
	require.NoError(t, env.UI.Visit(s.Routes.Root))

	fieldCheck{field: s.Selectors.SignIn.Username, helper: s.Selectors.HelperText.Username, input: "User",
		clear: true, message: s.Messages.UsernameRequired}.run(t, env)
	env.UI.Snapshot("Display Username is Required Error")

	fieldCheck{field: s.Selectors.SignIn.Password, helper: s.Selectors.HelperText.Password, input: "abc",
		message: s.Messages.PasswordLength}.run(t, env)
	env.UI.Snapshot("Display Password Error")

	require.NoError(t, env.UI.WaitDisabled(browser.BySel(s.Selectors.SignIn.Submit)))
	env.UI.Snapshot("Sign In Submit Disabled")
}

func signupValidationErrors(t T, env Env) {
	s := env.Suite
	sel, helper, msg := s.Selectors.SignUp, s.Selectors.HelperText, s.Messages
	require.NoError(t, env.UI.Visit(s.Routes.SignUp))

	checks := []fieldCheck{
		{field: sel.FirstName, helper: helper.FirstName, input: "First", clear: true, message: msg.FirstNameRequired},
		{field: sel.LastName, helper: helper.LastName, input: "Last", clear: true, message: msg.LastNameRequired},
		{field: sel.Username, helper: helper.Username, input: "User", clear: true, message: msg.UsernameRequired},
		{field: sel.Password, helper: helper.Password, input: "password", clear: true, message: msg.PasswordRequired},
		{field: sel.ConfirmPassword, helper: helper.ConfirmPassword, input: "DIFFERENT PASSWORD", message: msg.PasswordMismatch},
	}
	for _, fc := range checks {
		fc.run(t, env)
	}
	env.UI.Snapshot("Display Sign Up Required Errors")

	require.NoError(t, env.UI.WaitDisabled(browser.BySel(sel.Submit)))
	env.UI.Snapshot("Sign Up Submit Disabled")
}

func invalidUser(t T, env Env) {
	f := env.Suite.Fixtures
	Login(t, env, f.UnknownUsername, f.UnknownPassword, LoginOptions{})
	expectSignInError(t, env)
	env.UI.Snapshot("Sign In, Invalid Username and Password, Username or Password is Invalid")
}

func invalidPassword(t T, env Env) {
	user := seededUser(t, env)
	Login(t, env, user.Username, env.Suite.Fixtures.WrongPassword, LoginOptions{})
	expectSignInError(t, env)
	env.UI.Snapshot("Sign In, Invalid Username, Username or Password is Invalid")
}

func expectSignInError(t T, env Env) {
	t.Helper()
	errSel := browser.BySel(env.Suite.Selectors.SignIn.Error)
	require.NoError(t, env.UI.WaitVisible(errSel))
	require.NoError(t, env.UI.WaitText(errSel, env.Suite.Messages.InvalidCredentials))
}
