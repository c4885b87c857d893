// Package config loads the suite definition: routes, selectors, messages, API endpoints
// and fixture data of the application under test.
//
// The suite file is YAML (or TOML, selected by the .toml extension). Before decoding
// into typed structs the document is checked against a JSON schema reflected from
// Suite, so typos in section or field names are reported instead of silently ignored.
// An embedded default suite describes the Cypress Real World App.
package config

import (
	_ "embed" // embedded default suite
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed suite.yml
var defaultSuite []byte

// Format is a suite file encoding.
type Format string

// supported suite formats
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Validator checks a decoded suite document (generic maps and slices) before it is
// converted to Suite.
type Validator func(doc any) error

// Suite describes the application under test.
type Suite struct {
	Routes      Routes      `yaml:"routes" json:"routes" toml:"routes" jsonschema:"required"`
	Session     Session     `yaml:"session" json:"session" toml:"session" jsonschema:"required"`
	API         API         `yaml:"api" json:"api" toml:"api" jsonschema:"required"`
	Selectors   Selectors   `yaml:"selectors" json:"selectors" toml:"selectors" jsonschema:"required"`
	Messages    Messages    `yaml:"messages" json:"messages" toml:"messages" jsonschema:"required"`
	Fixtures    Fixtures    `yaml:"fixtures" json:"fixtures" toml:"fixtures" jsonschema:"required"`
	Signup      Identity    `yaml:"signup" json:"signup" toml:"signup" jsonschema:"required,description=identity registered by the onboarding scenario"`
	ProbeUser   Identity    `yaml:"probe_user" json:"probe_user" toml:"probe_user" jsonschema:"required,description=identity used to inspect the sign-up request"`
	BankAccount BankAccount `yaml:"bank_account" json:"bank_account" toml:"bank_account" jsonschema:"required"`
	Viewport    Viewport    `yaml:"viewport,omitempty" json:"viewport,omitempty" toml:"viewport"`
}

// Routes are the pathnames of the application pages.
type Routes struct {
	Root      string   `yaml:"root" json:"root" toml:"root" jsonschema:"required,pattern=^/"`
	SignIn    string   `yaml:"signin" json:"signin" toml:"signin" jsonschema:"required,pattern=^/"`
	SignUp    string   `yaml:"signup" json:"signup" toml:"signup" jsonschema:"required,pattern=^/"`
	Protected []string `yaml:"protected" json:"protected" toml:"protected" jsonschema:"required,minItems=1,description=routes visible to authenticated users only"`
	SignedOut []string `yaml:"signed_out,omitempty" json:"signed_out,omitempty" toml:"signed_out" jsonschema:"description=pathnames accepted as landing after sign-out"`
}

// Session describes the session cookie.
type Session struct {
	Cookie string `yaml:"cookie" json:"cookie" toml:"cookie" jsonschema:"required"`
}

// Endpoint is a method and path pair of the application API.
type Endpoint struct {
	Method string `yaml:"method" json:"method" toml:"method" jsonschema:"required,enum=GET,enum=POST,enum=PUT,enum=PATCH,enum=DELETE"`
	Path   string `yaml:"path" json:"path" toml:"path" jsonschema:"required,pattern=^/"`
}

// API lists the network calls the scenarios wait on.
type API struct {
	SignUp               Endpoint `yaml:"signup" json:"signup" toml:"signup" jsonschema:"required"`
	Login                Endpoint `yaml:"login" json:"login" toml:"login" jsonschema:"required"`
	GraphQL              string   `yaml:"graphql" json:"graphql" toml:"graphql" jsonschema:"required,pattern=^/,description=graphql path on the api host"`
	BankAccountOperation string   `yaml:"bank_account_operation" json:"bank_account_operation" toml:"bank_account_operation" jsonschema:"required"`
}

// Selectors groups stable test-selector ids (data-test attribute values).
type Selectors struct {
	SignIn     SignInSelectors     `yaml:"signin" json:"signin" toml:"signin" jsonschema:"required"`
	SignUp     SignUpSelectors     `yaml:"signup" json:"signup" toml:"signup" jsonschema:"required"`
	Nav        NavSelectors        `yaml:"nav" json:"nav" toml:"nav" jsonschema:"required"`
	Onboarding OnboardingSelectors `yaml:"onboarding" json:"onboarding" toml:"onboarding" jsonschema:"required"`
	BankForm   BankFormSelectors   `yaml:"bank_form" json:"bank_form" toml:"bank_form" jsonschema:"required,description=partial ids matched with contains"`
	HelperText HelperTextSelectors `yaml:"helper_text" json:"helper_text" toml:"helper_text" jsonschema:"required,description=css selectors of field helper texts"`
}

// SignInSelectors are the sign-in form ids.
type SignInSelectors struct {
	Username   string `yaml:"username" json:"username" toml:"username" jsonschema:"required"`
	Password   string `yaml:"password" json:"password" toml:"password" jsonschema:"required"`
	RememberMe string `yaml:"remember_me" json:"remember_me" toml:"remember_me" jsonschema:"required"`
	Submit     string `yaml:"submit" json:"submit" toml:"submit" jsonschema:"required"`
	Error      string `yaml:"error" json:"error" toml:"error" jsonschema:"required"`
}

// SignUpSelectors are the sign-up form ids.
type SignUpSelectors struct {
	Link            string `yaml:"link" json:"link" toml:"link" jsonschema:"required"`
	Title           string `yaml:"title" json:"title" toml:"title" jsonschema:"required"`
	FirstName       string `yaml:"first_name" json:"first_name" toml:"first_name" jsonschema:"required"`
	LastName        string `yaml:"last_name" json:"last_name" toml:"last_name" jsonschema:"required"`
	Username        string `yaml:"username" json:"username" toml:"username" jsonschema:"required"`
	Password        string `yaml:"password" json:"password" toml:"password" jsonschema:"required"`
	ConfirmPassword string `yaml:"confirm_password" json:"confirm_password" toml:"confirm_password" jsonschema:"required"`
	Submit          string `yaml:"submit" json:"submit" toml:"submit" jsonschema:"required"`
}

// NavSelectors are ids of the authenticated layout.
type NavSelectors struct {
	Toggle             string `yaml:"toggle" json:"toggle" toml:"toggle" jsonschema:"required"`
	SignOut            string `yaml:"signout" json:"signout" toml:"signout" jsonschema:"required"`
	NotificationsCount string `yaml:"notifications_count" json:"notifications_count" toml:"notifications_count" jsonschema:"required"`
	ListSkeleton       string `yaml:"list_skeleton" json:"list_skeleton" toml:"list_skeleton" jsonschema:"required"`
	TransactionList    string `yaml:"transaction_list" json:"transaction_list" toml:"transaction_list" jsonschema:"required"`
}

// OnboardingSelectors are ids of the first-run dialog.
type OnboardingSelectors struct {
	Dialog  string `yaml:"dialog" json:"dialog" toml:"dialog" jsonschema:"required"`
	Title   string `yaml:"title" json:"title" toml:"title" jsonschema:"required"`
	Content string `yaml:"content" json:"content" toml:"content" jsonschema:"required"`
	Next    string `yaml:"next" json:"next" toml:"next" jsonschema:"required"`
}

// BankFormSelectors are partial ids of the bank account form fields.
type BankFormSelectors struct {
	BankName      string `yaml:"bank_name" json:"bank_name" toml:"bank_name" jsonschema:"required"`
	AccountNumber string `yaml:"account_number" json:"account_number" toml:"account_number" jsonschema:"required"`
	RoutingNumber string `yaml:"routing_number" json:"routing_number" toml:"routing_number" jsonschema:"required"`
	Submit        string `yaml:"submit" json:"submit" toml:"submit" jsonschema:"required"`
}

// HelperTextSelectors are css selectors of validation messages under form fields.
type HelperTextSelectors struct {
	FirstName       string `yaml:"first_name" json:"first_name" toml:"first_name" jsonschema:"required"`
	LastName        string `yaml:"last_name" json:"last_name" toml:"last_name" jsonschema:"required"`
	Username        string `yaml:"username" json:"username" toml:"username" jsonschema:"required"`
	Password        string `yaml:"password" json:"password" toml:"password" jsonschema:"required"`
	ConfirmPassword string `yaml:"confirm_password" json:"confirm_password" toml:"confirm_password" jsonschema:"required"`
}

// Messages are user-facing texts the scenarios expect.
type Messages struct {
	UsernameRequired          string `yaml:"username_required" json:"username_required" toml:"username_required" jsonschema:"required"`
	PasswordLength            string `yaml:"password_length" json:"password_length" toml:"password_length" jsonschema:"required"`
	PasswordRequired          string `yaml:"password_required" json:"password_required" toml:"password_required" jsonschema:"required"`
	PasswordMismatch          string `yaml:"password_mismatch" json:"password_mismatch" toml:"password_mismatch" jsonschema:"required"`
	FirstNameRequired         string `yaml:"first_name_required" json:"first_name_required" toml:"first_name_required" jsonschema:"required"`
	LastNameRequired          string `yaml:"last_name_required" json:"last_name_required" toml:"last_name_required" jsonschema:"required"`
	InvalidCredentials        string `yaml:"invalid_credentials" json:"invalid_credentials" toml:"invalid_credentials" jsonschema:"required"`
	SignUpTitle               string `yaml:"signup_title" json:"signup_title" toml:"signup_title" jsonschema:"required"`
	OnboardingBankTitle       string `yaml:"onboarding_bank_title" json:"onboarding_bank_title" toml:"onboarding_bank_title" jsonschema:"required"`
	OnboardingFinishedTitle   string `yaml:"onboarding_finished_title" json:"onboarding_finished_title" toml:"onboarding_finished_title" jsonschema:"required"`
	OnboardingFinishedContent string `yaml:"onboarding_finished_content" json:"onboarding_finished_content" toml:"onboarding_finished_content" jsonschema:"required"`
}

// Fixtures describes seeded data and credentials used against it.
type Fixtures struct {
	Users           string `yaml:"users" json:"users" toml:"users" jsonschema:"required,description=collection holding seeded users"`
	Password        string `yaml:"password" json:"password" toml:"password" jsonschema:"required,description=plaintext password of every seeded user"`
	WrongPassword   string `yaml:"wrong_password" json:"wrong_password" toml:"wrong_password" jsonschema:"required"`
	UnknownUsername string `yaml:"unknown_username" json:"unknown_username" toml:"unknown_username" jsonschema:"required"`
	UnknownPassword string `yaml:"unknown_password" json:"unknown_password" toml:"unknown_password" jsonschema:"required"`
}

// Identity is a full sign-up form input.
type Identity struct {
	FirstName string `yaml:"first_name" json:"first_name" toml:"first_name" jsonschema:"required"`
	LastName  string `yaml:"last_name" json:"last_name" toml:"last_name" jsonschema:"required"`
	Username  string `yaml:"username" json:"username" toml:"username" jsonschema:"required"`
	Password  string `yaml:"password" json:"password" toml:"password" jsonschema:"required,minLength=4"`
}

// BankAccount is the onboarding bank account form input.
type BankAccount struct {
	BankName      string `yaml:"bank_name" json:"bank_name" toml:"bank_name" jsonschema:"required,minLength=5"`
	AccountNumber string `yaml:"account_number" json:"account_number" toml:"account_number" jsonschema:"required,pattern=^[0-9]+$,minLength=9,maxLength=12"`
	RoutingNumber string `yaml:"routing_number" json:"routing_number" toml:"routing_number" jsonschema:"required,pattern=^[0-9]{9}$"`
}

// Viewport holds layout facts of the application.
type Viewport struct {
	MobileBreakpoint int `yaml:"mobile_breakpoint,omitempty" json:"mobile_breakpoint,omitempty" toml:"mobile_breakpoint" jsonschema:"minimum=0,description=viewport width below which the mobile navigation is used"`
}

const defaultMobileBreakpoint = 414

// Default returns the embedded suite for the Cypress Real World App.
func Default() (*Suite, error) {
	vldt, err := NewValidator()
	if err != nil {
		return nil, err
	}
	return Parse(defaultSuite, FormatYAML, vldt)
}

// Load reads and parses the suite file. The format is selected by extension,
// .toml for TOML and anything else for YAML.
// If validator is provided, the document is validated before decoding.
func Load(path string, validator Validator) (*Suite, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from CLI flag
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return Parse(data, formatOf(path), validator)
}

// Parse decodes suite data in the given format, validates it and applies defaults.
func Parse(data []byte, format Format, validator Validator) (*Suite, error) {
	if validator != nil {
		doc, err := decodeGeneric(data, format)
		if err != nil {
			return nil, err
		}
		if err := validator(doc); err != nil {
			return nil, err
		}
	}

	var s Suite
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &s); err != nil {
			return nil, fmt.Errorf("failed to parse suite: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse suite: %w", err)
		}
	}

	s.applyDefaults()
	if err := s.check(); err != nil {
		return nil, err
	}
	return &s, nil
}

// applyDefaults fills optional sections.
func (s *Suite) applyDefaults() {
	if len(s.Routes.SignedOut) == 0 {
		s.Routes.SignedOut = []string{s.Routes.SignIn, s.Routes.Root}
	}
	if s.Viewport.MobileBreakpoint == 0 {
		s.Viewport.MobileBreakpoint = defaultMobileBreakpoint
	}
	s.API.SignUp.Method = strings.ToUpper(s.API.SignUp.Method)
	s.API.Login.Method = strings.ToUpper(s.API.Login.Method)
}

// check verifies constraints not expressed in the schema. Applies to unvalidated input too.
func (s *Suite) check() error {
	var errs []error
	for name, p := range map[string]string{"root": s.Routes.Root, "signin": s.Routes.SignIn, "signup": s.Routes.SignUp} {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, fmt.Errorf("route %s must start with /, got %q", name, p))
		}
	}
	if len(s.Routes.Protected) == 0 {
		errs = append(errs, errors.New("at least one protected route is required"))
	}
	for _, p := range s.Routes.Protected {
		if p == s.Routes.SignIn {
			errs = append(errs, fmt.Errorf("protected route %q can't be the sign-in route", p))
		}
	}
	if s.Session.Cookie == "" {
		errs = append(errs, errors.New("session cookie name is required"))
	}
	if s.API.BankAccountOperation == "" {
		errs = append(errs, errors.New("bank account operation name is required"))
	}
	if s.Fixtures.Users == "" {
		errs = append(errs, errors.New("fixtures users collection is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid suite: %w", err)
	}
	return nil
}

// formatOf picks the suite format by file extension.
func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// decodeGeneric decodes data into plain maps and slices for schema validation.
func decodeGeneric(data []byte, format Format) (any, error) {
	var doc any
	switch format {
	case FormatTOML:
		m := map[string]any{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("failed to parse suite: %w", err)
		}
		doc = m
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse suite: %w", err)
		}
	}
	if doc == nil {
		return nil, errors.New("suite file is empty")
	}
	return doc, nil
}
