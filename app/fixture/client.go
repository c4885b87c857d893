// Package fixture resets and queries the seeded database of the application under test
// through its test-data API:
//
//	POST {api}/testData/seed      reset the database to the seed state
//	GET  {api}/testData/{entity}  list records, {"results": [...]}
//
// Basic usage:
//
//	fx, err := fixture.New("http://localhost:3001")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = fx.Seed(ctx)
//	user, err := fx.FindUser(ctx, "users", nil)
package fixture

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-pkgz/lcw/v2"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
)

const testDataPath = "testData"

// Client is a test-data API client.
type Client struct {
	baseURL   string
	requester *requester.Requester
	cache     lcw.LoadingCache[[]json.RawMessage]
}

// settings collects options before the client is built.
type settings struct {
	http     http.Client
	retries  int
	backoff  time.Duration
	cacheTTL time.Duration
}

// Option tunes the client.
type Option func(*settings)

// WithTimeout sets the HTTP request timeout, 30s by default.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) { s.http.Timeout = timeout }
}

// WithRetry sets how many times a failed request is repeated and the delay between tries.
// Zero count disables retries.
func WithRetry(count int, delay time.Duration) Option {
	return func(s *settings) { s.retries, s.backoff = count, delay }
}

// WithCacheTTL sets how long entity lists are cached between seeds. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *settings) { s.cacheTTL = ttl }
}

// WithHTTPClient replaces the underlying http client, including its timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) { s.http = *client }
}

// User is a seeded user record. Password hashes are not exposed.
type User struct {
	ID        string `json:"id"`
	UUID      string `json:"uuid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// New creates a test-data client for the application API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	st := settings{http: http.Client{Timeout: 30 * time.Second}, retries: 3, backoff: 100 * time.Millisecond,
		cacheTTL: 5 * time.Minute}
	for _, opt := range opts {
		opt(&st)
	}

	rq := requester.New(st.http, middleware.JSON)
	if st.retries > 0 {
		rq = requester.New(st.http, middleware.Retry(st.retries, st.backoff), middleware.JSON)
	}

	c := &Client{baseURL: strings.TrimSuffix(baseURL, "/"), requester: rq,
		cache: lcw.NewNopCache[[]json.RawMessage]()}
	if st.cacheTTL <= 0 {
		return c, nil
	}
	o := lcw.NewOpts[[]json.RawMessage]()
	cache, err := lcw.NewExpirableCache(o.TTL(st.cacheTTL), o.MaxKeys(100))
	if err != nil {
		return nil, fmt.Errorf("failed to make fixture cache: %w", err)
	}
	c.cache = cache
	return c, nil
}

// Seed resets the application database to its seed state and drops cached lists.
func (c *Client) Seed(ctx context.Context) error {
	resp, err := c.call(ctx, http.MethodPost, "seed")
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	_ = resp.Body.Close()
	c.cache.Purge()
	log.Printf("[DEBUG] database seeded")
	return nil
}

// List returns all records of the entity.
func (c *Client) List(ctx context.Context, entity string) ([]json.RawMessage, error) {
	if entity == "" {
		return nil, errors.New("entity is required")
	}
	return c.cache.Get(entity, func() ([]json.RawMessage, error) {
		return c.fetch(ctx, entity)
	})
}

// Find decodes into out the first record of the entity whose fields are equal to every
// key/value in query. Nil or empty query matches the first record.
func (c *Client) Find(ctx context.Context, entity string, query map[string]any, out any) error {
	records, err := c.List(ctx, entity)
	if err != nil {
		return err
	}

	for _, rec := range records {
		ok, err := matches(rec, query)
		if err != nil {
			return fmt.Errorf("failed to match %s record: %w", entity, err)
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(rec, out); err != nil {
			return fmt.Errorf("failed to decode %s record: %w", entity, err)
		}
		return nil
	}
	return fmt.Errorf("%s %v: %w", entity, query, ErrNotFound)
}

// FindUser returns the first user of the collection matching query.
func (c *Client) FindUser(ctx context.Context, collection string, query map[string]any) (User, error) {
	var user User
	if err := c.Find(ctx, collection, query, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Close releases the cache.
func (c *Client) Close() error {
	if err := c.cache.Close(); err != nil {
		return fmt.Errorf("failed to close fixture cache: %w", err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, entity string) ([]json.RawMessage, error) {
	resp, err := c.call(ctx, http.MethodGet, entity)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", entity, err)
	}
	defer resp.Body.Close()

	var body struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	log.Printf("[DEBUG] fetched %d %s records", len(body.Results), entity)
	return body.Results, nil
}

// call sends a body-less request to the test-data endpoint. Statuses other than 2xx are
// returned as ErrNotFound or *ResponseError with the body already closed.
func (c *Client) call(ctx context.Context, method, endpoint string) (*http.Response, error) {
	u, err := url.JoinPath(c.baseURL, testDataPath, endpoint)
	if err != nil {
		return nil, fmt.Errorf("bad endpoint %q: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.requester.Do(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, ErrNotFound
	default:
		_ = resp.Body.Close()
		return nil, &ResponseError{StatusCode: resp.StatusCode}
	}
}

// matches reports whether the json record has every query field with an equal value.
func matches(rec json.RawMessage, query map[string]any) (bool, error) {
	if len(query) == 0 {
		return true, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(rec, &fields); err != nil {
		return false, err
	}

	for k, want := range query {
		got, ok := fields[k]
		if !ok {
			return false, nil
		}
		// normalize want through json so numbers and nested values compare as decoded
		raw, err := json.Marshal(want)
		if err != nil {
			return false, err
		}
		var norm any
		if err := json.Unmarshal(bytes.TrimSpace(raw), &norm); err != nil {
			return false, err
		}
		if !reflect.DeepEqual(got, norm) {
			return false, nil
		}
	}
	return true, nil
}
