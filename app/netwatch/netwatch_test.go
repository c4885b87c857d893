package netwatch

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequest struct {
	method, url, kind, body string
	bodyErr                 error
	bodyReads               int
}

func (r *fakeRequest) Method() string       { return r.method }
func (r *fakeRequest) URL() string          { return r.url }
func (r *fakeRequest) ResourceType() string { return r.kind }
func (r *fakeRequest) PostData() (string, error) {
	r.bodyReads++
	return r.body, r.bodyErr
}

func TestWatcher_Intercept(t *testing.T) {
	w := New(time.Second)

	err := w.Intercept(Rule{Method: "POST", URL: "/users"})
	require.Error(t, err)

	require.NoError(t, w.Intercept(Rule{Alias: "signup", Method: "post", URL: "/users"}))
	assert.Equal(t, "POST", w.rules[0].Method, "method normalized")

	w.Observe(&fakeRequest{method: "POST", url: "http://localhost:3001/users", kind: "xhr"}, 201, nil)
	assert.Equal(t, 1, w.pending("signup"))

	// re-registering keeps queued records and replaces the rule
	require.NoError(t, w.Intercept(Rule{Alias: "signup", Method: "PUT", URL: "/users"}))
	require.Len(t, w.rules, 1)
	assert.Equal(t, "PUT", w.rules[0].Method)
	assert.Equal(t, 1, w.pending("signup"))
}

func TestWatcher_ObserveAndWait(t *testing.T) {
	w := New(time.Second)
	require.NoError(t, w.Intercept(Rule{Alias: "signup", Method: "POST", URL: "/users"}))
	require.NoError(t, w.Intercept(Rule{Alias: "login", Method: "POST", URL: "/login"}))

	w.Observe(&fakeRequest{method: "GET", url: "http://localhost:3001/users"}, 200, nil)
	w.Observe(&fakeRequest{method: "POST", url: "http://localhost:3001/users", kind: "xhr",
		body: `{"firstName":"Bob","username":"PainterJoy90"}`}, 201, nil)
	w.Observe(&fakeRequest{method: "POST", url: "http://localhost:3001/users?x=1", body: `{"n":2}`}, 201, nil)

	assert.Equal(t, 2, w.pending("signup"))
	assert.Equal(t, 0, w.pending("login"))

	rec, err := w.Wait(context.Background(), "signup", 0)
	require.NoError(t, err)
	assert.Equal(t, "signup", rec.Alias)
	assert.Equal(t, "POST", rec.Method)
	assert.Equal(t, "http://localhost:3001/users", rec.URL)
	assert.Equal(t, "xhr", rec.ResourceType)
	assert.Equal(t, 201, rec.Status)
	assert.False(t, rec.At.IsZero())

	var body struct {
		FirstName string `json:"firstName"`
		Username  string `json:"username"`
	}
	require.NoError(t, rec.JSON(&body))
	assert.Equal(t, "Bob", body.FirstName)
	assert.Equal(t, "PainterJoy90", body.Username)

	rec, err = w.Wait(context.Background(), "signup", 0)
	require.NoError(t, err, "second record consumed in order")
	assert.JSONEq(t, `{"n":2}`, rec.Body)
	assert.Equal(t, 0, w.pending("signup"))
}

func TestWatcher_WaitBlocksUntilRecord(t *testing.T) {
	w := New(time.Second)
	require.NoError(t, w.Intercept(Rule{Alias: "login", Method: "POST", URL: "/login"}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(50 * time.Millisecond)
		w.Observe(&fakeRequest{method: "POST", url: "http://localhost:3001/login"}, 200, nil)
	}()

	rec, err := w.Wait(context.Background(), "login", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Status)
	wg.Wait()
}

func TestWatcher_WaitErrors(t *testing.T) {
	t.Run("unknown alias", func(t *testing.T) {
		w := New(time.Second)
		_, err := w.Wait(context.Background(), "nope", 0)
		require.ErrorIs(t, err, ErrUnknownAlias)
		assert.Contains(t, err.Error(), "@nope")
	})

	t.Run("timeout", func(t *testing.T) {
		w := New(time.Second)
		require.NoError(t, w.Intercept(Rule{Alias: "login", URL: "/login"}))
		st := time.Now()
		_, err := w.Wait(context.Background(), "login", 50*time.Millisecond)
		require.ErrorIs(t, err, ErrTimeout)
		assert.Less(t, time.Since(st), time.Second)
	})

	t.Run("default timeout", func(t *testing.T) {
		w := New(50 * time.Millisecond)
		require.NoError(t, w.Intercept(Rule{Alias: "login", URL: "/login"}))
		_, err := w.Wait(context.Background(), "login", 0)
		require.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("context canceled", func(t *testing.T) {
		w := New(time.Minute)
		require.NoError(t, w.Intercept(Rule{Alias: "login", URL: "/login"}))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := w.Wait(ctx, "login", 0)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("failed request", func(t *testing.T) {
		w := New(time.Second)
		require.NoError(t, w.Intercept(Rule{Alias: "login", URL: "/login"}))
		w.Observe(&fakeRequest{method: "POST", url: "http://localhost:3001/login"}, 0, errors.New("net::ERR_CONNECTION_REFUSED"))
		rec, err := w.Wait(context.Background(), "login", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ERR_CONNECTION_REFUSED")
		assert.Equal(t, "login", rec.Alias)
	})
}

func TestWatcher_GraphQLOperation(t *testing.T) {
	w := New(time.Second)
	require.NoError(t, w.Intercept(Rule{Alias: "gqlCreateBankAccountMutation", Method: "POST",
		URL: "http://localhost:3001/graphql", Operation: "CreateBankAccount"}))
	require.NoError(t, w.Intercept(Rule{Alias: "gqlAny", Method: "POST", URL: "/graphql"}))

	list := &fakeRequest{method: "POST", url: "http://localhost:3001/graphql",
		body: `{"operationName":"ListBankAccount","query":"query ListBankAccount { listBankAccount { id } }"}`}
	w.Observe(list, 200, nil)
	assert.Equal(t, 0, w.pending("gqlCreateBankAccountMutation"))
	assert.Equal(t, 1, w.pending("gqlAny"))
	assert.Equal(t, 1, list.bodyReads, "body read once for all rules")

	otherHost := &fakeRequest{method: "POST", url: "http://example.com/graphql",
		body: `{"operationName":"CreateBankAccount"}`}
	w.Observe(otherHost, 200, nil)
	assert.Equal(t, 0, w.pending("gqlCreateBankAccountMutation"), "host must match absolute rule")

	batch := &fakeRequest{method: "POST", url: "http://localhost:3001/graphql",
		body: `[{"operationName":"ListBankAccount"},{"operationName":"CreateBankAccount"}]`}
	w.Observe(batch, 200, nil)
	require.Equal(t, 1, w.pending("gqlCreateBankAccountMutation"))

	rec, err := w.Wait(context.Background(), "gqlCreateBankAccountMutation", 0)
	require.NoError(t, err)
	assert.Equal(t, "CreateBankAccount", rec.Operation)

	rec, err = w.Wait(context.Background(), "gqlAny", 0)
	require.NoError(t, err)
	assert.Equal(t, "ListBankAccount", rec.Operation, "single operation name recorded without rule operation")
}

func TestWatcher_BodyReadError(t *testing.T) {
	w := New(time.Second)
	require.NoError(t, w.Intercept(Rule{Alias: "gql", URL: "/graphql", Operation: "CreateBankAccount"}))
	require.NoError(t, w.Intercept(Rule{Alias: "any", URL: "/graphql"}))
	w.Observe(&fakeRequest{method: "POST", url: "http://localhost:3001/graphql", bodyErr: errors.New("no body")}, 200, nil)
	assert.Equal(t, 0, w.pending("gql"))
	assert.Equal(t, 1, w.pending("any"))
}

func TestWatcher_Reset(t *testing.T) {
	w := New(time.Second)
	require.NoError(t, w.Intercept(Rule{Alias: "login", URL: "/login"}))
	w.Observe(&fakeRequest{method: "POST", url: "http://localhost:3001/login"}, 200, nil)
	require.Equal(t, 1, w.pending("login"))

	w.Reset()
	assert.Equal(t, 0, w.pending("login"))
	_, err := w.Wait(context.Background(), "login", 10*time.Millisecond)
	require.ErrorIs(t, err, ErrUnknownAlias)
}

func TestRule_matchRequest(t *testing.T) {
	tbl := []struct {
		name   string
		rule   Rule
		method string
		url    string
		want   bool
	}{
		{"path match", Rule{Method: "POST", URL: "/users"}, "POST", "http://localhost:3001/users", true},
		{"method mismatch", Rule{Method: "POST", URL: "/users"}, "GET", "http://localhost:3001/users", false},
		{"any method", Rule{URL: "/users"}, "DELETE", "http://localhost:3001/users", true},
		{"method case", Rule{Method: "post", URL: "/users"}, "POST", "http://localhost:3001/users", true},
		{"trailing slash", Rule{URL: "/users/"}, "GET", "http://localhost:3001/users", true},
		{"query ignored", Rule{URL: "/users"}, "GET", "http://localhost:3001/users?limit=1", true},
		{"sub path not matched", Rule{URL: "/users"}, "GET", "http://localhost:3001/users/1", false},
		{"glob", Rule{URL: "/users/*"}, "GET", "http://localhost:3001/users/1", true},
		{"glob one segment", Rule{URL: "/users/*"}, "GET", "http://localhost:3001/users/1/edit", false},
		{"absolute", Rule{URL: "http://localhost:3001/graphql"}, "POST", "http://localhost:3001/graphql", true},
		{"absolute other host", Rule{URL: "http://localhost:3001/graphql"}, "POST", "http://localhost:3000/graphql", false},
		{"pattern", Rule{Pattern: regexp.MustCompile(`/bankAccounts/\w+$`)}, "GET", "http://localhost:3001/bankAccounts/abc", true},
		{"pattern mismatch", Rule{Pattern: regexp.MustCompile(`/bankAccounts/\w+$`)}, "GET", "http://localhost:3001/bankAccounts", false},
		{"any url", Rule{Method: "GET"}, "GET", "http://localhost:3001/anything", true},
		{"bad url", Rule{URL: "/users"}, "GET", "http://[::1", false},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.matchRequest(tt.method, tt.url))
		})
	}
}

func TestOperationNames(t *testing.T) {
	tbl := []struct {
		body string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{`{"operationName":"CreateBankAccount"}`, []string{"CreateBankAccount"}},
		{`{"query":"{ me }"}`, nil},
		{`[{"operationName":"A"},{"query":"x"},{"operationName":"B"}]`, []string{"A", "B"}},
		{`{"operationName":`, nil},
		{`username=bob`, nil},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, operationNames(tt.body), tt.body)
	}
}

func TestRecord_JSON(t *testing.T) {
	var v map[string]any
	err := Record{Alias: "x"}.JSON(&v)
	require.Error(t, err)

	err = Record{Alias: "x", Body: "not json"}.JSON(&v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode x body")
}
