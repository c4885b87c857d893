// Package netwatch records network calls made by a browser page and lets scenarios
// wait for specific ones by alias.
//
// A Rule matches requests by method and URL, and optionally by GraphQL operation name,
// which separates distinct operations sent to one endpoint. Every matching finished
// request is queued under the rule alias; Wait consumes the queue in arrival order.
package netwatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
)

// sentinel errors for Wait
var (
	ErrTimeout      = errors.New("timed out waiting for request")
	ErrUnknownAlias = errors.New("alias not registered")
)

// Request is the part of a browser request the watcher inspects.
type Request interface {
	Method() string
	URL() string
	ResourceType() string
	PostData() (string, error)
}

// Rule describes requests to record under an alias.
type Rule struct {
	Alias     string         // label used by Wait, required
	Method    string         // empty matches any method
	URL       string         // path, absolute URL or glob with "*", empty matches any URL
	Pattern   *regexp.Regexp // alternative to URL, matched against the full URL
	Operation string         // graphql operationName the body must carry, empty to skip the check
}

// Record is a captured request.
type Record struct {
	Alias        string    `json:"alias"`
	Method       string    `json:"method"`
	URL          string    `json:"url"`
	ResourceType string    `json:"resource_type"`
	Body         string    `json:"body,omitempty"`
	Operation    string    `json:"operation,omitempty"`
	Status       int       `json:"status"`
	Err          error     `json:"-"`
	At           time.Time `json:"at"`
}

// JSON decodes the captured request body into out.
func (r Record) JSON(out any) error {
	if r.Body == "" {
		return errors.New("request has no body")
	}
	if err := json.Unmarshal([]byte(r.Body), out); err != nil {
		return fmt.Errorf("failed to decode %s body: %w", r.Alias, err)
	}
	return nil
}

// Watcher matches observed requests against rules and queues records per alias.
type Watcher struct {
	mu      sync.Mutex
	rules   []Rule
	queues  map[string][]Record
	notify  chan struct{} // closed and replaced on every new record
	timeout time.Duration
}

// New makes a watcher; timeout is the default for Wait calls with zero timeout.
func New(timeout time.Duration) *Watcher {
	return &Watcher{queues: map[string][]Record{}, notify: make(chan struct{}), timeout: timeout}
}

// Intercept registers a rule. Registering an alias again replaces its rule and keeps
// already queued records.
func (w *Watcher) Intercept(rule Rule) error {
	if rule.Alias == "" {
		return errors.New("rule alias is required")
	}
	rule.Method = strings.ToUpper(rule.Method)

	w.mu.Lock()
	defer w.mu.Unlock()
	for i, r := range w.rules {
		if r.Alias == rule.Alias {
			w.rules[i] = rule
			return nil
		}
	}
	w.rules = append(w.rules, rule)
	if _, ok := w.queues[rule.Alias]; !ok {
		w.queues[rule.Alias] = nil
	}
	return nil
}

// Observe checks a finished (or failed) request against all rules and queues a record
// for every matching alias. The body is read once and only if some rule needs it.
func (w *Watcher) Observe(req Request, status int, failure error) {
	w.mu.Lock()
	rules := make([]Rule, len(w.rules))
	copy(rules, w.rules)
	w.mu.Unlock()

	var (
		body     string
		bodyRead bool
		ops      []string
		matched  []Record
	)
	readBody := func() {
		if bodyRead {
			return
		}
		bodyRead = true
		data, err := req.PostData()
		if err != nil {
			log.Printf("[DEBUG] can't read body of %s %s: %v", req.Method(), req.URL(), err)
			return
		}
		body = data
		ops = operationNames(body)
	}

	for _, r := range rules {
		if !r.matchRequest(req.Method(), req.URL()) {
			continue
		}
		readBody()
		op := ""
		if r.Operation != "" {
			if !slices.Contains(ops, r.Operation) {
				continue
			}
			op = r.Operation
		} else if len(ops) == 1 {
			op = ops[0]
		}
		matched = append(matched, Record{
			Alias:        r.Alias,
			Method:       req.Method(),
			URL:          req.URL(),
			ResourceType: req.ResourceType(),
			Body:         body,
			Operation:    op,
			Status:       status,
			Err:          failure,
			At:           time.Now(),
		})
	}

	if len(matched) == 0 {
		return
	}

	w.mu.Lock()
	for _, rec := range matched {
		w.queues[rec.Alias] = append(w.queues[rec.Alias], rec)
		log.Printf("[DEBUG] intercepted @%s %s %s -> %d", rec.Alias, rec.Method, rec.URL, rec.Status)
	}
	close(w.notify)
	w.notify = make(chan struct{})
	w.mu.Unlock()
}

// Wait returns the oldest not yet consumed record of the alias, blocking until one
// arrives, the timeout elapses or ctx is done. Zero timeout uses the watcher default.
// A record of a failed request is returned together with its error.
func (w *Watcher) Wait(ctx context.Context, alias string, timeout time.Duration) (Record, error) {
	if timeout <= 0 {
		timeout = w.timeout
	}
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		w.mu.Lock()
		queue, known := w.queues[alias]
		if !known {
			w.mu.Unlock()
			return Record{}, fmt.Errorf("@%s: %w", alias, ErrUnknownAlias)
		}
		if len(queue) > 0 {
			rec := queue[0]
			w.queues[alias] = queue[1:]
			w.mu.Unlock()
			if rec.Err != nil {
				return rec, fmt.Errorf("@%s %s %s failed: %w", alias, rec.Method, rec.URL, rec.Err)
			}
			return rec, nil
		}
		notify := w.notify
		w.mu.Unlock()

		select {
		case <-notify:
		case <-deadline:
			return Record{}, fmt.Errorf("@%s after %v: %w", alias, timeout, ErrTimeout)
		case <-ctx.Done():
			return Record{}, fmt.Errorf("@%s: %w", alias, ctx.Err())
		}
	}
}

// pending returns the number of queued, not yet consumed records of the alias.
func (w *Watcher) pending(alias string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queues[alias])
}

// Reset drops all rules and queued records.
func (w *Watcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rules = nil
	w.queues = map[string][]Record{}
}

// matchRequest checks method and URL of the rule against the request.
func (r Rule) matchRequest(method, rawURL string) bool {
	if r.Method != "" && !strings.EqualFold(r.Method, method) {
		return false
	}
	if r.Pattern != nil {
		return r.Pattern.MatchString(rawURL)
	}
	if r.URL == "" {
		return true
	}

	reqURL, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	want := r.URL
	if strings.Contains(want, "://") {
		ruleURL, err := url.Parse(want)
		if err != nil {
			return false
		}
		if !strings.EqualFold(ruleURL.Host, reqURL.Host) {
			return false
		}
		want = ruleURL.Path
	}

	if strings.Contains(want, "*") {
		ok, err := path.Match(want, reqURL.Path)
		return err == nil && ok
	}
	return strings.TrimSuffix(want, "/") == strings.TrimSuffix(reqURL.Path, "/")
}

// operationNames extracts graphql operation names from a request body,
// a single operation object or a batch array.
func operationNames(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	type op struct {
		OperationName string `json:"operationName"`
	}
	var res []string
	switch body[0] {
	case '{':
		var o op
		if json.Unmarshal([]byte(body), &o) == nil && o.OperationName != "" {
			res = append(res, o.OperationName)
		}
	case '[':
		var batch []op
		if json.Unmarshal([]byte(body), &batch) == nil {
			for _, o := range batch {
				if o.OperationName != "" {
					res = append(res, o.OperationName)
				}
			}
		}
	}
	return res
}
