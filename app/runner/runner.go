// Package runner executes scenarios one by one, each in a fresh browser session,
// and reports their outcomes. Runs are exclusive: a runner executes one run at a time.
package runner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/authcheck/app/browser"
	"github.com/umputun/authcheck/app/config"
	"github.com/umputun/authcheck/app/enum"
	"github.com/umputun/authcheck/app/netwatch"
	"github.com/umputun/authcheck/app/scenario"
	"github.com/umputun/authcheck/app/store"
)

//go:generate moq -out mocks/ledger.go -pkg mocks -skip-ensure -fmt goimports . Ledger
//go:generate moq -out mocks/sessions.go -pkg mocks -skip-ensure -fmt goimports . Sessions
//go:generate moq -out mocks/session.go -pkg mocks -skip-ensure -fmt goimports . Session

// ErrBusy is returned when a run is requested while another one is in progress.
var ErrBusy = errors.New("run already in progress")

// closeGrace bounds the wait for a timed out scenario goroutine to notice its context.
const closeGrace = 5 * time.Second

// Session is a browser session the scenarios drive.
type Session interface {
	scenario.UI
	Net() *netwatch.Watcher
	Close() error
}

// Sessions opens browser sessions.
type Sessions interface {
	NewSession(ctx context.Context, name string) (Session, error)
}

// Ledger records runs and results.
type Ledger interface {
	CreateRun(ctx context.Context, run store.Run) error
	AddResult(ctx context.Context, res store.ScenarioResult) error
	FinishRun(ctx context.Context, run store.Run) error
}

// SuiteSource provides the current suite.
type SuiteSource interface {
	Current() config.Suite
}

// Deps are the collaborators of the runner. Ledger is optional.
type Deps struct {
	Sessions Sessions
	Fixtures scenario.Fixtures
	Suite    SuiteSource
	Ledger   Ledger
}

// Config tunes a runner.
type Config struct {
	Scenarios       []scenario.Scenario // empty for the full set
	Match           *regexp.Regexp      // runs only scenarios with matching names, nil for all
	FailFast        bool                // skip remaining scenarios after the first failure
	ScenarioTimeout time.Duration
	RequestTimeout  time.Duration
	BaseURL         string
	APIURL          string
}

// Runner executes the scenario set.
type Runner struct {
	deps Deps
	cfg  Config
	busy sync.Mutex
}

// New makes a runner.
func New(deps Deps, cfg Config) *Runner {
	if len(cfg.Scenarios) == 0 {
		cfg.Scenarios = scenario.Set()
	}
	if cfg.ScenarioTimeout <= 0 {
		cfg.ScenarioTimeout = 2 * time.Minute
	}
	return &Runner{deps: deps, cfg: cfg}
}

// Scenarios returns the scenarios a run executes, in order.
func (r *Runner) Scenarios() []scenario.Scenario {
	if r.cfg.Match == nil {
		return r.cfg.Scenarios
	}
	var res []scenario.Scenario
	for _, sc := range r.cfg.Scenarios {
		if r.cfg.Match.MatchString(sc.Name) {
			res = append(res, sc)
		}
	}
	return res
}

// Busy reports whether a run is in progress.
func (r *Runner) Busy() bool {
	if r.busy.TryLock() {
		r.busy.Unlock()
		return false
	}
	return true
}

// Run executes the scenarios and waits for the report. Returns ErrBusy if a run is
// already in progress.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if !r.busy.TryLock() {
		return Report{}, ErrBusy
	}
	defer r.busy.Unlock()
	return r.execute(ctx, uuid.NewString()), nil
}

// Start begins a run in background and returns its id. Returns ErrBusy if a run is
// already in progress.
func (r *Runner) Start(ctx context.Context) (string, error) {
	if !r.busy.TryLock() {
		return "", ErrBusy
	}
	id := uuid.NewString()
	go func() {
		defer r.busy.Unlock()
		rep := r.execute(ctx, id)
		passed, failed, skipped := rep.Counts()
		log.Printf("[INFO] run %s done in %v: %d passed, %d failed, %d skipped",
			id, rep.Duration.Round(time.Millisecond), passed, failed, skipped)
	}()
	return id, nil
}

func (r *Runner) execute(ctx context.Context, id string) Report {
	suite := r.deps.Suite.Current()
	scenarios := r.Scenarios()
	rep := Report{RunID: id, StartedAt: time.Now()}

	if r.deps.Ledger != nil {
		err := r.deps.Ledger.CreateRun(ctx, store.Run{ID: id, StartedAt: rep.StartedAt, BaseURL: r.cfg.BaseURL, Total: len(scenarios)})
		if err != nil {
			log.Printf("[WARN] can't record run %s: %v", id, err)
		}
	}
	log.Printf("[INFO] run %s: %d scenarios against %s", id, len(scenarios), r.cfg.BaseURL)

	stop := ""
	for _, sc := range scenarios {
		var res Result
		switch {
		case stop != "":
			res = Result{Name: sc.Name, Title: sc.Title, Outcome: enum.OutcomeSkipped, StartedAt: time.Now(), Messages: []string{stop}}
		default:
			res = r.runScenario(ctx, suite, sc)
		}
		log.Printf("[INFO] %s %s (%v)", res.Outcome.Label(), res.Name, res.Duration.Round(time.Millisecond))
		rep.Results = append(rep.Results, res)
		r.record(ctx, id, res)

		if stop == "" && ctx.Err() != nil {
			stop = "run canceled"
		}
		if stop == "" && r.cfg.FailFast && res.Outcome == enum.OutcomeFailed {
			stop = "skipped after failure of " + sc.Name
		}
	}
	rep.Duration = time.Since(rep.StartedAt)

	if r.deps.Ledger != nil {
		passed, failed, skipped := rep.Counts()
		status := enum.RunStatusFinished
		if ctx.Err() != nil {
			status = enum.RunStatusCanceled
		}
		finished := rep.StartedAt.Add(rep.Duration)
		// a canceled run still has to be closed in the ledger
		lctx := context.WithoutCancel(ctx)
		if err := r.deps.Ledger.FinishRun(lctx, store.Run{ID: id, FinishedAt: &finished, Status: status,
			Total: len(rep.Results), Passed: passed, Failed: failed, Skipped: skipped}); err != nil {
			log.Printf("[WARN] can't finish run %s: %v", id, err)
		}
	}
	return rep
}

// runScenario executes one scenario in a fresh session under a recorder.
func (r *Runner) runScenario(ctx context.Context, suite config.Suite, sc scenario.Scenario) Result {
	res := Result{Name: sc.Name, Title: sc.Title, StartedAt: time.Now()}
	rec := newRecorder(sc.Name)

	sctx, cancel := context.WithTimeout(ctx, r.cfg.ScenarioTimeout)
	defer cancel()

	sess, err := r.deps.Sessions.NewSession(sctx, sc.Name)
	if err != nil {
		res.Outcome = enum.OutcomeFailed
		res.Messages = []string{fmt.Sprintf("can't open browser session: %v", err)}
		res.Duration = time.Since(res.StartedAt)
		return res
	}

	env := scenario.Env{
		Ctx:            sctx,
		UI:             sess,
		Net:            sess.Net(),
		Fixtures:       r.deps.Fixtures,
		Suite:          suite,
		APIURL:         r.cfg.APIURL,
		RequestTimeout: r.cfg.RequestTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				rec.Errorf("panic: %v", p)
			}
		}()
		scenario.Execute(rec, env, sc)
	}()

	select {
	case <-done:
	case <-sctx.Done():
		if ctx.Err() != nil {
			rec.Errorf("canceled: %v", ctx.Err())
		} else {
			rec.Errorf("timed out after %v", r.cfg.ScenarioTimeout)
		}
	}

	if err := sess.Close(); err != nil {
		log.Printf("[WARN] %v", err)
	}
	select {
	case <-done:
	case <-time.After(closeGrace):
		log.Printf("[WARN] scenario %s still running after its session was closed", sc.Name)
	}

	res.Outcome = enum.OutcomePassed
	if rec.Failed() {
		res.Outcome = enum.OutcomeFailed
	}
	res.Messages = rec.Messages()
	res.Logs = rec.Logs()
	res.Duration = time.Since(res.StartedAt)
	return res
}

func (r *Runner) record(ctx context.Context, runID string, res Result) {
	if r.deps.Ledger == nil {
		return
	}
	err := r.deps.Ledger.AddResult(context.WithoutCancel(ctx), store.ScenarioResult{
		RunID:     runID,
		Name:      res.Name,
		Outcome:   res.Outcome,
		Messages:  res.Messages,
		StartedAt: res.StartedAt,
		Duration:  res.Duration,
	})
	if err != nil {
		log.Printf("[WARN] can't record result of %s: %v", res.Name, err)
	}
}

// LauncherSessions opens sessions with a browser launcher.
type LauncherSessions struct {
	Launcher *browser.Launcher
}

// NewSession opens a new browser session.
func (l LauncherSessions) NewSession(ctx context.Context, name string) (Session, error) {
	s, err := l.Launcher.NewSession(ctx, name)
	if err != nil {
		return nil, err
	}
	return s, nil
}
