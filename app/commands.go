package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/mattn/go-shellwords"

	"github.com/umputun/authcheck/app/browser"
	"github.com/umputun/authcheck/app/config"
	"github.com/umputun/authcheck/app/fixture"
	"github.com/umputun/authcheck/app/runner"
	"github.com/umputun/authcheck/app/server"
	"github.com/umputun/authcheck/app/store"
)

// environment holds the collaborators shared by run and server commands.
type environment struct {
	suite    *config.Holder
	fixtures *fixture.Client
	launcher *browser.Launcher
	ledger   *store.Store // nil when the ledger is disabled
}

func (e *environment) close() {
	if e.launcher != nil {
		if err := e.launcher.Close(); err != nil {
			log.Printf("[WARN] failed to close browser: %v", err)
		}
	}
	if e.fixtures != nil {
		_ = e.fixtures.Close()
	}
	if e.ledger != nil {
		if err := e.ledger.Close(); err != nil {
			log.Printf("[WARN] failed to close ledger: %v", err)
		}
	}
}

// runScenarios runs the scenario set once and prints the report.
func runScenarios(ctx context.Context, opts options) error {
	stopApp, err := startApp(ctx, opts.App.Cmd)
	if err != nil {
		return err
	}
	defer stopApp()

	env, err := newEnvironment(ctx, opts)
	if err != nil {
		return err
	}
	defer env.close()

	rn, err := newRunner(env, opts)
	if err != nil {
		return err
	}
	report, err := rn.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	if err := report.Print(os.Stdout); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}
	if report.Failed() {
		return errFailed
	}
	return nil
}

// runServer serves the runs API until ctx is canceled. The suite file is reloaded on change.
func runServer(ctx context.Context, opts options) error {
	if opts.DB == "" {
		return errors.New("server requires a run ledger, set --db")
	}
	stopApp, err := startApp(ctx, opts.App.Cmd)
	if err != nil {
		return err
	}
	defer stopApp()

	env, err := newEnvironment(ctx, opts)
	if err != nil {
		return err
	}
	defer env.close()

	if env.suite.Path() != "" {
		env.suite.OnReload(maskSecrets(opts.Dbg, suiteSecrets(env.suite.Current())))
		if err := env.suite.Watch(ctx); err != nil {
			return fmt.Errorf("failed to watch suite: %w", err)
		}
	}

	rn, err := newRunner(env, opts)
	if err != nil {
		return err
	}
	srv := server.New(server.Deps{Runs: env.ledger, Executor: rn}, server.Config{
		Address:         opts.Server.Listen,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Version:         revision,
		RequestsPerSec:  opts.Server.RPS,
		StatsRuns:       opts.Server.StatsRuns,
		Retention:       opts.Server.Retention,
	})
	return srv.Run(ctx)
}

// newEnvironment loads the suite, waits for the application and opens the browser and the ledger.
func newEnvironment(ctx context.Context, opts options) (_ *environment, err error) {
	env := &environment{}
	defer func() {
		if err != nil {
			env.close()
		}
	}()

	if env.suite, err = loadSuite(opts.Suite); err != nil {
		return nil, err
	}
	suite := env.suite.Current()
	setupLog(opts.Dbg, suiteSecrets(suite)...) // passwords are known only after the suite is loaded

	if err = waitForApp(ctx, opts.App.URL, opts.App.Wait); err != nil {
		return nil, err
	}

	if env.fixtures, err = fixture.New(opts.App.API, fixture.WithTimeout(opts.Timeout.Request)); err != nil {
		return nil, fmt.Errorf("failed to make fixture client: %w", err)
	}

	env.launcher, err = browser.Launch(browser.Options{
		Browser:          opts.Browser.Name,
		Headed:           opts.Browser.Headed,
		SlowMo:           opts.Browser.SlowMo,
		Install:          opts.Browser.Install,
		Width:            opts.Browser.Width,
		Height:           opts.Browser.Height,
		BaseURL:          opts.App.URL,
		CommandTimeout:   opts.Timeout.Command,
		RequestTimeout:   opts.Timeout.Request,
		MobileBreakpoint: suite.Viewport.MobileBreakpoint,
		SnapshotDir:      opts.Snapshots,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	if opts.DB != "" {
		if env.ledger, err = store.New(opts.DB); err != nil {
			return nil, fmt.Errorf("failed to open ledger: %w", err)
		}
	}
	return env, nil
}

func newRunner(env *environment, opts options) (*runner.Runner, error) {
	cfg := runner.Config{
		FailFast:        opts.FailFast,
		ScenarioTimeout: opts.Timeout.Scenario,
		RequestTimeout:  opts.Timeout.Request,
		BaseURL:         opts.App.URL,
		APIURL:          opts.App.API,
	}
	if opts.Match != "" {
		re, err := regexp.Compile(opts.Match)
		if err != nil {
			return nil, fmt.Errorf("bad match expression %q: %w", opts.Match, err)
		}
		cfg.Match = re
	}

	deps := runner.Deps{
		Sessions: runner.LauncherSessions{Launcher: env.launcher},
		Fixtures: env.fixtures,
		Suite:    env.suite,
	}
	if env.ledger != nil {
		deps.Ledger = env.ledger // a nil *store.Store must not become a non-nil interface
	}
	return runner.New(deps, cfg), nil
}

func loadSuite(path string) (*config.Holder, error) {
	vldt, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to make suite validator: %w", err)
	}
	h, err := config.NewHolder(path, vldt)
	if err != nil {
		return nil, fmt.Errorf("failed to load suite: %w", err)
	}
	return h, nil
}

// suiteSecrets returns the non-empty passwords of the suite, masked in logs.
// maskSecrets returns a reload hook adding passwords of the reloaded suite to the values
// masked in logs. Passwords seen before stay masked.
func maskSecrets(dbg bool, known []string) func(config.Suite) {
	var mu sync.Mutex
	known = slices.Clone(known)
	return func(s config.Suite) {
		mu.Lock()
		defer mu.Unlock()
		added := 0
		for _, p := range suiteSecrets(s) {
			if !slices.Contains(known, p) {
				known = append(known, p)
				added++
			}
		}
		if added == 0 {
			return
		}
		setupLog(dbg, known...)
		log.Printf("[INFO] %d new suite secrets masked in logs", added)
	}
}

func suiteSecrets(s config.Suite) []string {
	var res []string
	for _, p := range []string{s.Fixtures.Password, s.Signup.Password, s.ProbeUser.Password} {
		if p != "" && !slices.Contains(res, p) {
			res = append(res, p)
		}
	}
	return res
}

// startApp starts the application command if set and returns a function stopping it.
func startApp(ctx context.Context, cmdline string) (stop func(), err error) {
	if strings.TrimSpace(cmdline) == "" {
		return func() {}, nil
	}
	args, err := shellwords.NewParser().Parse(cmdline)
	if err != nil {
		return nil, fmt.Errorf("bad application command %q: %w", cmdline, err)
	}
	if len(args) == 0 {
		return func() {}, nil
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // command is set by the operator
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start application %q: %w", args[0], err)
	}
	log.Printf("[INFO] started application %q, pid %d", cmdline, cmd.Process.Pid)

	done := make(chan struct{})
	go func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			log.Printf("[WARN] application exited: %v", err)
		}
		close(done)
	}()

	return func() {
		_ = cmd.Process.Signal(syscall.SIGTERM)
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			_ = cmd.Process.Kill()
			<-done
		}
		log.Printf("[DEBUG] application stopped")
	}, nil
}

// waitForApp polls url until it responds with a non-5xx status.
func waitForApp(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client := &http.Client{Timeout: time.Second}
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return fmt.Errorf("bad application url %q: %w", url, err)
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < http.StatusInternalServerError {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("application %s not ready after %v", url, timeout)
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// showHistory prints recent runs, a single run, or per-scenario stats.
func showHistory(ctx context.Context, opts options, w io.Writer) error {
	if opts.DB == "" {
		return errors.New("history requires a run ledger, set --db")
	}
	st, err := store.New(opts.DB)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer st.Close()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch {
	case opts.History.ID != "":
		run, results, err := st.GetRun(ctx, opts.History.ID)
		if err != nil {
			return fmt.Errorf("failed to get run %s: %w", opts.History.ID, err)
		}
		fmt.Fprintf(tw, "run %s\t%s\t%s\t%s\n", run.ID, run.StartedAt.Local().Format(time.DateTime), run.Status, run.BaseURL)
		for _, res := range results {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", res.Outcome.Label(), res.Name, res.Duration.Round(time.Millisecond))
			for _, msg := range res.Messages {
				fmt.Fprintf(tw, "      %s\n", strings.ReplaceAll(msg, "\n", "\n      "))
			}
		}
	case opts.History.Stats:
		stats, err := st.ScenarioStats(ctx, opts.History.Limit)
		if err != nil {
			return fmt.Errorf("failed to get scenario stats: %w", err)
		}
		fmt.Fprintf(tw, "SCENARIO\tPASSED\tFAILED\tSKIPPED\n")
		for _, s := range stats {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Name, s.Passed, s.Failed, s.Skipped)
		}
	default:
		runs, total, err := st.ListRuns(ctx, store.RunQuery{Limit: opts.History.Limit})
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		fmt.Fprintf(tw, "ID\tSTARTED\tSTATUS\tPASSED\tFAILED\tSKIPPED\n")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n", r.ID, r.StartedAt.Local().Format(time.DateTime), r.Status,
				r.Passed, r.Failed, r.Skipped)
		}
		fmt.Fprintf(tw, "\n%d of %d runs\n", len(runs), total)
	}
	return tw.Flush()
}

func printSchema(w io.Writer) error {
	data, err := config.Schema()
	if err != nil {
		return fmt.Errorf("failed to make schema: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
