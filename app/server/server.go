// Package server provides the HTTP API over the run ledger: listing runs, run details,
// per-scenario statistics, and starting new runs.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/authcheck/app/runner"
	"github.com/umputun/authcheck/app/scenario"
	"github.com/umputun/authcheck/app/store"
)

//go:generate moq -out mocks/runstore.go -pkg mocks -skip-ensure -fmt goimports . RunStore
//go:generate moq -out mocks/executor.go -pkg mocks -skip-ensure -fmt goimports . Executor

// Server represents the HTTP server.
type Server struct {
	Deps
	Config

	mu     sync.Mutex
	runCtx context.Context // parent of started runs, canceled on shutdown
}

// RunStore reads the run ledger.
type RunStore interface {
	ListRuns(ctx context.Context, q store.RunQuery) ([]store.Run, int, error)
	GetRun(ctx context.Context, id string) (store.Run, []store.ScenarioResult, error)
	ScenarioStats(ctx context.Context, n int) ([]store.ScenarioStat, error)
	DeleteRunsOlderThan(ctx context.Context, olderThan time.Time) (int64, error)
}

// Executor starts runs in background.
type Executor interface {
	Start(ctx context.Context) (string, error)
	Busy() bool
	Scenarios() []scenario.Scenario
}

// Config holds server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Version         string

	BodySizeLimit  int64         // max request body size in bytes
	RequestsPerSec float64       // max requests per second (rate limit)
	MaxConcurrent  int64         // max concurrent in-flight requests
	PageLimit      int           // max runs per page
	StatsRuns      int           // number of recent runs scenario stats are counted over
	Retention      time.Duration // runs older than this are removed, zero keeps everything
}

// Deps holds server dependencies.
type Deps struct {
	Runs     RunStore
	Executor Executor
}

// New creates a new Server instance. Unset limits of cfg get defaults.
func New(deps Deps, cfg Config) *Server {
	return &Server{Deps: deps, Config: cfg.withDefaults(), runCtx: context.Background()}
}

func (c Config) withDefaults() Config {
	c.BodySizeLimit = positiveOr(c.BodySizeLimit, 64*1024)
	c.RequestsPerSec = positiveOr(c.RequestsPerSec, 20)
	c.MaxConcurrent = positiveOr(c.MaxConcurrent, 100)
	c.PageLimit = positiveOr(c.PageLimit, 100)
	c.StatsRuns = positiveOr(c.StatsRuns, 20)
	c.ShutdownTimeout = positiveOr(c.ShutdownTimeout, 5*time.Second)
	return c
}

func positiveOr[T int | int64 | float64 | time.Duration](v, def T) T {
	if v > 0 {
		return v
	}
	return def
}

// Run starts the HTTP server and blocks until context is canceled. Runs started
// through the API are canceled with ctx too.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	s.runCtx = ctx
	s.mu.Unlock()

	httpServer := &http.Server{
		Addr:              s.Address,
		Handler:           s.routes(),
		ReadHeaderTimeout: s.ReadTimeout,
		WriteTimeout:      s.WriteTimeout,
		IdleTimeout:       s.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] shutdown error: %v", err)
		}
	}()

	if s.Retention > 0 {
		go s.cleanup(ctx, time.Hour)
	}

	log.Printf("[DEBUG] started server on %s", s.Address)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// routes builds the API router. RealIP goes before the limiter so clients are
// limited by their own address.
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.Recoverer(log.Default()),
		rest.RealIP,
		s.rateLimiter(),
		rest.Throttle(s.MaxConcurrent),
		rest.Trace,
		rest.SizeLimit(s.BodySizeLimit),
		rest.AppInfo("authcheck", "umputun", s.Version),
		rest.Ping,
	)

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.HandleFunc("GET /runs", s.handleListRuns)
		api.HandleFunc("POST /runs", s.handleStartRun)
		api.HandleFunc("GET /runs/{id}", s.handleGetRun)
		api.HandleFunc("GET /scenarios", s.handleScenarios)
		api.HandleFunc("GET /status", s.handleStatus)
	})

	return router
}

// cleanup removes runs older than the retention period, now and on every tick.
func (s *Server) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		if _, err := s.Runs.DeleteRunsOlderThan(ctx, time.Now().Add(-s.Retention)); err != nil {
			log.Printf("[WARN] failed to delete old runs: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) startContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runCtx
}

// rateLimiter caps requests per second for each client address.
func (s *Server) rateLimiter() func(http.Handler) http.Handler {
	lmt := tollbooth.NewLimiter(s.RequestsPerSec, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr", IndexFromRight: 0}) // RealIP middleware sets it
	lmt.SetBurst(int(s.RequestsPerSec))
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}

// queryInt parses a non-negative integer query parameter, returns def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

var _ Executor = (*runner.Runner)(nil)
