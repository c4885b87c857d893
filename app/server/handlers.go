package server

import (
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/authcheck/app/runner"
	"github.com/umputun/authcheck/app/store"
)

// scenarioInfo is a scenario with its pass/fail counts over recent runs.
type scenarioInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Passed  int    `json:"passed"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"`
}

// handleListRuns returns a page of runs, newest first.
// GET /api/v1/runs?limit=&offset=
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", s.PageLimit)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "bad limit")
		return
	}
	limit = min(limit, s.PageLimit)
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "bad offset")
		return
	}

	runs, total, err := s.Runs.ListRuns(r.Context(), store.RunQuery{Limit: limit, Offset: offset})
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	rest.RenderJSON(w, rest.JSON{"runs": runs, "total": total})
}

// handleGetRun returns a run with its scenario results.
// GET /api/v1/runs/{id}
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, results, err := s.Runs.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "run not found")
		return
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to get run")
		return
	}
	if results == nil {
		results = []store.ScenarioResult{}
	}
	rest.RenderJSON(w, rest.JSON{"run": run, "results": results})
}

// handleStartRun starts a new run in background and responds with its id.
// POST /api/v1/runs
func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	id, err := s.Executor.Start(s.startContext())
	if errors.Is(err, runner.ErrBusy) {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusConflict, err, "run already in progress")
		return
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to start run")
		return
	}
	log.Printf("[INFO] run %s started by %s", id, r.RemoteAddr)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusAccepted)
	rest.RenderJSON(w, rest.JSON{"id": id})
}

// handleScenarios lists scenarios of the active set with their recent stats.
// GET /api/v1/scenarios
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Runs.ScenarioStats(r.Context(), s.StatsRuns)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to get scenario stats")
		return
	}
	byName := make(map[string]store.ScenarioStat, len(stats))
	for _, st := range stats {
		byName[st.Name] = st
	}

	scenarios := s.Executor.Scenarios()
	res := make([]scenarioInfo, 0, len(scenarios))
	for _, sc := range scenarios {
		st := byName[sc.Name]
		res = append(res, scenarioInfo{Name: sc.Name, Title: sc.Title, Passed: st.Passed, Failed: st.Failed, Skipped: st.Skipped})
	}
	rest.RenderJSON(w, rest.JSON{"scenarios": res, "runs": s.StatsRuns})
}

// handleStatus reports whether a run is in progress.
// GET /api/v1/status
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, rest.JSON{"busy": s.Executor.Busy(), "version": s.Version})
}
