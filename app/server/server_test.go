package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/authcheck/app/enum"
	"github.com/umputun/authcheck/app/runner"
	"github.com/umputun/authcheck/app/scenario"
	"github.com/umputun/authcheck/app/server/mocks"
	"github.com/umputun/authcheck/app/store"
)

func TestServer_HandleListRuns(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	st := &mocks.RunStoreMock{
		ListRunsFunc: func(_ context.Context, q store.RunQuery) ([]store.Run, int, error) {
			return []store.Run{{ID: "r1", StartedAt: ts, Status: enum.RunStatusFinished, Total: 3, Passed: 3}}, 7, nil
		},
	}
	srv := newTestServer(t, st, &mocks.ExecutorMock{})

	t.Run("default page", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/api/v1/runs")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Runs  []store.Run `json:"runs"`
			Total int         `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 7, resp.Total)
		require.Len(t, resp.Runs, 1)
		assert.Equal(t, "r1", resp.Runs[0].ID)
		assert.Equal(t, enum.RunStatusFinished, resp.Runs[0].Status)
		assert.Equal(t, store.RunQuery{Limit: 100, Offset: 0}, st.ListRunsCalls()[0].Q)
	})

	t.Run("limit and offset", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/api/v1/runs?limit=5&offset=10")
		require.Equal(t, http.StatusOK, rec.Code)
		calls := st.ListRunsCalls()
		assert.Equal(t, store.RunQuery{Limit: 5, Offset: 10}, calls[len(calls)-1].Q)
	})

	t.Run("limit capped by page size", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/api/v1/runs?limit=5000")
		require.Equal(t, http.StatusOK, rec.Code)
		calls := st.ListRunsCalls()
		assert.Equal(t, 100, calls[len(calls)-1].Q.Limit)
	})

	t.Run("bad params", func(t *testing.T) {
		for _, q := range []string{"limit=abc", "limit=-1", "offset=x"} {
			rec := serve(t, srv, http.MethodGet, "/api/v1/runs?"+q)
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})
}

func TestServer_HandleListRuns_Empty(t *testing.T) {
	st := &mocks.RunStoreMock{
		ListRunsFunc: func(context.Context, store.RunQuery) ([]store.Run, int, error) { return nil, 0, nil },
	}
	srv := newTestServer(t, st, &mocks.ExecutorMock{})

	rec := serve(t, srv, http.MethodGet, "/api/v1/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"runs":[],"total":0}`, rec.Body.String())
}

func TestServer_HandleListRuns_InternalError(t *testing.T) {
	st := &mocks.RunStoreMock{
		ListRunsFunc: func(context.Context, store.RunQuery) ([]store.Run, int, error) { return nil, 0, errors.New("db error") },
	}
	srv := newTestServer(t, st, &mocks.ExecutorMock{})

	rec := serve(t, srv, http.MethodGet, "/api/v1/runs")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to list runs")
}

func TestServer_HandleGetRun(t *testing.T) {
	st := &mocks.RunStoreMock{
		GetRunFunc: func(_ context.Context, id string) (store.Run, []store.ScenarioResult, error) {
			switch id {
			case "r1":
				return store.Run{ID: "r1", Status: enum.RunStatusFinished, Total: 1, Failed: 1},
					[]store.ScenarioResult{{ID: 1, RunID: "r1", Name: "invalid-user", Outcome: enum.OutcomeFailed,
						Messages: []string{"boom"}}}, nil
			case "broken":
				return store.Run{}, nil, errors.New("db error")
			default:
				return store.Run{}, nil, store.ErrNotFound
			}
		},
	}
	srv := newTestServer(t, st, &mocks.ExecutorMock{})

	t.Run("existing run", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/api/v1/runs/r1")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Run     store.Run              `json:"run"`
			Results []store.ScenarioResult `json:"results"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "r1", resp.Run.ID)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "invalid-user", resp.Results[0].Name)
		assert.Equal(t, enum.OutcomeFailed, resp.Results[0].Outcome)
		assert.Equal(t, []string{"boom"}, resp.Results[0].Messages)
	})

	t.Run("unknown run returns 404", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/api/v1/runs/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store error returns 500", func(t *testing.T) {
		rec := serve(t, srv, http.MethodGet, "/api/v1/runs/broken")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_HandleStartRun(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		ex := &mocks.ExecutorMock{StartFunc: func(context.Context) (string, error) { return "run-1", nil }}
		srv := newTestServer(t, &mocks.RunStoreMock{}, ex)

		rec := serve(t, srv, http.MethodPost, "/api/v1/runs")
		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"id":"run-1"}`, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		require.Len(t, ex.StartCalls(), 1)
	})

	t.Run("busy returns 409", func(t *testing.T) {
		ex := &mocks.ExecutorMock{StartFunc: func(context.Context) (string, error) { return "", runner.ErrBusy }}
		srv := newTestServer(t, &mocks.RunStoreMock{}, ex)

		rec := serve(t, srv, http.MethodPost, "/api/v1/runs")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "run already in progress")
	})

	t.Run("other error returns 500", func(t *testing.T) {
		ex := &mocks.ExecutorMock{StartFunc: func(context.Context) (string, error) { return "", errors.New("ledger down") }}
		srv := newTestServer(t, &mocks.RunStoreMock{}, ex)

		rec := serve(t, srv, http.MethodPost, "/api/v1/runs")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_HandleScenarios(t *testing.T) {
	st := &mocks.RunStoreMock{
		ScenarioStatsFunc: func(_ context.Context, n int) ([]store.ScenarioStat, error) {
			return []store.ScenarioStat{{Name: "login", Passed: 4, Failed: 1}, {Name: "gone", Passed: 9}}, nil
		},
	}
	ex := &mocks.ExecutorMock{ScenariosFunc: func() []scenario.Scenario {
		return []scenario.Scenario{{Name: "login", Title: "logs in"}, {Name: "logout", Title: "logs out"}}
	}}
	srv := New(Deps{Runs: st, Executor: ex}, Config{StatsRuns: 5, Version: "test"})

	rec := serve(t, srv, http.MethodGet, "/api/v1/scenarios")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"runs":5,"scenarios":[
		{"name":"login","title":"logs in","passed":4,"failed":1,"skipped":0},
		{"name":"logout","title":"logs out","passed":0,"failed":0,"skipped":0}]}`, rec.Body.String())
	require.Len(t, st.ScenarioStatsCalls(), 1)
	assert.Equal(t, 5, st.ScenarioStatsCalls()[0].N)
}

func TestServer_HandleScenarios_InternalError(t *testing.T) {
	st := &mocks.RunStoreMock{
		ScenarioStatsFunc: func(context.Context, int) ([]store.ScenarioStat, error) { return nil, errors.New("db error") },
	}
	srv := newTestServer(t, st, &mocks.ExecutorMock{})

	rec := serve(t, srv, http.MethodGet, "/api/v1/scenarios")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_HandleStatus(t *testing.T) {
	ex := &mocks.ExecutorMock{BusyFunc: func() bool { return true }}
	srv := newTestServer(t, &mocks.RunStoreMock{}, ex)

	rec := serve(t, srv, http.MethodGet, "/api/v1/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"busy":true,"version":"test"}`, rec.Body.String())
}

func TestServer_Ping(t *testing.T) {
	srv := newTestServer(t, &mocks.RunStoreMock{}, &mocks.ExecutorMock{})

	rec := serve(t, srv, http.MethodGet, "/ping")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_Defaults(t *testing.T) {
	srv := New(Deps{}, Config{})
	assert.Equal(t, int64(64*1024), srv.BodySizeLimit)
	assert.InDelta(t, 20.0, srv.RequestsPerSec, 0.001)
	assert.Equal(t, int64(100), srv.MaxConcurrent)
	assert.Equal(t, 100, srv.PageLimit)
	assert.Equal(t, 20, srv.StatsRuns)
	assert.Equal(t, 5*time.Second, srv.ShutdownTimeout)

	srv = New(Deps{}, Config{BodySizeLimit: 10, RequestsPerSec: 3, MaxConcurrent: 2, PageLimit: 7, StatsRuns: 4,
		ShutdownTimeout: time.Second})
	assert.Equal(t, int64(10), srv.BodySizeLimit)
	assert.InDelta(t, 3.0, srv.RequestsPerSec, 0.001)
	assert.Equal(t, int64(2), srv.MaxConcurrent)
	assert.Equal(t, 7, srv.PageLimit)
	assert.Equal(t, 4, srv.StatsRuns)
	assert.Equal(t, time.Second, srv.ShutdownTimeout)
}

func TestServer_RateLimit(t *testing.T) {
	srv := New(Deps{Runs: &mocks.RunStoreMock{}, Executor: &mocks.ExecutorMock{}}, Config{RequestsPerSec: 1})
	h := srv.routes()

	codes := make([]int, 0, 5)
	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)
}

func TestServer_Run(t *testing.T) {
	started := make(chan context.Context, 1)
	ex := &mocks.ExecutorMock{StartFunc: func(ctx context.Context) (string, error) {
		started <- ctx
		return "run-1", nil
	}}
	st := &mocks.RunStoreMock{
		DeleteRunsOlderThanFunc: func(context.Context, time.Time) (int64, error) { return 0, nil },
	}
	port := freePort(t)
	srv := New(Deps{Runs: st, Executor: ex}, Config{Address: fmt.Sprintf("127.0.0.1:%d", port),
		ReadTimeout: time.Second, Retention: time.Hour, Version: "test"})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Post(base+"/api/v1/runs", "application/json", http.NoBody)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	runCtx := <-started

	// old runs are cleaned on start
	require.Eventually(t, func() bool { return len(st.DeleteRunsOlderThanCalls()) > 0 }, time.Second, 10*time.Millisecond)
	cutoff := st.DeleteRunsOlderThanCalls()[0].OlderThan
	assert.WithinDuration(t, time.Now().Add(-time.Hour), cutoff, 5*time.Second)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Error(t, runCtx.Err(), "started runs are canceled on shutdown")
}

func TestServer_RunBadAddress(t *testing.T) {
	srv := New(Deps{Runs: &mocks.RunStoreMock{}, Executor: &mocks.ExecutorMock{}}, Config{Address: "bad-address:-1"})
	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}

func newTestServer(t *testing.T, st RunStore, ex Executor) *Server {
	t.Helper()
	return New(Deps{Runs: st, Executor: ex}, Config{Address: ":8080", ReadTimeout: 5 * time.Second, Version: "test"})
}

func serve(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
