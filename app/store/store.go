// Package store keeps the run ledger: every suite run and the outcome of each of its
// scenarios, on SQLite or PostgreSQL.
package store

import (
	"errors"
	"time"

	"github.com/umputun/authcheck/app/enum"
)

// ErrNotFound is returned when a run is not found in the store.
var ErrNotFound = errors.New("run not found")

// DBType is a supported database engine.
type DBType int

// database types
const (
	DBTypeSQLite DBType = iota
	DBTypePostgres
)

// RWLocker serializes access for engines without concurrent writers.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}

// Run is one execution of the scenario set.
type Run struct {
	ID         string         `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	BaseURL    string         `json:"base_url"`
	Status     enum.RunStatus `json:"status"`
	Total      int            `json:"total"`
	Passed     int            `json:"passed"`
	Failed     int            `json:"failed"`
	Skipped    int            `json:"skipped"`
}

// ScenarioResult is the outcome of one scenario within a run.
type ScenarioResult struct {
	ID        int64         `json:"id"`
	RunID     string        `json:"run_id"`
	Name      string        `json:"name"`
	Outcome   enum.Outcome  `json:"outcome"`
	Messages  []string      `json:"messages,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// RunQuery pages through runs, newest first.
type RunQuery struct {
	Limit  int
	Offset int
}

// ScenarioStat counts outcomes of a scenario over recent runs.
type ScenarioStat struct {
	Name    string `json:"name" db:"name"`
	Passed  int    `json:"passed" db:"passed"`
	Failed  int    `json:"failed" db:"failed"`
	Skipped int    `json:"skipped" db:"skipped"`
}
