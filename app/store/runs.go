package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/authcheck/app/enum"
)

// CreateRun inserts a new run. Status defaults to running.
func (s *Store) CreateRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("run id is required")
	}
	if run.Status.IsZero() {
		run.Status = enum.RunStatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.rebind(`INSERT INTO runs (id, started_at, base_url, status, total) VALUES (?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, run.ID, formatTS(run.StartedAt), run.BaseURL, run.Status.String(), run.Total); err != nil {
		return fmt.Errorf("failed to create run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun stores the final status, finish time and counters of the run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	finished := time.Now()
	if run.FinishedAt != nil {
		finished = *run.FinishedAt
	}
	if run.Status.IsZero() {
		run.Status = enum.RunStatusFinished
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.rebind(`UPDATE runs SET finished_at = ?, status = ?, total = ?, passed = ?, failed = ?, skipped = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, formatTS(finished), run.Status.String(),
		run.Total, run.Passed, run.Failed, run.Skipped, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", run.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// AddResult appends a scenario result to its run.
func (s *Store) AddResult(ctx context.Context, res ScenarioResult) error {
	if res.Outcome.IsZero() {
		return fmt.Errorf("outcome of %s is not set", res.Name)
	}
	msgs, err := json.Marshal(res.Messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.rebind(`INSERT INTO results (run_id, name, outcome, messages, started_at, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, res.RunID, res.Name, res.Outcome.String(), string(msgs),
		formatTS(res.StartedAt), res.Duration.Milliseconds()); err != nil {
		return fmt.Errorf("failed to add result %s to run %s: %w", res.Name, res.RunID, err)
	}
	return nil
}

// ListRuns returns a page of runs, newest first, and the total number of runs.
func (s *Store) ListRuns(ctx context.Context, q RunQuery) ([]Run, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM runs"); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	query := s.rebind(`SELECT id, started_at, finished_at, base_url, status, total, passed, failed, skipped
		FROM runs ORDER BY started_at DESC LIMIT ? OFFSET ?`)
	var rows []runRow
	if err := s.db.SelectContext(ctx, &rows, query, limit, q.Offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]Run, 0, len(rows))
	for _, r := range rows {
		runs = append(runs, r.toRun())
	}
	return runs, total, nil
}

// GetRun returns the run and its results in execution order.
func (s *Store) GetRun(ctx context.Context, id string) (Run, []ScenarioResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rr runRow
	query := s.rebind(`SELECT id, started_at, finished_at, base_url, status, total, passed, failed, skipped FROM runs WHERE id = ?`)
	err := s.db.GetContext(ctx, &rr, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, ErrNotFound
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	var rows []resultRow
	query = s.rebind(`SELECT id, run_id, name, outcome, messages, started_at, duration_ms FROM results WHERE run_id = ? ORDER BY id`)
	if err := s.db.SelectContext(ctx, &rows, query, id); err != nil {
		return Run{}, nil, fmt.Errorf("failed to get results of run %s: %w", id, err)
	}

	results := make([]ScenarioResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, r.toResult())
	}
	return rr.toRun(), results, nil
}

// ScenarioStats counts outcomes per scenario over the last n runs, ordered by name.
func (s *Store) ScenarioStats(ctx context.Context, n int) ([]ScenarioStat, error) {
	if n <= 0 {
		n = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := s.rebind(`
		SELECT name,
			SUM(CASE WHEN outcome = 'passed' THEN 1 ELSE 0 END) AS passed,
			SUM(CASE WHEN outcome = 'failed' THEN 1 ELSE 0 END) AS failed,
			SUM(CASE WHEN outcome = 'skipped' THEN 1 ELSE 0 END) AS skipped
		FROM results
		WHERE run_id IN (SELECT id FROM runs ORDER BY started_at DESC LIMIT ?)
		GROUP BY name ORDER BY name`)
	var stats []ScenarioStat
	if err := s.db.SelectContext(ctx, &stats, query, n); err != nil {
		return nil, fmt.Errorf("failed to collect scenario stats: %w", err)
	}
	return stats, nil
}

// DeleteRunsOlderThan removes runs started before the given time with their results.
// Returns the number of deleted runs.
func (s *Store) DeleteRunsOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ts := formatTS(olderThan)
	query := s.rebind(`DELETE FROM results WHERE run_id IN (SELECT id FROM runs WHERE started_at < ?)`)
	if _, err := tx.ExecContext(ctx, query, ts); err != nil {
		return 0, fmt.Errorf("failed to delete old results: %w", err)
	}
	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM runs WHERE started_at < ?`), ts)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old runs: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	if count > 0 {
		log.Printf("[DEBUG] deleted %d runs older than %s", count, ts)
	}
	return count, nil
}

type runRow struct {
	ID         string         `db:"id"`
	StartedAt  string         `db:"started_at"`
	FinishedAt sql.NullString `db:"finished_at"`
	BaseURL    string         `db:"base_url"`
	Status     string         `db:"status"`
	Total      int            `db:"total"`
	Passed     int            `db:"passed"`
	Failed     int            `db:"failed"`
	Skipped    int            `db:"skipped"`
}

func (r runRow) toRun() Run {
	status, err := enum.ParseRunStatus(r.Status)
	if err != nil {
		log.Printf("[WARN] run %s: %v", r.ID, err)
	}
	run := Run{
		ID:        r.ID,
		StartedAt: parseTS(r.StartedAt),
		BaseURL:   r.BaseURL,
		Status:    status,
		Total:     r.Total,
		Passed:    r.Passed,
		Failed:    r.Failed,
		Skipped:   r.Skipped,
	}
	if r.FinishedAt.Valid {
		ts := parseTS(r.FinishedAt.String)
		run.FinishedAt = &ts
	}
	return run
}

type resultRow struct {
	ID         int64  `db:"id"`
	RunID      string `db:"run_id"`
	Name       string `db:"name"`
	Outcome    string `db:"outcome"`
	Messages   string `db:"messages"`
	StartedAt  string `db:"started_at"`
	DurationMs int64  `db:"duration_ms"`
}

func (r resultRow) toResult() ScenarioResult {
	outcome, err := enum.ParseOutcome(r.Outcome)
	if err != nil {
		log.Printf("[WARN] result %d: %v", r.ID, err)
	}
	res := ScenarioResult{
		ID:        r.ID,
		RunID:     r.RunID,
		Name:      r.Name,
		Outcome:   outcome,
		StartedAt: parseTS(r.StartedAt),
		Duration:  time.Duration(r.DurationMs) * time.Millisecond,
	}
	if r.Messages != "" {
		if err := json.Unmarshal([]byte(r.Messages), &res.Messages); err != nil {
			log.Printf("[WARN] result %d: can't decode messages: %v", r.ID, err)
		}
	}
	return res
}
