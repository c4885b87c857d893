package runner

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/umputun/authcheck/app/enum"
)

// Result is the outcome of one scenario.
type Result struct {
	Name      string        `json:"name"`
	Title     string        `json:"title"`
	Outcome   enum.Outcome  `json:"outcome"`
	Messages  []string      `json:"messages,omitempty"`
	Logs      []string      `json:"logs,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Report is the outcome of a run.
type Report struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Results   []Result      `json:"results"`
}

// Counts returns numbers of passed, failed and skipped scenarios.
func (r Report) Counts() (passed, failed, skipped int) {
	for _, res := range r.Results {
		switch res.Outcome {
		case enum.OutcomePassed:
			passed++
		case enum.OutcomeFailed:
			failed++
		case enum.OutcomeSkipped:
			skipped++
		}
	}
	return passed, failed, skipped
}

// Failed reports whether any scenario failed.
func (r Report) Failed() bool {
	_, failed, _ := r.Counts()
	return failed > 0
}

// Print writes one line per scenario, failure messages indented under it, and a summary.
func (r Report) Print(w io.Writer) error {
	var sb strings.Builder
	for _, res := range r.Results {
		fmt.Fprintf(&sb, "%s  %-28s %s\n", res.Outcome.Label(), res.Name, res.Duration.Round(time.Millisecond))
		if res.Outcome != enum.OutcomeFailed {
			continue
		}
		for _, msg := range res.Messages {
			for _, line := range strings.Split(strings.TrimSpace(msg), "\n") {
				fmt.Fprintf(&sb, "      %s\n", strings.TrimRight(line, " \t"))
			}
		}
	}
	passed, failed, skipped := r.Counts()
	fmt.Fprintf(&sb, "\n%d scenarios: %d passed, %d failed, %d skipped in %s (run %s)\n",
		len(r.Results), passed, failed, skipped, r.Duration.Round(time.Millisecond), r.RunID)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
