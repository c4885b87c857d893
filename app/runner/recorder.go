package runner

import (
	"fmt"
	"runtime"
	"sync"

	log "github.com/go-pkgz/lgr"
)

// recorder implements scenario.T for scenarios executed outside of go test.
// FailNow ends the calling goroutine like testing.T does.
type recorder struct {
	name string

	mu     sync.Mutex
	failed bool
	msgs   []string
	logs   []string
}

func newRecorder(name string) *recorder {
	return &recorder{name: name}
}

func (r *recorder) Helper() {}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	r.failed = true
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
	log.Printf("[DEBUG] %s: %s", r.name, msg)
}

func (r *recorder) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	r.logs = append(r.logs, msg)
	r.mu.Unlock()
	log.Printf("[DEBUG] %s: %s", r.name, msg)
}

func (r *recorder) FailNow() {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()
	runtime.Goexit()
}

func (r *recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

func (r *recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func (r *recorder) Logs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.logs...)
}
