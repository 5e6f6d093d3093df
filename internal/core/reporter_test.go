package core_test

import (
	"fmt"

	"github.com/fndouble/fndouble"
)

// recordingReporter captures assertion failures instead of failing the test,
// so tests can inspect the failure messages the assertion engine produces.
// Unlike *testing.T, Fatalf records and returns rather than stopping the
// goroutine.
type recordingReporter struct {
	helperCalls int
	failures    []string
}

func (r *recordingReporter) Fatalf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Helper() {
	r.helperCalls++
}

// cleanupReporter additionally collects Cleanup registrations, letting tests
// run them on the same goroutine that configured the doubles.
type cleanupReporter struct {
	recordingReporter

	cleanups []func()
}

func (r *cleanupReporter) Cleanup(cleanupFunc func()) {
	r.cleanups = append(r.cleanups, cleanupFunc)
}

var _ fndouble.TestReporter = (*recordingReporter)(nil)
