package core

// TestReporter is the minimal interface fndouble needs from test frameworks.
// It is satisfied by *testing.T and *testing.B.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Releaser is implemented by every double facade. Release discards the state
// owned by the current goroutine.
type Releaser interface {
	Release()
}

// Cleanup registers each double's Release with the test's cleanup hooks, so
// the current test's state is discarded when the test completes. If t does
// not support Cleanup, this is a no-op: the states simply live until process
// exit, which is the documented default lifecycle.
func Cleanup(t TestReporter, doubles ...Releaser) {
	registrar, ok := t.(cleanupRegistrar)
	if !ok {
		return
	}

	for _, d := range doubles {
		registrar.Cleanup(d.Release)
	}
}

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
