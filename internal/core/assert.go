package core

// Assertion failures raised here go through TestReporter.Fatalf, the same
// channel ordinary test assertions use, so test-runner reporting is uniform.
// They terminate the current test case and are never recovered.

// failCallCount reports a call-count mismatch with both counts.
func failCallCount(t TestReporter, name string, want, got int) {
	t.Helper()
	t.Fatalf("expected %s mock to be called %d times, received %d", name, want, got)
}

// failNoMatch reports that no recorded invocation satisfied a matcher.
func failNoMatch(t TestReporter, name, reason string) {
	t.Helper()

	if reason == "" {
		t.Fatalf("expected %s mock to be called with matching arguments, but it recorded no calls", name)

		return
	}

	t.Fatalf("expected %s mock to be called with matching arguments: %s", name, reason)
}

// failNotCalledWith reports that the expected arguments appear nowhere in the
// recorded history.
func failNotCalledWith(t TestReporter, name string, args any) {
	t.Helper()
	t.Fatalf("expected %s mock to be called with %+v", name, args)
}
