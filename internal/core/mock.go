package core

import "reflect"

// mockState is the per-goroutine state of a FuncMock: the installed
// implementation (nil means "fall back") and the append-only call history.
type mockState[A, R any] struct {
	impl  func(A) R
	calls []A
}

// FuncMock is a tracked double for one standalone function: it records every
// invocation and lets tests assert on call count and arguments.
//
// A is the function's argument tuple, typically an args struct emitted by
// fngen. Each invocation stores A by value and assertions compare entries
// with reflect.DeepEqual, so A should be value-like. Doubles over functions
// with reference-bearing arguments belong with FuncFake, which stores
// nothing.
type FuncMock[A, R any] struct {
	name string
	cell Cell[mockState[A, R]]
}

// NewFuncMock creates a mock for the named function. The name appears only in
// assertion failure messages.
func NewFuncMock[A, R any](name string) *FuncMock[A, R] {
	return &FuncMock[A, R]{name: name}
}

// AssertMatch fails t unless some recorded invocation's arguments satisfy the
// matcher. Matchers are duck-typed against gomega; plain values fall back to
// reflect.DeepEqual. See MatchValue.
func (m *FuncMock[A, R]) AssertMatch(t TestReporter, matcher any) {
	t.Helper()

	var lastFailure string

	for _, got := range m.Calls() {
		ok, failure := MatchValue(got, matcher)
		if ok {
			return
		}

		lastFailure = failure
	}

	failNoMatch(t, m.name, lastFailure)
}

// AssertTimes fails t unless the mock was called exactly n times. Asserting 0
// calls on a fresh or cleared mock succeeds.
func (m *FuncMock[A, R]) AssertTimes(t TestReporter, n int) {
	t.Helper()

	got := m.CallCount()
	if got != n {
		failCallCount(t, m.name, n, got)
	}
}

// AssertWith fails t unless some recorded invocation's arguments equal args
// by reflect.DeepEqual. Presence only: ordering and exclusivity are not
// asserted.
func (m *FuncMock[A, R]) AssertWith(t TestReporter, args A) {
	t.Helper()

	for _, got := range m.Calls() {
		if reflect.DeepEqual(got, args) {
			return
		}
	}

	failNotCalledWith(t, m.name, args)
}

// Call is the invocation path used by generated proxies. It appends args to
// the history, then dispatches to the installed implementation, or to
// fallback when none is installed. Recording happens unconditionally and
// before dispatch, so a panicking implementation still leaves a history
// entry.
func (m *FuncMock[A, R]) Call(args A, fallback func(A) R) R {
	impl := CellGet(&m.cell, func(s *mockState[A, R]) func(A) R {
		s.calls = append(s.calls, args)

		return s.impl
	})

	if impl == nil {
		impl = fallback
	}

	return impl(args)
}

// CallCount returns the number of recorded invocations.
func (m *FuncMock[A, R]) CallCount() int {
	return CellGet(&m.cell, func(s *mockState[A, R]) int {
		return len(s.calls)
	})
}

// Calls returns a copy of the recorded history in invocation order.
func (m *FuncMock[A, R]) Calls() []A {
	return CellGet(&m.cell, func(s *mockState[A, R]) []A {
		calls := make([]A, len(s.calls))
		copy(calls, s.calls)

		return calls
	})
}

// ClearMock resets the mock to its default state: no implementation and an
// empty history. A subsequent Call falls back and starts a fresh history.
func (m *FuncMock[A, R]) ClearMock() {
	m.cell.Write(func(s *mockState[A, R]) {
		s.impl = nil
		s.calls = nil
	})
}

// MockImplementation installs f as the active implementation, replacing any
// previous one. Recorded history is unaffected.
func (m *FuncMock[A, R]) MockImplementation(f func(A) R) {
	m.cell.Write(func(s *mockState[A, R]) {
		s.impl = f
	})
}

// Name returns the mocked function's name.
func (m *FuncMock[A, R]) Name() string {
	return m.name
}

// Release discards the state owned by the current goroutine.
func (m *FuncMock[A, R]) Release() {
	m.cell.Release()
}
