// Package fndouble provides per-test doubles for standalone functions:
// tracked mocks, untracked fakes, and fixed-value stubs.
//
// A double's state is scoped to the goroutine that touches it, so parallel
// tests configuring the same double never observe each other, without any
// locking around the state itself. Missing configuration is never an error:
// an unconfigured double falls back to the real function via its generated
// proxy. Scaffolding is produced by the fngen tool and compiled only under
// the test_doubles build tag, so production builds carry none of it.
//
// This is the public API entry point. Implementation lives in internal/core.
package fndouble

import (
	"github.com/fndouble/fndouble/internal/core"
)

// FuncFake is an untracked double: alternate logic with no recording.
type FuncFake[F any] = core.FuncFake[F]

// FuncMock is a tracked double: records every call for later assertions.
type FuncMock[A, R any] = core.FuncMock[A, R]

// FuncStub is a fixed-value double: returns a pre-configured value.
type FuncStub[R any] = core.FuncStub[R]

// Matcher defines the interface for flexible argument matching.
// Compatible with gomega.GomegaMatcher via duck typing.
type Matcher = core.Matcher

// Releaser is implemented by every double facade.
type Releaser = core.Releaser

// TestReporter is the minimal interface fndouble needs from test frameworks.
type TestReporter = core.TestReporter

// Cleanup registers each double's Release with t's cleanup hooks, discarding
// the current test's state when the test completes.
func Cleanup(t TestReporter, doubles ...Releaser) {
	core.Cleanup(t, doubles...)
}

// MatchValue checks whether actual matches expected.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// NewFuncFake creates a fake for the named function. F is the function type
// itself, so reference-bearing arguments are supported: the fake stores
// nothing but the implementation.
func NewFuncFake[F any](name string) *FuncFake[F] {
	return core.NewFuncFake[F](name)
}

// NewFuncMock creates a mock for the named function. A is the argument tuple
// (typically a generated args struct) and R the return tuple. The name
// appears only in assertion failure messages.
func NewFuncMock[A, R any](name string) *FuncMock[A, R] {
	return core.NewFuncMock[A, R](name)
}

// NewFuncStub creates a stub for the named function. R is the return tuple.
func NewFuncStub[R any](name string) *FuncStub[R] {
	return core.NewFuncStub[R](name)
}
