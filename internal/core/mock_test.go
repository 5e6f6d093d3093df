package core_test

import (
	"fmt"
	"strconv"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/fndouble/fndouble"
	"github.com/fndouble/fndouble/match"
)

// addArgs is the argument tuple of a mocked add(a, b int) function.
type addArgs struct {
	A, B int
}

// realAdd is the fallback the generated proxy would supply: the real
// function's behavior.
func realAdd(a addArgs) int {
	return a.A + a.B
}

// TestFuncMock_CallDispatchesToImplementation verifies an installed
// implementation receives the arguments and its result is returned.
func TestFuncMock_CallDispatchesToImplementation(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	mock.MockImplementation(func(a addArgs) int { return a.A + a.B + 100 })

	g.Expect(mock.Call(addArgs{2, 3}, realAdd)).To(Equal(105))
	g.Expect(mock.Call(addArgs{10, 20}, realAdd)).To(Equal(130))
}

// TestFuncMock_CallFallsBackWhenUnconfigured verifies a fresh mock dispatches
// to the fallback, and still records the call.
func TestFuncMock_CallFallsBackWhenUnconfigured(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")

	g.Expect(mock.Call(addArgs{2, 3}, realAdd)).To(Equal(5))
	g.Expect(mock.CallCount()).To(Equal(1))
}

// TestFuncMock_RecordsCallsInOrder verifies the history equals the invocation
// sequence, implementation installed or not.
func TestFuncMock_RecordsCallsInOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")

	mock.Call(addArgs{1, 1}, realAdd)
	mock.MockImplementation(func(addArgs) int { return 0 })
	mock.Call(addArgs{2, 2}, realAdd)
	mock.Call(addArgs{3, 3}, realAdd)

	g.Expect(mock.Calls()).To(Equal([]addArgs{{1, 1}, {2, 2}, {3, 3}}))
}

// TestFuncMock_RecordsBeforeDispatch verifies a panicking implementation
// still leaves a history entry, since recording precedes dispatch.
func TestFuncMock_RecordsBeforeDispatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	mock.MockImplementation(func(addArgs) int { panic("boom") })

	g.Expect(func() {
		mock.Call(addArgs{2, 3}, realAdd)
	}).To(PanicWith("boom"))

	g.Expect(mock.CallCount()).To(Equal(1))
	mock.AssertWith(t, addArgs{2, 3})
}

// TestFuncMock_ReconfigureReplacesImplementation verifies the second
// configuration fully replaces the first.
func TestFuncMock_ReconfigureReplacesImplementation(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("math")
	mock.MockImplementation(func(a addArgs) int { return a.A + a.B })
	g.Expect(mock.Call(addArgs{5, 3}, realAdd)).To(Equal(8))

	mock.MockImplementation(func(a addArgs) int { return a.A * a.B })
	g.Expect(mock.Call(addArgs{5, 3}, realAdd)).To(Equal(15))
}

// TestFuncMock_ReconfigureKeepsHistory verifies installing a new
// implementation does not retroactively affect recorded history.
func TestFuncMock_ReconfigureKeepsHistory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	mock.Call(addArgs{1, 2}, realAdd)

	mock.MockImplementation(func(addArgs) int { return 0 })

	g.Expect(mock.Calls()).To(Equal([]addArgs{{1, 2}}))
}

// TestFuncMock_ClearMockResetsFully verifies clearing empties the history and
// removes the implementation, so a subsequent call falls back and starts a
// fresh history.
func TestFuncMock_ClearMockResetsFully(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	mock.MockImplementation(func(addArgs) int { return -1 })
	mock.Call(addArgs{5, 3}, realAdd)
	mock.Call(addArgs{10, 20}, realAdd)

	mock.ClearMock()

	mock.AssertTimes(t, 0)
	g.Expect(mock.Call(addArgs{2, 2}, realAdd)).To(Equal(4))
	g.Expect(mock.Calls()).To(Equal([]addArgs{{2, 2}}))
}

// TestFuncMock_AssertTimes_FreshMock verifies asserting 0 calls on a fresh
// mock succeeds and any positive count fails with both counts named.
func TestFuncMock_AssertTimes_FreshMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")

	mock.AssertTimes(t, 0)

	reporter := &recordingReporter{}
	mock.AssertTimes(reporter, 2)

	g.Expect(reporter.failures).To(ConsistOf("expected add mock to be called 2 times, received 0"))
	g.Expect(reporter.helperCalls).To(BeNumerically(">", 0))
}

// TestFuncMock_AssertTimes_Mismatch verifies the failure message names the
// expected and actual counts.
func TestFuncMock_AssertTimes_Mismatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	mock.Call(addArgs{1, 2}, realAdd)
	mock.Call(addArgs{3, 4}, realAdd)

	mock.AssertTimes(t, 2)

	reporter := &recordingReporter{}
	mock.AssertTimes(reporter, 5)

	g.Expect(reporter.failures).To(ConsistOf("expected add mock to be called 5 times, received 2"))
}

// TestFuncMock_AssertWith_Presence verifies presence semantics: the expected
// arguments may appear anywhere in the history, not only last.
func TestFuncMock_AssertWith_Presence(t *testing.T) {
	t.Parallel()

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	mock.Call(addArgs{1, 1}, realAdd)
	mock.Call(addArgs{2, 2}, realAdd)
	mock.Call(addArgs{3, 3}, realAdd)

	mock.AssertWith(t, addArgs{2, 2})
	mock.AssertWith(t, addArgs{1, 1})
}

// TestFuncMock_AssertWith_Absent verifies the failure message names the
// missing arguments, and that any argument fails against an empty history.
func TestFuncMock_AssertWith_Absent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")

	reporter := &recordingReporter{}
	mock.AssertWith(reporter, addArgs{99, 99})

	g.Expect(reporter.failures).To(ConsistOf("expected add mock to be called with {A:99 B:99}"))

	mock.Call(addArgs{5, 3}, realAdd)

	reporter = &recordingReporter{}
	mock.AssertWith(reporter, addArgs{7, 8})

	g.Expect(reporter.failures).To(ConsistOf("expected add mock to be called with {A:7 B:8}"))
}

// TestFuncMock_AssertMatch verifies matcher-based presence assertions, both
// with the match helpers and with a plain value.
func TestFuncMock_AssertMatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	mock.Call(addArgs{5, 3}, realAdd)

	mock.AssertMatch(t, match.BeAny)
	mock.AssertMatch(t, addArgs{5, 3})
	mock.AssertMatch(t, match.Satisfy(func(a addArgs) error {
		if a.A+a.B != 8 {
			return fmt.Errorf("expected arguments summing to 8, got %d", a.A+a.B)
		}

		return nil
	}))

	reporter := &recordingReporter{}
	mock.AssertMatch(reporter, addArgs{1, 1})

	g.Expect(reporter.failures).To(HaveLen(1))
	g.Expect(reporter.failures[0]).To(ContainSubstring("expected add mock to be called with matching arguments"))
}

// TestFuncMock_AssertMatch_EmptyHistory verifies the dedicated message when
// nothing was recorded at all.
func TestFuncMock_AssertMatch_EmptyHistory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")

	reporter := &recordingReporter{}
	mock.AssertMatch(reporter, match.BeAny)

	g.Expect(reporter.failures).To(ConsistOf(
		"expected add mock to be called with matching arguments, but it recorded no calls"))
}

// TestFuncMock_GoroutineIsolation_Property proves two or more concurrent
// goroutines configuring and calling the same mock identity never observe
// each other's implementation or history.
func TestFuncMock_GoroutineIsolation_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 30).Draw(rt, "numGoroutines")
		callsEach := rapid.IntRange(1, 5).Draw(rt, "callsEach")

		mock := fndouble.NewFuncMock[addArgs, int]("add")

		var wg sync.WaitGroup

		wg.Add(numGoroutines)

		errs := make([]string, numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()

				mock.MockImplementation(func(addArgs) int { return idx })

				for range callsEach {
					if got := mock.Call(addArgs{idx, idx}, realAdd); got != idx {
						errs[idx] = "observed another goroutine's implementation: " + strconv.Itoa(got)

						return
					}
				}

				if got := mock.CallCount(); got != callsEach {
					errs[idx] = "observed another goroutine's history: " + strconv.Itoa(got)
				}
			}(i)
		}

		wg.Wait()

		for _, msg := range errs {
			if msg != "" {
				rt.Fatal(msg)
			}
		}
	})
}

// TestFuncMock_Release verifies Release discards the current goroutine's
// state entirely.
func TestFuncMock_Release(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	mock.MockImplementation(func(addArgs) int { return -1 })
	mock.Call(addArgs{1, 1}, realAdd)

	mock.Release()

	mock.AssertTimes(t, 0)
	g.Expect(mock.Call(addArgs{2, 2}, realAdd)).To(Equal(4))
}

// TestCleanup_ReleasesRegisteredDoubles verifies Cleanup registers Release
// with the reporter's cleanup hooks for every double passed.
func TestCleanup_ReleasesRegisteredDoubles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	stub := fndouble.NewFuncStub[int]("answer")

	reporter := &cleanupReporter{}
	fndouble.Cleanup(reporter, mock, stub)

	mock.Call(addArgs{1, 1}, realAdd)
	stub.Setup(42)

	g.Expect(reporter.cleanups).To(HaveLen(2))

	for _, cleanup := range reporter.cleanups {
		cleanup()
	}

	g.Expect(mock.CallCount()).To(BeZero())
	g.Expect(stub.IsSet()).To(BeFalse())
}

// TestCleanup_NoCleanupSupportIsANoOp verifies reporters without Cleanup are
// tolerated.
func TestCleanup_NoCleanupSupportIsANoOp(t *testing.T) {
	t.Parallel()

	mock := fndouble.NewFuncMock[addArgs, int]("add")
	fndouble.Cleanup(&recordingReporter{}, mock)
}
