package core

// fakeState is the per-goroutine state of a FuncFake: just the installed
// implementation, nil when absent.
type fakeState[F any] struct {
	impl *F
}

// FuncFake is an untracked double: it swaps in alternate logic with no
// recording overhead.
//
// F is the function type itself, e.g. func([]byte) uint32. Unlike FuncMock,
// the fake never performs the call and never captures arguments into stored
// state; it only exposes what to call, and the generated proxy dispatches.
// That asymmetry is what allows reference-bearing arguments.
type FuncFake[F any] struct {
	name string
	cell Cell[fakeState[F]]
}

// NewFuncFake creates a fake for the named function.
func NewFuncFake[F any](name string) *FuncFake[F] {
	return &FuncFake[F]{name: name}
}

// ClearFake resets the fake to its default state: no implementation.
func (f *FuncFake[F]) ClearFake() {
	f.cell.Write(func(s *fakeState[F]) {
		s.impl = nil
	})
}

// FakeImplementation installs impl, replacing any previous one.
func (f *FuncFake[F]) FakeImplementation(impl F) {
	f.cell.Write(func(s *fakeState[F]) {
		s.impl = &impl
	})
}

// Implementation returns the installed implementation. ok is false when none
// is installed, in which case the generated proxy calls the real function.
func (f *FuncFake[F]) Implementation() (impl F, ok bool) {
	f.cell.Read(func(s *fakeState[F]) {
		if s.impl != nil {
			impl = *s.impl
			ok = true
		}
	})

	return impl, ok
}

// Name returns the faked function's name.
func (f *FuncFake[F]) Name() string {
	return f.name
}

// Release discards the state owned by the current goroutine.
func (f *FuncFake[F]) Release() {
	f.cell.Release()
}
