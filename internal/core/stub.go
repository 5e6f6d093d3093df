package core

// stubState is the per-goroutine state of a FuncStub: the configured return
// value, nil when absent.
type stubState[R any] struct {
	value *R
}

// FuncStub is the simplest double: it returns a pre-configured value with no
// logic and no argument handling. The value is returned by copy and is never
// consumed; repeated reads return equal values until reconfigured or
// cleared.
type FuncStub[R any] struct {
	name string
	cell Cell[stubState[R]]
}

// NewFuncStub creates a stub for the named function.
func NewFuncStub[R any](name string) *FuncStub[R] {
	return &FuncStub[R]{name: name}
}

// Clear resets the stub to its default state: no value configured.
func (s *FuncStub[R]) Clear() {
	s.cell.Write(func(st *stubState[R]) {
		st.value = nil
	})
}

// IsSet reports whether a return value is configured.
func (s *FuncStub[R]) IsSet() bool {
	return CellGet(&s.cell, func(st *stubState[R]) bool {
		return st.value != nil
	})
}

// Name returns the stubbed function's name.
func (s *FuncStub[R]) Name() string {
	return s.name
}

// Release discards the state owned by the current goroutine.
func (s *FuncStub[R]) Release() {
	s.cell.Release()
}

// ReturnValue returns a copy of the configured value. ok is false when none
// is configured, in which case the generated proxy calls the real function.
func (s *FuncStub[R]) ReturnValue() (value R, ok bool) {
	s.cell.Read(func(st *stubState[R]) {
		if st.value != nil {
			value = *st.value
			ok = true
		}
	})

	return value, ok
}

// Setup stores value as the stub's return value, replacing any previous one.
func (s *FuncStub[R]) Setup(value R) {
	s.cell.Write(func(st *stubState[R]) {
		st.value = &value
	})
}
