package core_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/fndouble/fndouble"
)

// TestFuncStub_UnsetByDefault verifies a fresh stub has no value configured.
func TestFuncStub_UnsetByDefault(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stub := fndouble.NewFuncStub[string]("loadConfig")

	g.Expect(stub.IsSet()).To(BeFalse())

	_, ok := stub.ReturnValue()
	g.Expect(ok).To(BeFalse())
}

// TestFuncStub_Determinism verifies repeated reads return equal values with
// no side effect on state.
func TestFuncStub_Determinism(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stub := fndouble.NewFuncStub[string]("loadConfig")
	stub.Setup("test_config")

	for range 3 {
		value, ok := stub.ReturnValue()
		g.Expect(ok).To(BeTrue())
		g.Expect(value).To(Equal("test_config"))
	}

	g.Expect(stub.IsSet()).To(BeTrue())
}

// TestFuncStub_ReturnsCopy verifies the caller gets a copy: mutating a
// returned slice-bearing value does not change what later reads see.
func TestFuncStub_ReturnsCopy(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type config struct {
		Host string
		Port int
	}

	stub := fndouble.NewFuncStub[config]("getConfig")
	stub.Setup(config{Host: "localhost", Port: 8080})

	first, _ := stub.ReturnValue()
	first.Port = 9999

	second, _ := stub.ReturnValue()
	g.Expect(second).To(Equal(config{Host: "localhost", Port: 8080}))
}

// TestFuncStub_OverwriteReplaces verifies the second Setup fully replaces the
// first value.
func TestFuncStub_OverwriteReplaces(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stub := fndouble.NewFuncStub[int]("getValue")
	stub.Setup(42)
	stub.Setup(100)

	value, ok := stub.ReturnValue()
	g.Expect(ok).To(BeTrue())
	g.Expect(value).To(Equal(100))
}

// TestFuncStub_Clear verifies clearing removes the configured value.
func TestFuncStub_Clear(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stub := fndouble.NewFuncStub[int]("getValue")
	stub.Setup(42)
	stub.Clear()

	g.Expect(stub.IsSet()).To(BeFalse())

	_, ok := stub.ReturnValue()
	g.Expect(ok).To(BeFalse())
}

// TestFuncStub_GoroutineIsolation verifies a value configured on one
// goroutine is invisible to another.
func TestFuncStub_GoroutineIsolation(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stub := fndouble.NewFuncStub[int]("getValue")
	stub.Setup(7)

	observed := make(chan bool)

	go func() {
		observed <- stub.IsSet()
	}()

	g.Expect(<-observed).To(BeFalse(), "other goroutine must not see this goroutine's stub")
	g.Expect(stub.IsSet()).To(BeTrue())
}

// TestFuncStub_Release verifies Release discards the configured value.
func TestFuncStub_Release(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stub := fndouble.NewFuncStub[int]("getValue")
	stub.Setup(42)
	stub.Release()

	g.Expect(stub.IsSet()).To(BeFalse())
}
