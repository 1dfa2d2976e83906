package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/tetratelabs/wazero/api"
)

// stubMemory backs the warning-channel tests with a plain byte slice.
type stubMemory struct {
	api.Memory
	data []byte
}

func (m stubMemory) Size() uint32 {
	return uint32(len(m.data))
}

func (m stubMemory) Read(offset, count uint32) ([]byte, bool) {
	if uint64(offset)+uint64(count) > uint64(len(m.data)) {
		return nil, false
	}
	return m.data[offset : offset+count], true
}

type stubModule struct {
	api.Module
	mem stubMemory
}

func (m stubModule) Memory() api.Memory {
	return m.mem
}

// warningModule stages message as a NUL-terminated string at offset 1,
// keeping offset 0 free so the NULL-pointer guard stays meaningful.
func warningModule(message string) (stubModule, uint64) {
	data := append([]byte{0}, append([]byte(message), 0)...)
	return stubModule{mem: stubMemory{data: data}}, 1
}

func TestDispatchWarningRoutesMessage(t *testing.T) {
	e := &Engine{}
	var got string
	e.SetWarningHandler(func(msg string) { got = msg })

	mod, ptr := warningModule("file extension implies a format that may be wrong")
	e.dispatchWarning(context.Background(), mod, []uint64{ptr})

	if got != "file extension implies a format that may be wrong" {
		t.Errorf("handler received %q", got)
	}
}

func TestDispatchWarningHandlerReplaceable(t *testing.T) {
	e := &Engine{}
	mod, ptr := warningModule("w")

	var first, second int
	e.SetWarningHandler(func(string) { first++ })
	e.SetWarningHandler(func(string) { second++ })
	e.dispatchWarning(context.Background(), mod, []uint64{ptr})
	if first != 0 || second != 1 {
		t.Errorf("first = %d, second = %d, want 0 and 1", first, second)
	}

	// nil falls back to the logger sink
	e.SetWarningHandler(nil)
	e.dispatchWarning(context.Background(), mod, []uint64{ptr})
	if second != 1 {
		t.Errorf("cleared handler still invoked, second = %d", second)
	}
}

func TestDispatchWarningRecoversHandlerPanic(t *testing.T) {
	e := &Engine{}
	e.SetWarningHandler(func(string) { panic("handler exploded") })

	mod, ptr := warningModule("w")
	// a panic escaping here would unwind across the boundary call
	e.dispatchWarning(context.Background(), mod, []uint64{ptr})
}

func TestDispatchWarningBadPointer(t *testing.T) {
	e := &Engine{}
	called := false
	e.SetWarningHandler(func(string) { called = true })

	mod, _ := warningModule("w")
	e.dispatchWarning(context.Background(), mod, []uint64{1 << 20})
	e.dispatchWarning(context.Background(), mod, []uint64{0})
	e.dispatchWarning(context.Background(), mod, nil)

	if called {
		t.Error("handler invoked for an unreadable message")
	}
}

func TestSetWarningHandlerConcurrent(t *testing.T) {
	e := &Engine{}
	mod, ptr := warningModule("w")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				e.SetWarningHandler(func(string) {})
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 500; j++ {
			e.dispatchWarning(context.Background(), mod, []uint64{ptr})
		}
	}()
	wg.Wait()
}
