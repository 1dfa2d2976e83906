package engine

import (
	"context"
	"io"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/chemfiles/chemfiles.go/errors"
	"github.com/chemfiles/chemfiles.go/scratch"
)

// Instance is a running chemfiles engine.
//
// Boundary calls are serialized by an internal lock: the scratch region is a
// single bump pointer with save/restore semantics, not a stack per caller,
// so two in-flight scopes must never interleave.
type Instance struct {
	engine *Engine
	module api.Module
	ctx    context.Context
	mem    *Memory
	funcs  map[string]api.Function

	malloc       api.Function
	freeFn       api.Function
	stackSave    api.Function
	stackRestore api.Function
	stackAlloc   api.Function

	mu       sync.Mutex
	stackBuf []uint64
}

// Instantiate creates the running instance, resolves every declared export
// and installs the warning trampoline. It fails fast if the artifact lacks
// a declared symbol.
func (e *Engine) Instantiate(ctx context.Context) (*Instance, error) {
	stdout := e.cfg.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := e.cfg.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	fsCfg := wazero.NewFSConfig()
	for host, guest := range e.cfg.Mounts {
		fsCfg = fsCfg.WithDirMount(host, guest)
	}

	modCfg := wazero.NewModuleConfig().
		WithName("chemfiles").
		WithStdout(stdout).
		WithStderr(stderr).
		WithFSConfig(fsCfg).
		WithStartFunctions() // reactor-style artifact, no _start

	module, err := e.runtime.InstantiateModule(ctx, e.compiled, modCfg)
	if err != nil {
		return nil, errors.Load("instantiate artifact", err)
	}

	// Emscripten reactor modules run static constructors from _initialize.
	if init := module.ExportedFunction(symInitialize); init != nil {
		if _, err := init.Call(ctx); err != nil {
			module.Close(ctx)
			return nil, errors.Load("run _initialize", err)
		}
	}

	mem := module.Memory()
	if mem == nil {
		module.Close(ctx)
		return nil, errors.Load("artifact has no linear memory", nil)
	}

	in := &Instance{
		engine:   e,
		module:   module,
		ctx:      ctx,
		mem:      &Memory{mem: mem},
		funcs:    make(map[string]api.Function, len(Symbols)),
		stackBuf: make([]uint64, 8),
	}

	for _, name := range Symbols {
		fn := module.ExportedFunction(name)
		if fn == nil {
			module.Close(ctx)
			return nil, errors.MissingExport(name)
		}
		in.funcs[name] = fn
	}
	for _, name := range RuntimeSymbols {
		if module.ExportedFunction(name) == nil {
			module.Close(ctx)
			return nil, errors.MissingExport(name)
		}
	}
	in.malloc = module.ExportedFunction(symMalloc)
	in.freeFn = module.ExportedFunction(symFreeRuntime)
	in.stackSave = module.ExportedFunction(symStackSave)
	in.stackRestore = module.ExportedFunction(symStackRestore)
	in.stackAlloc = module.ExportedFunction(symStackAlloc)

	// Route the engine's warning callback to env.chemfiles_warning_callback.
	if _, err := in.funcs[SymInstallWarningHandler].Call(ctx); err != nil {
		module.Close(ctx)
		return nil, errors.Load("install warning handler", err)
	}

	return in, nil
}

// Close releases the instance. The engine and its runtime stay usable.
func (in *Instance) Close(ctx context.Context) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.module == nil {
		return nil
	}
	err := in.module.Close(ctx)
	in.module = nil
	in.funcs = nil
	in.mem = nil
	return err
}

// WithScope runs fn inside a boundary call scope: the instance lock is held,
// the engine C stack pointer is saved before fn and restored on every exit
// path, so scratch allocations made during the call never leak.
func (in *Instance) WithScope(fn func(*Session) error) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.module == nil {
		return errors.NotLoaded()
	}

	base, err := in.stackSaveLocked()
	if err != nil {
		return err
	}
	defer func() {
		if rerr := in.stackRestoreLocked(base); rerr != nil {
			Logger().Warn("stack restore failed", zapError(rerr))
		}
	}()

	s := &Session{in: in}
	s.sc = scratch.NewScope(s, in.mem)
	return fn(s)
}

// Version returns the engine's version string.
func (in *Instance) Version() (string, error) {
	var version string
	err := in.WithScope(func(s *Session) error {
		res, err := s.Call(SymVersion)
		if err != nil {
			return err
		}
		version, err = s.ReadCString(uint32(res[0]))
		return err
	})
	return version, err
}

// LastError returns the engine's last-error string.
func (in *Instance) LastError() (string, error) {
	var msg string
	err := in.WithScope(func(s *Session) error {
		msg = s.LastError()
		return nil
	})
	return msg, err
}

// ClearErrors resets the engine's last-error string.
func (in *Instance) ClearErrors() error {
	return in.WithScope(func(s *Session) error {
		return s.CallStatus(SymClearErrors)
	})
}

func (in *Instance) stackSaveLocked() (uint32, error) {
	in.stackBuf[0] = 0
	if err := in.stackSave.CallWithStack(in.ctx, in.stackBuf[:1]); err != nil {
		return 0, errors.Allocation("save scratch position", err)
	}
	return uint32(in.stackBuf[0]), nil
}

func (in *Instance) stackRestoreLocked(base uint32) error {
	in.stackBuf[0] = uint64(base)
	if err := in.stackRestore.CallWithStack(in.ctx, in.stackBuf[:1]); err != nil {
		return errors.Allocation("restore scratch position", err)
	}
	return nil
}

// Session is an in-progress boundary call scope created by WithScope. It
// holds the instance lock for its whole lifetime; all methods are therefore
// single-threaded by construction.
type Session struct {
	in *Instance
	sc *scratch.Scope
}

// Scratch returns the scratch scope staged over the engine C stack.
func (s *Session) Scratch() *scratch.Scope {
	return s.sc
}

// Memory returns the engine's linear memory.
func (s *Session) Memory() *Memory {
	return s.in.mem
}

// Call invokes a declared export and returns its raw results.
func (s *Session) Call(symbol string, args ...uint64) ([]uint64, error) {
	fn, ok := s.in.funcs[symbol]
	if !ok {
		return nil, errors.MissingExport(symbol)
	}
	res, err := fn.Call(s.in.ctx, args...)
	if err != nil {
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidInput).
			Symbol(symbol).
			Cause(err).
			Detail("boundary call trapped").
			Build()
	}
	return res, nil
}

// CallVoid invokes an export that returns nothing.
func (s *Session) CallVoid(symbol string, args ...uint64) error {
	_, err := s.Call(symbol, args...)
	return err
}

// CallStatus invokes a status-returning export. Success is a no-op; any
// other code becomes an error carrying the engine's last-error string.
func (s *Session) CallStatus(symbol string, args ...uint64) error {
	res, err := s.Call(symbol, args...)
	if err != nil {
		return err
	}
	code := errors.StatusCode(api.DecodeI32(res[0]))
	if code == errors.StatusSuccess {
		return nil
	}
	return errors.Status(symbol, code, s.LastError())
}

// CallPtr invokes a handle-returning export. A zero handle signals an
// allocation failure on the native side and becomes an error immediately.
func (s *Session) CallPtr(object, symbol string, args ...uint64) (uint32, error) {
	res, err := s.Call(symbol, args...)
	if err != nil {
		return 0, err
	}
	ptr := uint32(res[0])
	if ptr == 0 {
		return 0, errors.NullHandle(object, symbol, s.LastError())
	}
	return ptr, nil
}

// LastError fetches the engine's last-error string, or a placeholder when
// even that call fails.
func (s *Session) LastError() string {
	fn, ok := s.in.funcs[SymLastError]
	if !ok {
		return "unknown error (chfl_last_error unavailable)"
	}
	res, err := fn.Call(s.in.ctx)
	if err != nil {
		return "unknown error (chfl_last_error trapped)"
	}
	msg, err := s.ReadCString(uint32(res[0]))
	if err != nil {
		return "unknown error (unreadable message)"
	}
	return msg
}

// ReadCString reads a NUL-terminated string from linear memory.
func (s *Session) ReadCString(ptr uint32) (string, error) {
	return readCString(s.in.mem.mem, ptr)
}

// Malloc allocates size bytes on the engine heap. Use for buffers that must
// outlive the scope (in-memory trajectory data); everything else goes
// through Scratch.
func (s *Session) Malloc(size uint32) (uint32, error) {
	s.in.stackBuf[0] = uint64(size)
	if err := s.in.malloc.CallWithStack(s.in.ctx, s.in.stackBuf[:1]); err != nil {
		return 0, errors.Allocation("malloc", err)
	}
	ptr := uint32(s.in.stackBuf[0])
	if ptr == 0 {
		return 0, errors.Allocation("engine heap exhausted", nil)
	}
	return ptr, nil
}

// Free releases a Malloc'd buffer.
func (s *Session) Free(ptr uint32) {
	if ptr == 0 {
		return
	}
	s.in.stackBuf[0] = uint64(ptr)
	if err := s.in.freeFn.CallWithStack(s.in.ctx, s.in.stackBuf[:1]); err != nil {
		Logger().Warn("free failed", zapError(err))
	}
}

// Save implements scratch.Stack.
func (s *Session) Save() (uint32, error) {
	return s.in.stackSaveLocked()
}

// Restore implements scratch.Stack.
func (s *Session) Restore(base uint32) error {
	return s.in.stackRestoreLocked(base)
}

// Alloc implements scratch.Stack: bump-allocate size bytes on the engine C
// stack. Reclaimed when the enclosing scope restores.
func (s *Session) Alloc(size uint32) (uint32, error) {
	s.in.stackBuf[0] = uint64(size)
	if err := s.in.stackAlloc.CallWithStack(s.in.ctx, s.in.stackBuf[:1]); err != nil {
		return 0, errors.Allocation("stack alloc", err)
	}
	ptr := uint32(s.in.stackBuf[0])
	if ptr == 0 {
		return 0, errors.Allocation("scratch region exhausted", nil)
	}
	return ptr, nil
}

var _ scratch.Stack = (*Session)(nil)
