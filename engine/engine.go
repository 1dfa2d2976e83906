package engine

import (
	"context"
	"io"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/chemfiles/chemfiles.go/errors"
)

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory in pages (64KB each).
	// 0 means wazero's default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// Mounts maps host directories to guest paths, preopened through WASI so
	// the engine can open trajectory and configuration files.
	Mounts map[string]string

	// Stdout and Stderr receive the engine's libc output. Both default to
	// io.Discard.
	Stdout io.Writer
	Stderr io.Writer
}

// Engine holds the wazero runtime and the compiled chemfiles artifact.
type Engine struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
	cfg      Config

	// warning handler for the currently live instance; the artifact is a
	// process singleton, so one slot is enough. The engine invokes it from
	// inside boundary calls, so the slot is guarded against concurrent
	// replacement.
	warnMu sync.RWMutex
	warn   func(string)
}

// New compiles the chemfiles artifact and prepares the host environment.
// It registers the env host module (warning channel) and WASI before
// compilation so every artifact import can be satisfied.
func New(ctx context.Context, wasmBytes []byte, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	e := &Engine{runtime: runtime, cfg: *cfg}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		runtime.Close(ctx)
		return nil, errors.Load("instantiate WASI", err)
	}

	_, err := runtime.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithGoModuleFunction(
			api.GoModuleFunc(e.dispatchWarning),
			[]api.ValueType{api.ValueTypeI32},
			nil,
		).
		Export("chemfiles_warning_callback").
		Instantiate(ctx)
	if err != nil {
		runtime.Close(ctx)
		return nil, errors.Load("instantiate env host module", err)
	}

	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		runtime.Close(ctx)
		return nil, errors.Load("compile artifact", err)
	}
	e.compiled = compiled

	return e, nil
}

// Close releases the runtime and every instance created from it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// SetWarningHandler routes engine warnings to fn. Pass nil to fall back to
// the package logger.
func (e *Engine) SetWarningHandler(fn func(string)) {
	e.warnMu.Lock()
	e.warn = fn
	e.warnMu.Unlock()
}

// dispatchWarning is the env.chemfiles_warning_callback host function. The
// single argument is a pointer to a NUL-terminated message in the calling
// module's memory. A panic in the user handler must not unwind across the
// boundary call, so it is recovered here and reported to the logger.
func (e *Engine) dispatchWarning(_ context.Context, mod api.Module, stack []uint64) {
	if len(stack) == 0 {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			Logger().Error("panic in warning callback", zap.Any("panic", r))
		}
	}()

	msg, err := readCString(mod.Memory(), uint32(stack[0]))
	if err != nil {
		Logger().Warn("unreadable warning message", zap.Error(err))
		return
	}

	e.warnMu.RLock()
	warn := e.warn
	e.warnMu.RUnlock()

	if warn != nil {
		warn(msg)
		return
	}
	Logger().Warn("chemfiles warning", zap.String("message", msg))
}
