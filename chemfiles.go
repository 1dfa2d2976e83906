package chemfiles

import (
	"context"
	"io"
	"math"
	"os"
	"sync"

	"github.com/chemfiles/chemfiles.go/engine"
	"github.com/chemfiles/chemfiles.go/errors"
)

var (
	setupMu sync.RWMutex
	eng     *engine.Engine
	inst    *engine.Instance
	handles = newRegistry()
)

// Option adjusts engine creation.
type Option func(*engine.Config)

// WithMemoryLimitPages caps the engine's linear memory, in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(cfg *engine.Config) {
		cfg.MemoryLimitPages = pages
	}
}

// WithMount preopens a host directory under a guest path, making its files
// reachable by OpenTrajectory and AddConfiguration.
func WithMount(hostDir, guestPath string) Option {
	return func(cfg *engine.Config) {
		if cfg.Mounts == nil {
			cfg.Mounts = make(map[string]string)
		}
		cfg.Mounts[hostDir] = guestPath
	}
}

// WithStdout routes the engine's standard output to w.
func WithStdout(w io.Writer) Option {
	return func(cfg *engine.Config) {
		cfg.Stdout = w
	}
}

// WithStderr routes the engine's standard error to w.
func WithStderr(w io.Writer) Option {
	return func(cfg *engine.Config) {
		cfg.Stderr = w
	}
}

// Setup compiles and instantiates the chemfiles artifact. The instance is a
// process singleton; calling Setup while one is live is an error.
func Setup(ctx context.Context, wasmBytes []byte, opts ...Option) error {
	setupMu.Lock()
	defer setupMu.Unlock()

	if inst != nil {
		return errors.InvalidInput("engine already set up")
	}

	var cfg engine.Config
	for _, opt := range opts {
		opt(&cfg)
	}

	e, err := engine.New(ctx, wasmBytes, &cfg)
	if err != nil {
		return err
	}
	in, err := e.Instantiate(ctx)
	if err != nil {
		e.Close(ctx)
		return err
	}

	eng = e
	inst = in
	return nil
}

// SetupFile reads the artifact from path and calls Setup.
func SetupFile(ctx context.Context, path string, opts ...Option) error {
	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return errors.Load("read artifact", err)
	}
	return Setup(ctx, wasmBytes, opts...)
}

// Teardown releases the engine instance and its runtime. Handles created
// before Teardown are invalid afterwards.
func Teardown(ctx context.Context) error {
	setupMu.Lock()
	defer setupMu.Unlock()

	if inst == nil {
		return nil
	}
	err := inst.Close(ctx)
	if cerr := eng.Close(ctx); err == nil {
		err = cerr
	}
	inst = nil
	eng = nil
	handles.clear()
	return err
}

// Ready reports whether the engine is set up.
func Ready() bool {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return inst != nil
}

// Version returns the engine's version string.
func Version() (string, error) {
	in, err := current()
	if err != nil {
		return "", err
	}
	return in.Version()
}

// AddConfiguration loads a chemfiles configuration file (atom type renames,
// custom masses and charges) from a guest-visible path.
func AddConfiguration(path string) error {
	return withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().CString(path)
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymAddConfiguration, uint64(ref.Ptr))
	})
}

// LastError returns the engine's last-error message.
func LastError() (string, error) {
	in, err := current()
	if err != nil {
		return "", err
	}
	return in.LastError()
}

// ClearErrors resets the engine's last-error message.
func ClearErrors() error {
	in, err := current()
	if err != nil {
		return err
	}
	return in.ClearErrors()
}

func current() (*engine.Instance, error) {
	setupMu.RLock()
	defer setupMu.RUnlock()
	if inst == nil {
		return nil, errors.NotLoaded()
	}
	return inst, nil
}

// withSession runs fn inside a boundary call scope on the process instance.
func withSession(fn func(*engine.Session) error) error {
	in, err := current()
	if err != nil {
		return err
	}
	return in.WithScope(fn)
}

// f64 encodes a double argument for a boundary call.
func f64(v float64) uint64 {
	return math.Float64bits(v)
}
