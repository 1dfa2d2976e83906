package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/engine"
	"github.com/chemfiles/chemfiles.go/errors"
	"github.com/chemfiles/chemfiles.go/scratch"
)

// handle wraps an opaque engine pointer with the concrete facade name and a
// const flag. Extraction handles that alias engine-internal storage are
// frozen; mutators on them fail before any boundary call.
type handle struct {
	raw    uint32
	kind   string
	frozen bool
}

func wrapHandle(raw uint32, kind string, frozen bool) handle {
	handles.add(raw, kind)
	return handle{raw: raw, kind: kind, frozen: frozen}
}

// ptr returns the raw handle as a boundary argument.
func (h *handle) ptr() (uint64, error) {
	if h.raw == 0 {
		return 0, errors.UseAfterRelease(h.kind)
	}
	return uint64(h.raw), nil
}

// mutPtr is ptr for mutating calls.
func (h *handle) mutPtr() (uint64, error) {
	if h.raw == 0 {
		return 0, errors.UseAfterRelease(h.kind)
	}
	if h.frozen {
		return 0, errors.ConstViolation(h.kind)
	}
	return uint64(h.raw), nil
}

// release frees the engine-side object and zeroes the local handle. A
// second release is a use-after-release error.
func (h *handle) release() error {
	if h.raw == 0 {
		return errors.UseAfterRelease(h.kind)
	}
	raw := h.raw
	h.raw = 0
	err := withSession(func(s *engine.Session) error {
		return s.CallVoid(engine.SymFree, uint64(raw))
	})
	// a failed free leaks the engine-side object; keep it visible to
	// LiveHandles
	if err == nil {
		handles.remove(raw)
	}
	return err
}

// boundary helpers shared by the facades; each stages one call and decodes
// one value.

func getDouble(h *handle, symbol string, args ...uint64) (float64, error) {
	var out float64
	err := withSession(func(s *engine.Session) error {
		p, err := h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Double()
		if err != nil {
			return err
		}
		callArgs := append(append([]uint64{p}, args...), uint64(ref.Ptr))
		if err := s.CallStatus(symbol, callArgs...); err != nil {
			return err
		}
		out, err = s.Scratch().GetDouble(ref)
		return err
	})
	return out, err
}

func setDouble(h *handle, symbol string, value float64) error {
	return withSession(func(s *engine.Session) error {
		p, err := h.mutPtr()
		if err != nil {
			return err
		}
		return s.CallStatus(symbol, p, f64(value))
	})
}

func getCount(h *handle, symbol string, args ...uint64) (uint64, error) {
	var out uint64
	err := withSession(func(s *engine.Session) error {
		p, err := h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().U64()
		if err != nil {
			return err
		}
		callArgs := append(append([]uint64{p}, args...), uint64(ref.Ptr))
		if err := s.CallStatus(symbol, callArgs...); err != nil {
			return err
		}
		out, err = s.Scratch().GetU64(ref)
		return err
	})
	return out, err
}

func getFlag(h *handle, symbol string, args ...uint64) (bool, error) {
	var out bool
	err := withSession(func(s *engine.Session) error {
		p, err := h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Bool()
		if err != nil {
			return err
		}
		callArgs := append(append([]uint64{p}, args...), uint64(ref.Ptr))
		if err := s.CallStatus(symbol, callArgs...); err != nil {
			return err
		}
		out, err = s.Scratch().GetBool(ref)
		return err
	})
	return out, err
}

// getGrownString fetches a string of unknown length through the
// double-and-retry buffer loop.
func getGrownString(h *handle, symbol string) (string, error) {
	var out string
	err := withSession(func(s *engine.Session) error {
		p, err := h.ptr()
		if err != nil {
			return err
		}
		out, err = scratchString(s, func(ptr, size uint32) error {
			return s.CallStatus(symbol, p, uint64(ptr), uint64(size))
		})
		return err
	})
	return out, err
}

func setCString(h *handle, symbol string, value string) error {
	return withSession(func(s *engine.Session) error {
		p, err := h.mutPtr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().CString(value)
		if err != nil {
			return err
		}
		return s.CallStatus(symbol, p, uint64(ref.Ptr))
	})
}

// callMut issues one status call through the mutable handle.
func callMut(h *handle, symbol string, args ...uint64) error {
	return withSession(func(s *engine.Session) error {
		p, err := h.mutPtr()
		if err != nil {
			return err
		}
		return s.CallStatus(symbol, append([]uint64{p}, args...)...)
	})
}

// scratchString runs call through the autogrow loop on the session's
// scratch stack.
func scratchString(s *engine.Session, call func(ptr, size uint32) error) (string, error) {
	return scratch.GrowString(s, s.Memory(), scratch.DefaultStrBuf, call)
}

// copyHandle clones the engine object behind h; copies are always mutable.
func copyHandle(h *handle, symbol string) (uint32, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		p, err := h.ptr()
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(h.kind, symbol, p)
		return err
	})
	return raw, err
}
