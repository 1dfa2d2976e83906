package chemfiles

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/chemfiles/chemfiles.go/engine"
	"github.com/chemfiles/chemfiles.go/errors"
)

const kindTrajectory = "Trajectory"

// Trajectory is an open trajectory file or in-memory buffer. The engine
// picks the format from the file extension unless one is forced.
type Trajectory struct {
	h handle

	// engine-heap buffer backing a memory reader; freed on Close
	buf uint32
}

func validMode(mode byte) error {
	switch mode {
	case 'r', 'w', 'a':
		return nil
	default:
		return errors.InvalidInput("invalid trajectory mode %q, want 'r', 'w' or 'a'", mode)
	}
}

// OpenTrajectory opens a trajectory file from a guest-visible path. Mode is
// 'r' to read, 'w' to write or 'a' to append.
func OpenTrajectory(path string, mode byte) (*Trajectory, error) {
	if err := validMode(mode); err != nil {
		return nil, err
	}
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().CString(path)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindTrajectory, engine.SymTrajectoryOpen, uint64(ref.Ptr), uint64(mode))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Trajectory{h: wrapHandle(raw, kindTrajectory, false)}, nil
}

// OpenTrajectoryWithFormat opens a trajectory file with a forced format
// ("XYZ", "PDB", ...) instead of guessing from the extension.
func OpenTrajectoryWithFormat(path string, mode byte, format string) (*Trajectory, error) {
	if err := validMode(mode); err != nil {
		return nil, err
	}
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		pathRef, err := s.Scratch().CString(path)
		if err != nil {
			return err
		}
		formatRef, err := s.Scratch().CString(format)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindTrajectory, engine.SymTrajectoryWithFormat,
			uint64(pathRef.Ptr), uint64(mode), uint64(formatRef.Ptr))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Trajectory{h: wrapHandle(raw, kindTrajectory, false)}, nil
}

// NewMemoryReader opens a trajectory reading from an in-memory buffer.
// Gzip-compressed buffers are decompressed host-side before staging. The
// data is copied to the engine heap and freed on Close.
func NewMemoryReader(data []byte, format string) (*Trajectory, error) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.InvalidInput("bad gzip buffer: %v", err)
		}
		data, err = io.ReadAll(r)
		if cerr := r.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, errors.InvalidInput("bad gzip buffer: %v", err)
		}
	}

	t := &Trajectory{}
	err := withSession(func(s *engine.Session) error {
		buf, err := s.Malloc(uint32(len(data)) + 1)
		if err != nil {
			return err
		}
		if err := s.Memory().Write(buf, data); err != nil {
			s.Free(buf)
			return err
		}
		if err := s.Memory().WriteU8(buf+uint32(len(data)), 0); err != nil {
			s.Free(buf)
			return err
		}
		formatRef, err := s.Scratch().CString(format)
		if err != nil {
			s.Free(buf)
			return err
		}
		raw, err := s.CallPtr(kindTrajectory, engine.SymTrajectoryMemoryReader,
			uint64(buf), uint64(len(data)), uint64(formatRef.Ptr))
		if err != nil {
			s.Free(buf)
			return err
		}
		t.h = wrapHandle(raw, kindTrajectory, false)
		t.buf = buf
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// NewMemoryWriter opens a trajectory writing to an engine-side buffer;
// fetch it with MemoryBuffer. The format is mandatory, there is no file
// extension to guess from.
func NewMemoryWriter(format string) (*Trajectory, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().CString(format)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindTrajectory, engine.SymTrajectoryMemoryWriter, uint64(ref.Ptr))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Trajectory{h: wrapHandle(raw, kindTrajectory, false)}, nil
}

// Read reads the next step into frame, resizing it as needed.
func (t *Trajectory) Read(frame *Frame) error {
	return t.readInto(engine.SymTrajectoryRead, frame)
}

// ReadStep reads the given step into frame, resizing it as needed.
func (t *Trajectory) ReadStep(step uint64, frame *Frame) error {
	return withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		fp, err := frame.h.mutPtr()
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymTrajectoryReadStep, p, step, fp)
	})
}

// Write appends frame to the trajectory.
func (t *Trajectory) Write(frame *Frame) error {
	return withSession(func(s *engine.Session) error {
		p, err := t.h.mutPtr()
		if err != nil {
			return err
		}
		fp, err := frame.h.ptr()
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymTrajectoryWrite, p, fp)
	})
}

// Nsteps returns the number of steps in the trajectory.
func (t *Trajectory) Nsteps() (uint64, error) {
	return getCount(&t.h, engine.SymTrajectoryNsteps)
}

// Path returns the path used to open the trajectory, empty for in-memory
// trajectories.
func (t *Trajectory) Path() (string, error) {
	return getGrownString(&t.h, engine.SymTrajectoryPath)
}

// SetCell makes every frame read from or written to the trajectory use this
// cell instead of the one in the file.
func (t *Trajectory) SetCell(cell *UnitCell) error {
	return withSession(func(s *engine.Session) error {
		p, err := t.h.mutPtr()
		if err != nil {
			return err
		}
		cp, err := cell.h.ptr()
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymTrajectorySetCell, p, cp)
	})
}

// SetTopology makes every frame read from or written to the trajectory use
// this topology instead of the one in the file.
func (t *Trajectory) SetTopology(topology *Topology) error {
	return withSession(func(s *engine.Session) error {
		p, err := t.h.mutPtr()
		if err != nil {
			return err
		}
		tp, err := topology.h.ptr()
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymTrajectorySetTopology, p, tp)
	})
}

// SetTopologyFile reads the topology from another guest-visible file; an
// empty format means guess from the extension.
func (t *Trajectory) SetTopologyFile(path, format string) error {
	return withSession(func(s *engine.Session) error {
		p, err := t.h.mutPtr()
		if err != nil {
			return err
		}
		pathRef, err := s.Scratch().CString(path)
		if err != nil {
			return err
		}
		var formatPtr uint64
		if format != "" {
			formatRef, err := s.Scratch().CString(format)
			if err != nil {
				return err
			}
			formatPtr = uint64(formatRef.Ptr)
		}
		return s.CallStatus(engine.SymTrajectoryTopologyFile, p, uint64(pathRef.Ptr), formatPtr)
	})
}

// MemoryBuffer returns a copy of the engine-side buffer a memory writer has
// produced so far.
func (t *Trajectory) MemoryBuffer() ([]byte, error) {
	var out []byte
	err := withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		dataRef, err := s.Scratch().Ptr()
		if err != nil {
			return err
		}
		sizeRef, err := s.Scratch().U64()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymTrajectoryMemoryBuffer, p,
			uint64(dataRef.Ptr), uint64(sizeRef.Ptr)); err != nil {
			return err
		}
		data, err := s.Scratch().GetPtr(dataRef)
		if err != nil {
			return err
		}
		n, err := s.Scratch().GetU64(sizeRef)
		if err != nil {
			return err
		}
		if n == 0 {
			out = nil
			return nil
		}
		view, err := s.Memory().Read(data, uint32(n))
		if err != nil {
			return err
		}
		out = make([]byte, len(view))
		copy(out, view)
		return nil
	})
	return out, err
}

// Close flushes and closes the trajectory and frees its backing buffers.
// Closing an already closed trajectory is a no-op.
func (t *Trajectory) Close() error {
	if t.h.raw == 0 {
		return nil
	}
	raw := t.h.raw
	buf := t.buf
	t.h.raw = 0
	t.buf = 0
	err := withSession(func(s *engine.Session) error {
		err := s.CallVoid(engine.SymTrajectoryClose, uint64(raw))
		if buf != 0 {
			s.Free(buf)
		}
		return err
	})
	// a failed close leaks the engine-side trajectory; keep it visible to
	// LiveHandles
	if err == nil {
		handles.remove(raw)
	}
	return err
}

func (t *Trajectory) readInto(symbol string, frame *Frame) error {
	return withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		fp, err := frame.h.mutPtr()
		if err != nil {
			return err
		}
		return s.CallStatus(symbol, p, fp)
	})
}
