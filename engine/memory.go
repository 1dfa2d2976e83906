package engine

import (
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/chemfiles/chemfiles.go/errors"
	"github.com/chemfiles/chemfiles.go/scratch"
)

// Memory wraps the artifact's linear memory.
type Memory struct {
	mem api.Memory
}

func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, "read at %d, length %d", offset, length)
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseCall, "write at %d, length %d", offset, len(data))
	}
	return nil
}

func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	data, err := m.Read(offset, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	val, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseDecode, "read u32 at %d", offset)
	}
	return val, nil
}

func (m *Memory) ReadU64(offset uint32) (uint64, error) {
	val, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseDecode, "read u64 at %d", offset)
	}
	return val, nil
}

func (m *Memory) ReadF64(offset uint32) (float64, error) {
	val, ok := m.mem.ReadFloat64Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseDecode, "read f64 at %d", offset)
	}
	return val, nil
}

func (m *Memory) WriteU8(offset uint32, value uint8) error {
	return m.Write(offset, []byte{value})
}

func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseCall, "write u32 at %d", offset)
	}
	return nil
}

func (m *Memory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseCall, "write u64 at %d", offset)
	}
	return nil
}

func (m *Memory) WriteF64(offset uint32, value float64) error {
	return m.WriteU64(offset, math.Float64bits(value))
}

// Size returns the current linear memory size in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// Compile-time check that Memory implements scratch.Memory
var _ scratch.Memory = (*Memory)(nil)

// cstringChunk is the scan granularity for NUL-terminated reads.
const cstringChunk = 256

// maxCString caps C-string scans so a missing terminator cannot walk the
// whole linear memory.
const maxCString = 1 << 20

func readCString(mem api.Memory, ptr uint32) (string, error) {
	if ptr == 0 {
		return "", errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Detail("NULL string pointer").
			Build()
	}

	var out []byte
	for scanned := uint32(0); scanned < maxCString; scanned += cstringChunk {
		length := uint32(cstringChunk)
		if remaining := mem.Size() - (ptr + scanned); remaining < length {
			length = remaining
		}
		if length == 0 {
			break
		}
		chunk, ok := mem.Read(ptr+scanned, length)
		if !ok {
			return "", errors.OutOfBounds(errors.PhaseDecode, "string read at %d", ptr+scanned)
		}
		for i, b := range chunk {
			if b == 0 {
				out = append(out, chunk[:i]...)
				return string(out), nil
			}
		}
		out = append(out, chunk...)
	}

	return "", errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
		Detail("unterminated string at %d", ptr).
		Build()
}

func zapError(err error) zap.Field {
	return zap.Error(err)
}
