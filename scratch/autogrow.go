package scratch

import (
	"bytes"

	"github.com/chemfiles/chemfiles.go/errors"
)

// DefaultStrBuf is the initial guess for growing string buffers.
const DefaultStrBuf = 128

// maxStrBuf caps the double-and-retry loop; engine strings are names,
// formats and error messages, never megabytes.
const maxStrBuf = 1 << 20

// GrowString retrieves a string of unknown length from the engine. It
// allocates initial bytes, invokes call with the buffer pointer and size,
// and reads the result back. When the terminator is not strictly inside the
// buffer the value may have been truncated: the scratch position is rolled
// back to its saved mark, the size doubles, and the call is reissued.
func GrowString(stack Stack, mem Memory, initial uint32, call func(ptr, size uint32) error) (string, error) {
	size := initial
	if size == 0 {
		size = DefaultStrBuf
	}

	for size <= maxStrBuf {
		base, err := stack.Save()
		if err != nil {
			return "", err
		}

		ptr, err := stack.Alloc(size)
		if err != nil {
			stack.Restore(base)
			return "", err
		}

		if err := call(ptr, size); err != nil {
			stack.Restore(base)
			return "", err
		}

		data, err := mem.Read(ptr, size)
		if err != nil {
			stack.Restore(base)
			return "", err
		}

		idx := bytes.IndexByte(data, 0)
		var value string
		if idx >= 0 {
			value = string(data[:idx])
		}
		if err := stack.Restore(base); err != nil {
			return "", err
		}

		// A terminator in the last byte means the engine filled the whole
		// buffer and may have truncated; retry with twice the space.
		if idx >= 0 && idx < int(size)-1 {
			return value, nil
		}
		size *= 2
	}

	return "", errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
		Detail("string longer than %d bytes", maxStrBuf).
		Build()
}
