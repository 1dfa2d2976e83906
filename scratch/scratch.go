package scratch

import (
	"github.com/chemfiles/chemfiles.go/errors"
)

// Memory is the linear-memory surface the scratch layer reads and writes.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	ReadF64(offset uint32) (float64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
	WriteF64(offset uint32, value float64) error
	Size() uint32
}

// Stack is the engine's bump-allocated scratch region.
type Stack interface {
	Save() (uint32, error)
	Restore(base uint32) error
	Alloc(size uint32) (uint32, error)
}

// Kind is the semantic type of a scratch cell.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindDouble       // 8-byte IEEE double
	KindBool         // 1-byte boolean
	KindU64          // 8-byte unsigned counter, two 32-bit words, low first
	KindEnum         // 4-byte engine enum cell (property kind, cell shape, bond order)
	KindVector3D     // 3 doubles, 24 bytes
	KindMatrix3      // 3x3 doubles, 72 bytes
	KindCString      // NUL-terminated input string
	KindStrBuf       // output string buffer
	KindPtr          // 4-byte guest pointer cell
)

func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindU64:
		return "u64"
	case KindEnum:
		return "enum"
	case KindVector3D:
		return "vector3d"
	case KindMatrix3:
		return "matrix3"
	case KindCString:
		return "cstring"
	case KindStrBuf:
		return "strbuf"
	case KindPtr:
		return "ptr"
	default:
		return "invalid"
	}
}

// Boundary value sizes, fixed by the engine's wasm32 ABI.
const (
	SizeDouble   = 8
	SizeBool     = 1
	SizeU64      = 8
	SizeEnum     = 4
	SizeVector3D = 24
	SizeMatrix3  = 72
	SizePtr      = 4
)

func (k Kind) size() uint32 {
	switch k {
	case KindDouble:
		return SizeDouble
	case KindBool:
		return SizeBool
	case KindU64:
		return SizeU64
	case KindEnum:
		return SizeEnum
	case KindVector3D:
		return SizeVector3D
	case KindMatrix3:
		return SizeMatrix3
	case KindPtr:
		return SizePtr
	default:
		return 0
	}
}

// Ref is a tagged reference to a scratch allocation. The tag records enough
// type information to decode the bytes back into a host value.
type Ref struct {
	Kind  Kind
	Ptr   uint32
	Count uint32 // elements for arrays, bytes for string cells
}

// Scope bump-allocates typed cells in the scratch region. The enclosing
// engine session owns save/restore; a Scope never outlives its session.
type Scope struct {
	stack Stack
	mem   Memory
}

// NewScope creates a scope over a scratch stack and the engine memory.
func NewScope(stack Stack, mem Memory) *Scope {
	return &Scope{stack: stack, mem: mem}
}

func (s *Scope) alloc(kind Kind, count uint32) (Ref, error) {
	elem := kind.size()
	if elem == 0 {
		return Ref{}, errors.InvalidInput("no such scratch cell kind: %s", kind)
	}
	if count == 0 {
		return Ref{}, errors.InvalidInput("scratch array of %s requires a count", kind)
	}
	ptr, err := s.stack.Alloc(elem * count)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Kind: kind, Ptr: ptr, Count: count}, nil
}

// Double allocates one 8-byte double cell.
func (s *Scope) Double() (Ref, error) { return s.alloc(KindDouble, 1) }

// Bool allocates one 1-byte boolean cell.
func (s *Scope) Bool() (Ref, error) { return s.alloc(KindBool, 1) }

// U64 allocates one 8-byte unsigned counter cell.
func (s *Scope) U64() (Ref, error) { return s.alloc(KindU64, 1) }

// Enum allocates one 4-byte engine enum cell.
func (s *Scope) Enum() (Ref, error) { return s.alloc(KindEnum, 1) }

// Ptr allocates one 4-byte guest pointer cell.
func (s *Scope) Ptr() (Ref, error) { return s.alloc(KindPtr, 1) }

// Vector3D allocates one 24-byte 3-vector cell.
func (s *Scope) Vector3D() (Ref, error) { return s.alloc(KindVector3D, 1) }

// Matrix3 allocates one 72-byte 3x3 matrix cell.
func (s *Scope) Matrix3() (Ref, error) { return s.alloc(KindMatrix3, 1) }

// Doubles allocates a counted array of doubles.
func (s *Scope) Doubles(count uint32) (Ref, error) { return s.alloc(KindDouble, count) }

// U64s allocates a counted array of 64-bit counters.
func (s *Scope) U64s(count uint32) (Ref, error) { return s.alloc(KindU64, count) }

// Enums allocates a counted array of engine enum cells.
func (s *Scope) Enums(count uint32) (Ref, error) { return s.alloc(KindEnum, count) }

// Ptrs allocates a counted array of guest pointer cells.
func (s *Scope) Ptrs(count uint32) (Ref, error) { return s.alloc(KindPtr, count) }

// Vector3Ds allocates a counted array of 3-vectors.
func (s *Scope) Vector3Ds(count uint32) (Ref, error) { return s.alloc(KindVector3D, count) }

// CString stages a NUL-terminated input string.
func (s *Scope) CString(value string) (Ref, error) {
	size := uint32(len(value)) + 1
	ptr, err := s.stack.Alloc(size)
	if err != nil {
		return Ref{}, err
	}
	buf := make([]byte, size)
	copy(buf, value)
	if err := s.mem.Write(ptr, buf); err != nil {
		return Ref{}, err
	}
	return Ref{Kind: KindCString, Ptr: ptr, Count: size}, nil
}

// StrBuf allocates an output string buffer of size bytes.
func (s *Scope) StrBuf(size uint32) (Ref, error) {
	if size == 0 {
		return Ref{}, errors.InvalidInput("string buffer requires a size")
	}
	ptr, err := s.stack.Alloc(size)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Kind: KindStrBuf, Ptr: ptr, Count: size}, nil
}

// Vector3DFrom stages a 3-vector input value.
func (s *Scope) Vector3DFrom(v [3]float64) (Ref, error) {
	ref, err := s.Vector3D()
	if err != nil {
		return Ref{}, err
	}
	if err := s.SetVector3D(ref, v); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

// Matrix3From stages a 3x3 matrix input value.
func (s *Scope) Matrix3From(m [3][3]float64) (Ref, error) {
	ref, err := s.Matrix3()
	if err != nil {
		return Ref{}, err
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			off := uint32(i*3+j) * SizeDouble
			if err := s.mem.WriteF64(ref.Ptr+off, m[i][j]); err != nil {
				return Ref{}, err
			}
		}
	}
	return ref, nil
}

func (s *Scope) check(ref Ref, kind Kind) error {
	if ref.Kind != kind {
		return errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Detail("decoding %s cell as %s", ref.Kind, kind).
			Build()
	}
	return nil
}

// GetDouble decodes a double cell.
func (s *Scope) GetDouble(ref Ref) (float64, error) {
	if err := s.check(ref, KindDouble); err != nil {
		return 0, err
	}
	return s.mem.ReadF64(ref.Ptr)
}

// GetBool decodes a boolean cell.
func (s *Scope) GetBool(ref Ref) (bool, error) {
	if err := s.check(ref, KindBool); err != nil {
		return false, err
	}
	b, err := s.mem.ReadU8(ref.Ptr)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// GetU64 decodes a 64-bit counter cell from its two 32-bit words, low word
// first.
func (s *Scope) GetU64(ref Ref) (uint64, error) {
	if err := s.check(ref, KindU64); err != nil {
		return 0, err
	}
	lo, err := s.mem.ReadU32(ref.Ptr)
	if err != nil {
		return 0, err
	}
	hi, err := s.mem.ReadU32(ref.Ptr + 4)
	if err != nil {
		return 0, err
	}
	return JoinU64(lo, hi), nil
}

// GetEnum decodes an engine enum cell.
func (s *Scope) GetEnum(ref Ref) (int32, error) {
	if err := s.check(ref, KindEnum); err != nil {
		return 0, err
	}
	v, err := s.mem.ReadU32(ref.Ptr)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// GetPtr decodes a guest pointer cell.
func (s *Scope) GetPtr(ref Ref) (uint32, error) {
	if err := s.check(ref, KindPtr); err != nil {
		return 0, err
	}
	return s.mem.ReadU32(ref.Ptr)
}

// GetVector3D decodes a 3-vector cell.
func (s *Scope) GetVector3D(ref Ref) ([3]float64, error) {
	var v [3]float64
	if err := s.check(ref, KindVector3D); err != nil {
		return v, err
	}
	for i := 0; i < 3; i++ {
		val, err := s.mem.ReadF64(ref.Ptr + uint32(i)*SizeDouble)
		if err != nil {
			return v, err
		}
		v[i] = val
	}
	return v, nil
}

// SetVector3D writes a 3-vector value into its cell.
func (s *Scope) SetVector3D(ref Ref, v [3]float64) error {
	if err := s.check(ref, KindVector3D); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if err := s.mem.WriteF64(ref.Ptr+uint32(i)*SizeDouble, v[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetMatrix3 decodes a 3x3 matrix cell, row major.
func (s *Scope) GetMatrix3(ref Ref) ([3][3]float64, error) {
	var m [3][3]float64
	if err := s.check(ref, KindMatrix3); err != nil {
		return m, err
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			off := uint32(i*3+j) * SizeDouble
			val, err := s.mem.ReadF64(ref.Ptr + off)
			if err != nil {
				return m, err
			}
			m[i][j] = val
		}
	}
	return m, nil
}

// GetDoubles decodes a counted double array.
func (s *Scope) GetDoubles(ref Ref) ([]float64, error) {
	if err := s.check(ref, KindDouble); err != nil {
		return nil, err
	}
	out := make([]float64, ref.Count)
	for i := range out {
		val, err := s.mem.ReadF64(ref.Ptr + uint32(i)*SizeDouble)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// GetU64s decodes a counted 64-bit counter array.
func (s *Scope) GetU64s(ref Ref) ([]uint64, error) {
	if err := s.check(ref, KindU64); err != nil {
		return nil, err
	}
	out := make([]uint64, ref.Count)
	for i := range out {
		val, err := s.mem.ReadU64(ref.Ptr + uint32(i)*SizeU64)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// GetEnums decodes a counted engine enum array.
func (s *Scope) GetEnums(ref Ref) ([]int32, error) {
	if err := s.check(ref, KindEnum); err != nil {
		return nil, err
	}
	out := make([]int32, ref.Count)
	for i := range out {
		val, err := s.mem.ReadU32(ref.Ptr + uint32(i)*SizeEnum)
		if err != nil {
			return nil, err
		}
		out[i] = int32(val)
	}
	return out, nil
}

// GetPtrs decodes a counted guest pointer array.
func (s *Scope) GetPtrs(ref Ref) ([]uint32, error) {
	if err := s.check(ref, KindPtr); err != nil {
		return nil, err
	}
	out := make([]uint32, ref.Count)
	for i := range out {
		val, err := s.mem.ReadU32(ref.Ptr + uint32(i)*SizePtr)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// GetVector3Ds decodes a counted 3-vector array.
func (s *Scope) GetVector3Ds(ref Ref) ([][3]float64, error) {
	if err := s.check(ref, KindVector3D); err != nil {
		return nil, err
	}
	out := make([][3]float64, ref.Count)
	for i := range out {
		base := ref.Ptr + uint32(i)*SizeVector3D
		for j := 0; j < 3; j++ {
			val, err := s.mem.ReadF64(base + uint32(j)*SizeDouble)
			if err != nil {
				return nil, err
			}
			out[i][j] = val
		}
	}
	return out, nil
}

// GetString decodes an output string buffer up to its NUL terminator. The
// second result reports whether the terminator sat strictly inside the
// buffer; false means the engine may have truncated the value.
func (s *Scope) GetString(ref Ref) (string, bool, error) {
	if ref.Kind != KindStrBuf && ref.Kind != KindCString {
		return "", false, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Detail("decoding %s cell as string", ref.Kind).
			Build()
	}
	data, err := s.mem.Read(ref.Ptr, ref.Count)
	if err != nil {
		return "", false, err
	}
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), i < len(data)-1, nil
		}
	}
	return string(data), false, nil
}
