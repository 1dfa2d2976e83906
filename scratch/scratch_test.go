package scratch

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"testing"
)

// test fakes

type fakeMemory struct {
	data []byte
}

func newFakeMemory(size int) *fakeMemory {
	return &fakeMemory{data: make([]byte, size)}
}

func (m *fakeMemory) Read(offset uint32, length uint32) ([]byte, error) {
	if int(offset)+int(length) > len(m.data) {
		return nil, fmt.Errorf("read out of bounds")
	}
	return m.data[offset : offset+length], nil
}

func (m *fakeMemory) Write(offset uint32, data []byte) error {
	if int(offset)+len(data) > len(m.data) {
		return fmt.Errorf("write out of bounds")
	}
	copy(m.data[offset:], data)
	return nil
}

func (m *fakeMemory) ReadU8(offset uint32) (uint8, error) {
	return m.data[offset], nil
}

func (m *fakeMemory) ReadU32(offset uint32) (uint32, error) {
	return binary.LittleEndian.Uint32(m.data[offset:]), nil
}

func (m *fakeMemory) ReadU64(offset uint32) (uint64, error) {
	return binary.LittleEndian.Uint64(m.data[offset:]), nil
}

func (m *fakeMemory) ReadF64(offset uint32) (float64, error) {
	return math.Float64frombits(binary.LittleEndian.Uint64(m.data[offset:])), nil
}

func (m *fakeMemory) WriteU8(offset uint32, value uint8) error {
	m.data[offset] = value
	return nil
}

func (m *fakeMemory) WriteU32(offset uint32, value uint32) error {
	binary.LittleEndian.PutUint32(m.data[offset:], value)
	return nil
}

func (m *fakeMemory) WriteU64(offset uint32, value uint64) error {
	binary.LittleEndian.PutUint64(m.data[offset:], value)
	return nil
}

func (m *fakeMemory) WriteF64(offset uint32, value float64) error {
	binary.LittleEndian.PutUint64(m.data[offset:], math.Float64bits(value))
	return nil
}

func (m *fakeMemory) Size() uint32 {
	return uint32(len(m.data))
}

type fakeStack struct {
	pos      uint32
	restores int
}

func (s *fakeStack) Save() (uint32, error) {
	return s.pos, nil
}

func (s *fakeStack) Restore(base uint32) error {
	s.pos = base
	s.restores++
	return nil
}

func (s *fakeStack) Alloc(size uint32) (uint32, error) {
	// 8-byte alignment, like the engine stack
	ptr := (s.pos + 7) &^ 7
	s.pos = ptr + size
	return ptr, nil
}

func newScope(t *testing.T) (*Scope, *fakeMemory, *fakeStack) {
	t.Helper()
	mem := newFakeMemory(64 * 1024)
	stack := &fakeStack{pos: 1024}
	return NewScope(stack, mem), mem, stack
}

func TestScalarRoundTrips(t *testing.T) {
	s, mem, _ := newScope(t)

	dref, err := s.Double()
	if err != nil {
		t.Fatal(err)
	}
	mem.WriteF64(dref.Ptr, 12.011)
	if v, err := s.GetDouble(dref); err != nil || v != 12.011 {
		t.Errorf("double round trip: %v, %v", v, err)
	}

	bref, err := s.Bool()
	if err != nil {
		t.Fatal(err)
	}
	mem.WriteU8(bref.Ptr, 1)
	if v, err := s.GetBool(bref); err != nil || !v {
		t.Errorf("bool round trip: %v, %v", v, err)
	}

	eref, err := s.Enum()
	if err != nil {
		t.Fatal(err)
	}
	mem.WriteU32(eref.Ptr, 2)
	if v, err := s.GetEnum(eref); err != nil || v != 2 {
		t.Errorf("enum round trip: %v, %v", v, err)
	}
}

func TestU64WireFormat(t *testing.T) {
	s, mem, _ := newScope(t)

	ref, err := s.U64()
	if err != nil {
		t.Fatal(err)
	}

	// Engine writes two 32-bit words, low word first.
	const value = uint64(5_000_000_001)
	lo, hi := SplitU64(value)
	mem.WriteU32(ref.Ptr, lo)
	mem.WriteU32(ref.Ptr+4, hi)

	got, err := s.GetU64(ref)
	if err != nil {
		t.Fatal(err)
	}
	if got != value {
		t.Errorf("GetU64 = %d, want %d", got, value)
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 0x7fffffff, 0x80000000, 0xffffffff, 0x100000000,
		1 << 52, (1 << 53) - 1, 1 << 53, math.MaxUint64,
	}
	for _, v := range values {
		lo, hi := SplitU64(v)
		if got := JoinU64(lo, hi); got != v {
			t.Errorf("JoinU64(SplitU64(%d)) = %d", v, got)
		}
	}

	// exhaustive-ish sweep over the safe-integer range boundary
	for v := uint64(1); v < 1<<53; v = v*3 + 7 {
		lo, hi := SplitU64(v)
		if got := JoinU64(lo, hi); got != v {
			t.Fatalf("round trip broken at %d", v)
		}
	}
}

func TestVector3DAndMatrix3(t *testing.T) {
	s, _, _ := newScope(t)

	vref, err := s.Vector3DFrom([3]float64{1.5, -2.5, 3.25})
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.GetVector3D(vref)
	if err != nil {
		t.Fatal(err)
	}
	if v != [3]float64{1.5, -2.5, 3.25} {
		t.Errorf("vector3d round trip: %v", v)
	}

	want := [3][3]float64{{10, 0, 0}, {0, 11, 0}, {0, 0, 12}}
	mref, err := s.Matrix3From(want)
	if err != nil {
		t.Fatal(err)
	}
	m, err := s.GetMatrix3(mref)
	if err != nil {
		t.Fatal(err)
	}
	if m != want {
		t.Errorf("matrix3 round trip: %v", m)
	}
}

func TestArrays(t *testing.T) {
	s, mem, _ := newScope(t)

	dref, err := s.Doubles(3)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range []float64{0.1, 0.2, 0.3} {
		mem.WriteF64(dref.Ptr+uint32(i)*SizeDouble, v)
	}
	ds, err := s.GetDoubles(dref)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 3 || ds[1] != 0.2 {
		t.Errorf("doubles: %v", ds)
	}

	uref, err := s.U64s(4)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint32(0); i < 4; i++ {
		mem.WriteU64(uref.Ptr+i*SizeU64, uint64(i)*10)
	}
	us, err := s.GetU64s(uref)
	if err != nil {
		t.Fatal(err)
	}
	if len(us) != 4 || us[3] != 30 {
		t.Errorf("u64s: %v", us)
	}

	vref, err := s.Vector3Ds(2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		mem.WriteF64(vref.Ptr+uint32(i)*SizeDouble, float64(i))
	}
	vs, err := s.GetVector3Ds(vref)
	if err != nil {
		t.Fatal(err)
	}
	if vs[1] != [3]float64{3, 4, 5} {
		t.Errorf("vector3ds: %v", vs)
	}
}

func TestProgrammerErrors(t *testing.T) {
	s, _, _ := newScope(t)

	if _, err := s.Doubles(0); err == nil {
		t.Error("array without a count must fail immediately")
	}
	if _, err := s.alloc(Kind(200), 1); err == nil {
		t.Error("unknown cell kind must fail immediately")
	}
	if _, err := s.StrBuf(0); err == nil {
		t.Error("string buffer without a size must fail immediately")
	}
}

func TestDecodeTagMismatch(t *testing.T) {
	s, _, _ := newScope(t)

	bref, err := s.Bool()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetDouble(bref); err == nil {
		t.Error("decoding a bool cell as double must fail")
	}
	if _, err := s.GetU64s(bref); err == nil {
		t.Error("decoding a bool cell as u64 array must fail")
	}
}

func TestCStringStaging(t *testing.T) {
	s, mem, _ := newScope(t)

	ref, err := s.CString("He")
	if err != nil {
		t.Fatal(err)
	}
	data, err := mem.Read(ref.Ptr, 3)
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != 'H' || data[1] != 'e' || data[2] != 0 {
		t.Errorf("staged bytes: %v", data)
	}
}

// fakeEngineString simulates the engine's string getters: write up to
// size-1 bytes and always NUL-terminate.
func fakeEngineString(mem Memory, value string) func(ptr, size uint32) error {
	return func(ptr, size uint32) error {
		n := uint32(len(value))
		if n > size-1 {
			n = size - 1
		}
		if err := mem.Write(ptr, []byte(value[:n])); err != nil {
			return err
		}
		return mem.WriteU8(ptr+n, 0)
	}
}

func TestGrowStringShort(t *testing.T) {
	mem := newFakeMemory(64 * 1024)
	stack := &fakeStack{pos: 1024}

	got, err := GrowString(stack, mem, 128, fakeEngineString(mem, "O"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "O" {
		t.Errorf("GrowString = %q", got)
	}
	if stack.pos != 1024 {
		t.Errorf("scratch position leaked: %d", stack.pos)
	}
}

func TestGrowStringLongerThanGuess(t *testing.T) {
	mem := newFakeMemory(64 * 1024)
	stack := &fakeStack{pos: 1024}

	long := strings.Repeat("x", 300)
	got, err := GrowString(stack, mem, 128, fakeEngineString(mem, long))
	if err != nil {
		t.Fatal(err)
	}
	if got != long {
		t.Errorf("GrowString length = %d, want 300", len(got))
	}
	if stack.restores < 2 {
		t.Errorf("expected retries to roll back, restores = %d", stack.restores)
	}
	if stack.pos != 1024 {
		t.Errorf("scratch position leaked: %d", stack.pos)
	}
}

func TestGrowStringPropagatesCallError(t *testing.T) {
	mem := newFakeMemory(64 * 1024)
	stack := &fakeStack{pos: 1024}

	wantErr := fmt.Errorf("engine trap")
	_, err := GrowString(stack, mem, 64, func(ptr, size uint32) error {
		return wantErr
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if stack.pos != 1024 {
		t.Errorf("scratch position leaked on error path: %d", stack.pos)
	}
}

func TestGrowStringExactFit(t *testing.T) {
	mem := newFakeMemory(64 * 1024)
	stack := &fakeStack{pos: 1024}

	// 127 characters exactly fill a 128-byte buffer including the
	// terminator; the loop must retry once to prove nothing was cut off.
	value := strings.Repeat("y", 127)
	got, err := GrowString(stack, mem, 128, fakeEngineString(mem, value))
	if err != nil {
		t.Fatal(err)
	}
	if got != value {
		t.Errorf("GrowString length = %d, want 127", len(got))
	}
}
