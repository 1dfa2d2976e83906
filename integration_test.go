package chemfiles

import (
	"context"
	stderrors "errors"
	"math"
	"os"
	"sync"
	"testing"

	"github.com/chemfiles/chemfiles.go/errors"
)

// Integration tests run against the real engine artifact. They are skipped
// when testdata/libchemfiles.wasm is not present; drop a build of the
// chemfiles wasm library there to enable them.

const artifactPath = "testdata/libchemfiles.wasm"

var (
	engineOnce sync.Once
	engineErr  error
)

func requireEngine(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(artifactPath); err != nil {
		t.Skipf("engine artifact %s not present", artifactPath)
	}
	engineOnce.Do(func() {
		engineErr = SetupFile(context.Background(), artifactPath,
			WithMount("testdata", "/data"))
	})
	if engineErr != nil {
		t.Fatalf("engine setup: %v", engineErr)
	}
}

func TestEngineVersion(t *testing.T) {
	requireEngine(t)

	version, err := Version()
	if err != nil {
		t.Fatal(err)
	}
	if version == "" {
		t.Error("empty engine version")
	}
}

func TestReadWaterFixture(t *testing.T) {
	requireEngine(t)

	traj, err := OpenTrajectory("/data/water.xyz", 'r')
	if err != nil {
		t.Fatal(err)
	}
	defer traj.Close()

	if n, err := traj.Nsteps(); err != nil || n != 1 {
		t.Fatalf("nsteps = %d, %v", n, err)
	}

	frame, err := NewFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer frame.Release()

	if err := traj.Read(frame); err != nil {
		t.Fatal(err)
	}

	size, err := frame.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != 3 {
		t.Fatalf("frame size = %d, want 3", size)
	}

	positions, err := frame.Positions()
	if err != nil {
		t.Fatal(err)
	}
	want := [3]float64{0.417, 8.303, 11.737}
	for i := 0; i < 3; i++ {
		if math.Abs(positions[0][i]-want[i]) > 1e-12 {
			t.Errorf("positions[0] = %v, want %v", positions[0], want)
			break
		}
	}

	atom, err := frame.Atom(0)
	if err != nil {
		t.Fatal(err)
	}
	defer atom.Release()

	name, err := atom.Name()
	if err != nil {
		t.Fatal(err)
	}
	if name != "O" {
		t.Errorf("atom 0 name = %q, want O", name)
	}
}

func TestOrthorhombicCell(t *testing.T) {
	requireEngine(t)

	cell, err := NewUnitCell([3]float64{10, 10, 10})
	if err != nil {
		t.Fatal(err)
	}
	defer cell.Release()

	shape, err := cell.Shape()
	if err != nil {
		t.Fatal(err)
	}
	if shape != Orthorhombic {
		t.Errorf("shape = %v, want orthorhombic", shape)
	}

	volume, err := cell.Volume()
	if err != nil {
		t.Fatal(err)
	}
	if volume != 1000 {
		t.Errorf("volume = %v, want 1000", volume)
	}

	matrix, err := cell.Matrix()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 10
			}
			if matrix[i][j] != want {
				t.Errorf("matrix[%d][%d] = %v, want %v", i, j, matrix[i][j], want)
			}
		}
	}
}

func TestPropertyRoundTrip(t *testing.T) {
	requireEngine(t)

	frame, err := NewFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer frame.Release()

	values := map[string]any{
		"flag":   true,
		"weight": 1.5,
		"label":  "solvent",
		"offset": [3]float64{1, 2, 3},
	}
	for name, value := range values {
		if err := frame.SetProperty(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	for name, want := range values {
		prop, ok, err := frame.Property(name)
		if err != nil || !ok {
			t.Fatalf("get %s: ok=%v, %v", name, ok, err)
		}
		got, err := prop.Value()
		if err != nil {
			t.Fatalf("value of %s: %v", name, err)
		}
		if got != want {
			t.Errorf("property %s = %v, want %v", name, got, want)
		}
		if err := prop.Release(); err != nil {
			t.Errorf("release %s: %v", name, err)
		}
	}

	if _, ok, err := frame.Property("missing"); err != nil || ok {
		t.Errorf("missing property: ok=%v, err=%v", ok, err)
	}

	names, err := frame.ListProperties()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != len(values) {
		t.Errorf("listed %d properties, want %d", len(names), len(values))
	}
}

func TestSelectionOnWater(t *testing.T) {
	requireEngine(t)

	traj, err := OpenTrajectory("/data/water.xyz", 'r')
	if err != nil {
		t.Fatal(err)
	}
	defer traj.Close()

	frame, err := NewFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer frame.Release()
	if err := traj.Read(frame); err != nil {
		t.Fatal(err)
	}

	sel, err := NewSelection("name O")
	if err != nil {
		t.Fatal(err)
	}
	defer sel.Release()

	matches, err := sel.Evaluate(frame)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || len(matches[0].Atoms) != 1 || matches[0].Atoms[0] != 0 {
		t.Errorf("matches = %+v, want the single oxygen at index 0", matches)
	}
}

func TestMemoryTrajectoryRoundTrip(t *testing.T) {
	requireEngine(t)

	writer, err := NewMemoryWriter("XYZ")
	if err != nil {
		t.Fatal(err)
	}
	defer writer.Close()

	frame, err := NewFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer frame.Release()

	atom, err := NewAtom("C")
	if err != nil {
		t.Fatal(err)
	}
	defer atom.Release()
	if err := frame.AddAtom(atom, [3]float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	if err := writer.Write(frame); err != nil {
		t.Fatal(err)
	}
	buffer, err := writer.MemoryBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if len(buffer) == 0 {
		t.Fatal("empty memory buffer after write")
	}

	reader, err := NewMemoryReader(buffer, "XYZ")
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()

	back, err := NewFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer back.Release()
	if err := reader.Read(back); err != nil {
		t.Fatal(err)
	}
	if n, err := back.Size(); err != nil || n != 1 {
		t.Fatalf("read back %d atoms, %v", n, err)
	}
}

func TestReleasedHandleAgainstEngine(t *testing.T) {
	requireEngine(t)

	atom, err := NewAtom("H")
	if err != nil {
		t.Fatal(err)
	}
	if err := atom.Release(); err != nil {
		t.Fatal(err)
	}
	if _, err := atom.Mass(); err == nil {
		t.Error("released atom must not answer calls")
	}
	if err := atom.Release(); err == nil {
		t.Error("double release must fail")
	}
}

func TestConstExtractionChain(t *testing.T) {
	requireEngine(t)

	traj, err := OpenTrajectory("/data/water.xyz", 'r')
	if err != nil {
		t.Fatal(err)
	}
	defer traj.Close()

	frame, err := NewFrame()
	if err != nil {
		t.Fatal(err)
	}
	defer frame.Release()
	if err := traj.Read(frame); err != nil {
		t.Fatal(err)
	}

	topology, err := frame.Topology()
	if err != nil {
		t.Fatal(err)
	}
	defer topology.Release()

	atom, err := topology.Atom(0)
	if err != nil {
		t.Fatal(err)
	}
	defer atom.Release()

	err = atom.SetName("X")
	if err == nil {
		t.Fatal("atom from a const topology must reject mutation")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindConstViolation}) {
		t.Errorf("wrong error: %v", err)
	}

	// reads still go through the const chain
	name, err := atom.Name()
	if err != nil {
		t.Fatal(err)
	}
	if name != "O" {
		t.Errorf("atom 0 name = %q, want O", name)
	}
}
