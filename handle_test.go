package chemfiles

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/chemfiles/chemfiles.go/errors"
)

func TestHandleUseAfterRelease(t *testing.T) {
	h := handle{raw: 0, kind: "Atom"}

	if _, err := h.ptr(); err == nil {
		t.Fatal("zeroed handle must not be usable")
	} else if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindUseAfterRelease}) {
		t.Errorf("wrong error: %v", err)
	}

	if _, err := h.mutPtr(); err == nil {
		t.Error("zeroed handle must not be mutable")
	}
}

func TestHandleConstViolation(t *testing.T) {
	h := handle{raw: 42, kind: "Topology", frozen: true}

	if _, err := h.ptr(); err != nil {
		t.Fatalf("const handle must stay readable: %v", err)
	}

	_, err := h.mutPtr()
	if err == nil {
		t.Fatal("const handle must reject mutable access")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindConstViolation}) {
		t.Errorf("wrong error: %v", err)
	}
	if !strings.Contains(err.Error(), "Topology") {
		t.Errorf("error must name the concrete type: %v", err)
	}
}

func TestFacadeCallsWithoutEngine(t *testing.T) {
	// No engine is set up in unit tests; every facade entry point must
	// fail with not_loaded instead of panicking.
	if Ready() {
		t.Skip("engine loaded by the integration suite")
	}
	if _, err := NewAtom("O"); !stderrors.Is(err, errors.NotLoaded()) {
		t.Errorf("NewAtom: %v", err)
	}
	if _, err := Version(); !stderrors.Is(err, errors.NotLoaded()) {
		t.Errorf("Version: %v", err)
	}
	if err := AddConfiguration("config.toml"); !stderrors.Is(err, errors.NotLoaded()) {
		t.Errorf("AddConfiguration: %v", err)
	}
	if _, err := OpenTrajectory("water.xyz", 'r'); !stderrors.Is(err, errors.NotLoaded()) {
		t.Errorf("OpenTrajectory: %v", err)
	}
	if Ready() {
		t.Error("Ready must be false before Setup")
	}
}

func TestTrajectoryModeValidation(t *testing.T) {
	if _, err := OpenTrajectory("water.xyz", 'x'); err == nil {
		t.Fatal("invalid mode must be rejected")
	} else if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindInvalidInput}) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestCellShapeValidation(t *testing.T) {
	c := &UnitCell{h: handle{raw: 42, kind: kindCell}}
	if err := c.SetShape(CellShape(9)); err == nil {
		t.Fatal("unknown shape must be rejected before any boundary call")
	}
}

func TestFailedReleaseKeepsRegistryEntry(t *testing.T) {
	if Ready() {
		t.Skip("engine already loaded by the e2e suite")
	}

	handles.add(77, "Atom")
	defer handles.remove(77)

	h := handle{raw: 77, kind: "Atom"}
	if err := h.release(); err == nil {
		t.Fatal("release without a loaded engine must fail")
	}
	if h.raw != 0 {
		t.Error("failed release must still invalidate the local handle")
	}

	for _, info := range LiveHandles() {
		if info.Raw == 77 {
			return
		}
	}
	t.Error("leaked engine object must stay visible to LiveHandles")
}

func TestFailedCloseKeepsRegistryEntry(t *testing.T) {
	if Ready() {
		t.Skip("engine already loaded by the e2e suite")
	}

	handles.add(78, kindTrajectory)
	defer handles.remove(78)

	traj := &Trajectory{h: handle{raw: 78, kind: kindTrajectory}}
	if err := traj.Close(); err == nil {
		t.Fatal("close without a loaded engine must fail")
	}
	if err := traj.Close(); err != nil {
		t.Errorf("second close must stay a no-op: %v", err)
	}

	for _, info := range LiveHandles() {
		if info.Raw == 78 {
			return
		}
	}
	t.Error("leaked engine trajectory must stay visible to LiveHandles")
}
