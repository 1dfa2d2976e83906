package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestStatusMessage(t *testing.T) {
	err := Status("chfl_trajectory_open", StatusFileError, "could not open 'missing.xyz'")
	msg := err.Error()

	for _, want := range []string{"[call]", "status", "chfl_trajectory_open", "file error", "could not open 'missing.xyz'"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestIsMatchesPhaseAndKind(t *testing.T) {
	err := ConstViolation("Topology")

	if !stderrors.Is(err, &Error{Phase: PhaseValidate, Kind: KindConstViolation}) {
		t.Error("expected match on phase and kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseCall, Kind: KindConstViolation}) {
		t.Error("unexpected match with different phase")
	}
}

func TestIsStatus(t *testing.T) {
	err := Status("chfl_residue_id", StatusGenericError, "this residue does not have an id")
	if !IsStatus(err, StatusGenericError) {
		t.Error("expected generic error status match")
	}
	if IsStatus(err, StatusFileError) {
		t.Error("unexpected match for different code")
	}
	if IsStatus(fmt.Errorf("plain"), StatusGenericError) {
		t.Error("plain errors must not match")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("compile failed")
	err := Load("load artifact", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected unwrap to reach cause")
	}
	if !strings.Contains(err.Error(), "caused by: compile failed") {
		t.Errorf("message %q missing cause", err.Error())
	}
}

func TestConstViolationNamesType(t *testing.T) {
	err := ConstViolation("UnitCell")
	if !strings.Contains(err.Error(), "this UnitCell cannot be modified") {
		t.Errorf("message %q does not name the concrete type", err.Error())
	}
}

func TestStatusCodeStrings(t *testing.T) {
	cases := map[StatusCode]string{
		StatusSuccess:      "success",
		StatusMemoryError:  "memory error",
		StatusOutOfBounds:  "out of bounds",
		StatusGenericError: "generic error",
		StatusCXXError:     "internal C++ error",
		StatusCode(42):     "unknown status 42",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("StatusCode(%d).String() = %q, want %q", code, got, want)
		}
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseDecode, KindOutOfBounds).
		Object("Frame").
		Symbol("chfl_frame_positions").
		Detail("reading %d atoms past end", 3).
		Build()

	msg := err.Error()
	for _, want := range []string{"[decode]", "Frame", "chfl_frame_positions", "reading 3 atoms past end"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
