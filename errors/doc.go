// Package errors provides structured error types for the chemfiles binding.
//
// Two error taxonomies exist. Boundary failures carry a non-zero engine
// status code together with the engine's last-error string:
//
//	err := errors.Status("chfl_trajectory_open", errors.StatusFileError, "could not open file")
//
// Local validation failures are raised before any boundary call is made:
//
//	err := errors.ConstViolation("Topology")
//	err := errors.UseAfterRelease("Frame")
//
// Every error records a Phase (load, call, decode, validate) and a Kind.
// Matching with errors.Is compares phase and kind, so callers can test for
// a category without string inspection:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindConstViolation}) {
//		...
//	}
//
// Nothing in this package retries: every failure is surfaced immediately to
// the caller.
package errors
