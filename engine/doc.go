// Package engine loads the chemfiles engine artifact (a wasm32 core module)
// with wazero and exposes its C ABI to the facade layer.
//
// # Architecture
//
// The package provides two main types:
//
//	Engine   - wazero runtime holding the compiled artifact
//	Instance - a running engine with resolved exports and linear memory
//
// All non-trivial computation (file formats, selections, geometry, cell
// math) happens inside the artifact; this package only stages arguments,
// invokes exports, and translates status codes.
//
// # Boundary calls
//
// Every boundary operation runs inside a Session obtained from
// Instance.WithScope. The session holds the instance lock, saves the
// engine's C stack pointer, and restores it on every exit path, so scratch
// allocations made during the call never leak:
//
//	err := inst.WithScope(func(s *engine.Session) error {
//		ref, err := s.Scratch().Double()
//		if err != nil {
//			return err
//		}
//		if err := s.CallStatus(engine.SymAtomMass, uint64(ptr), uint64(ref.Ptr)); err != nil {
//			return err
//		}
//		mass, err = s.Scratch().GetDouble(ref)
//		return err
//	})
//
// Calls are synchronous, in-process function calls. Nothing blocks or
// suspends; the lock only guards the single bump-pointer scratch region.
//
// # Artifact contract
//
// The artifact must export the chfl_* functions listed in symbols.go plus
// the emscripten runtime exports (malloc, free, stackSave, stackAlloc,
// stackRestore). File access goes through wasi_snapshot_preview1 with
// preopened directories from Config.Mounts. Warnings reach the host through
// the env.chemfiles_warning_callback import, installed by the artifact's
// chfl_goext_install_warning_handler shim export.
package engine
