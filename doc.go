// Package chemfiles reads and writes computational chemistry trajectory
// files through the chemfiles engine compiled to WebAssembly.
//
// The engine artifact owns every format parser, the selection language, and
// all geometry under periodic boundary conditions. This package is the
// binding over its C ABI: it stages arguments in the engine's scratch
// region, issues boundary calls, translates status codes into errors, and
// wraps engine-owned objects in typed facades.
//
// Architecture:
//
//	chemfiles          typed facades: Atom, Frame, Topology, UnitCell,
//	                   Residue, Property, Selection, Trajectory
//	chemfiles/engine   wazero runtime, instance lifecycle, boundary calls
//	chemfiles/scratch  typed staging cells over the engine C stack
//	chemfiles/errors   structured errors with phase, kind and status code
//
// The artifact is loaded once per process:
//
//	if err := chemfiles.SetupFile(ctx, "libchemfiles.wasm"); err != nil {
//		log.Fatal(err)
//	}
//	defer chemfiles.Teardown(ctx)
//
//	traj, err := chemfiles.OpenTrajectory("water.xyz", 'r')
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer traj.Close()
//
//	frame, err := chemfiles.NewFrame()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer frame.Release()
//
//	if err := traj.Read(frame); err != nil {
//		log.Fatal(err)
//	}
//
// Every facade object holds an opaque engine handle and must be released
// explicitly: the engine heap is not visible to the Go garbage collector.
// LiveHandles reports what is still open.
package chemfiles
