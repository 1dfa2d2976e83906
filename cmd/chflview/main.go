package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	chemfiles "github.com/chemfiles/chemfiles.go"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "libchemfiles.wasm", "Path to the chemfiles wasm artifact")
		format      = flag.String("format", "", "Force a trajectory format instead of guessing from the extension")
		frameIdx    = flag.Uint64("frame", 0, "Frame to print")
		maxAtoms    = flag.Int("atoms", 10, "Number of atoms to print (0 for all)")
		interactive = flag.Bool("i", false, "Interactive frame browser")
	)
	flag.Parse()

	file := flag.Arg(0)
	if file == "" {
		fmt.Fprintln(os.Stderr, "Usage: chflview [-wasm artifact] [-format name] [-frame n] <trajectory>")
		fmt.Fprintln(os.Stderr, "       chflview [-wasm artifact] -i <trajectory>  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile, file, *format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, file, *format, *frameIdx, *maxAtoms); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openTrajectory mounts the file's directory into the engine and opens it.
func openTrajectory(ctx context.Context, wasmFile, file, format string) (*chemfiles.Trajectory, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	err = chemfiles.SetupFile(ctx, wasmFile,
		chemfiles.WithMount(filepath.Dir(abs), "/data"),
		chemfiles.WithStderr(os.Stderr))
	if err != nil {
		return nil, err
	}

	guestPath := "/data/" + filepath.Base(abs)
	if format != "" {
		return chemfiles.OpenTrajectoryWithFormat(guestPath, 'r', format)
	}
	return chemfiles.OpenTrajectory(guestPath, 'r')
}

func run(wasmFile, file, format string, frameIdx uint64, maxAtoms int) error {
	ctx := context.Background()

	traj, err := openTrajectory(ctx, wasmFile, file, format)
	if err != nil {
		return err
	}
	defer traj.Close()
	defer chemfiles.Teardown(ctx)

	version, err := chemfiles.Version()
	if err != nil {
		return err
	}
	nsteps, err := traj.Nsteps()
	if err != nil {
		return err
	}

	fmt.Printf("Trajectory: %s\n", file)
	fmt.Printf("Engine:     chemfiles %s\n", version)
	fmt.Printf("Frames:     %d\n", nsteps)

	frame, err := chemfiles.NewFrame()
	if err != nil {
		return err
	}
	defer frame.Release()

	if err := traj.ReadStep(frameIdx, frame); err != nil {
		return err
	}
	return printFrame(frame, frameIdx, maxAtoms)
}

func printFrame(frame *chemfiles.Frame, idx uint64, maxAtoms int) error {
	size, err := frame.Size()
	if err != nil {
		return err
	}
	step, err := frame.Step()
	if err != nil {
		return err
	}

	cell, err := frame.Cell()
	if err != nil {
		return err
	}
	defer cell.Release()
	shape, err := cell.Shape()
	if err != nil {
		return err
	}
	lengths, err := cell.Lengths()
	if err != nil {
		return err
	}
	volume, err := cell.Volume()
	if err != nil {
		return err
	}

	topology, err := frame.Topology()
	if err != nil {
		return err
	}
	defer topology.Release()
	bonds, err := topology.BondsCount()
	if err != nil {
		return err
	}

	fmt.Printf("\nFrame %d (step %d): %d atoms, %d bonds\n", idx, step, size, bonds)
	fmt.Printf("Cell: %s, lengths [%.3f %.3f %.3f], volume %.3f\n",
		shape, lengths[0], lengths[1], lengths[2], volume)

	positions, err := frame.Positions()
	if err != nil {
		return err
	}

	limit := uint64(len(positions))
	if maxAtoms > 0 && uint64(maxAtoms) < limit {
		limit = uint64(maxAtoms)
	}
	fmt.Printf("\n%-6s %-6s %-6s %12s %12s %12s\n", "index", "name", "type", "x", "y", "z")
	for i := uint64(0); i < limit; i++ {
		atom, err := frame.Atom(i)
		if err != nil {
			return err
		}
		name, err := atom.Name()
		if err != nil {
			atom.Release()
			return err
		}
		atomType, err := atom.Type()
		if err != nil {
			atom.Release()
			return err
		}
		if err := atom.Release(); err != nil {
			return err
		}
		p := positions[i]
		fmt.Printf("%-6d %-6s %-6s %12.6f %12.6f %12.6f\n", i, name, atomType, p[0], p[1], p[2])
	}
	if limit < size {
		fmt.Printf("... %d more atoms\n", size-limit)
	}
	return nil
}
