// chflcheck keeps the declared boundary table in lockstep with the engine
// artifact and the Go sources.
//
// Artifact side: every declared chfl_* function must be exported by the
// artifact, and every chfl_* export must be declared. Source side: every
// symbol constant declared in engine/symbols.go must be referenced
// somewhere else in the tree, otherwise the table carries dead entries.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"

	"github.com/chemfiles/chemfiles.go/engine"
)

var (
	declRe = regexp.MustCompile(`(Sym\w+)\s*=\s*"(chfl_[a-z0-9_]+)"`)
	useRe  = regexp.MustCompile(`\b(Sym[A-Z]\w*)\b`)
)

func main() {
	var (
		wasmFile = flag.String("wasm", "", "Chemfiles wasm artifact to check (optional)")
		srcDir   = flag.String("src", ".", "Module root to scan")
	)
	flag.Parse()

	failed := false

	if *wasmFile != "" {
		if err := checkArtifact(*wasmFile, &failed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := checkSources(*srcDir, &failed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("ok: boundary table is in lockstep")
}

func checkArtifact(wasmFile string, failed *bool) error {
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	ctx := context.Background()
	runtime := wazero.NewRuntime(ctx)
	defer runtime.Close(ctx)

	compiled, err := runtime.CompileModule(ctx, data)
	if err != nil {
		return fmt.Errorf("compile artifact: %w", err)
	}

	if missing := engine.MissingExports(compiled); len(missing) > 0 {
		*failed = true
		fmt.Printf("declared but not exported by %s:\n", wasmFile)
		for _, name := range missing {
			fmt.Printf("  %s\n", name)
		}
	}
	if undeclared := engine.UndeclaredExports(compiled); len(undeclared) > 0 {
		*failed = true
		fmt.Printf("exported by %s but not declared:\n", wasmFile)
		for _, name := range undeclared {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

func checkSources(srcDir string, failed *bool) error {
	tablePath := filepath.Join(srcDir, "engine", "symbols.go")
	table, err := os.ReadFile(tablePath)
	if err != nil {
		return fmt.Errorf("read symbol table: %w", err)
	}

	declared := make(map[string]string)
	for _, m := range declRe.FindAllStringSubmatch(string(table), -1) {
		declared[m[1]] = m[2]
	}
	if len(declared) == 0 {
		return fmt.Errorf("no symbol declarations found in %s", tablePath)
	}

	used := make(map[string]struct{})
	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// _examples and testdata never reference the table
			if strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".") || d.Name() == "testdata" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || filepath.Clean(path) == filepath.Clean(tablePath) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range useRe.FindAllStringSubmatch(string(data), -1) {
			used[m[1]] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan sources: %w", err)
	}

	var unused []string
	for name, symbol := range declared {
		if _, ok := used[name]; !ok {
			unused = append(unused, fmt.Sprintf("%s (%s)", name, symbol))
		}
	}
	if len(unused) > 0 {
		*failed = true
		sort.Strings(unused)
		fmt.Println("declared but never referenced in the sources:")
		for _, entry := range unused {
			fmt.Printf("  %s\n", entry)
		}
	}
	return nil
}
