package engine

import (
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
)

// MissingExports returns the declared boundary functions the compiled
// artifact does not export, sorted by name.
func MissingExports(compiled wazero.CompiledModule) []string {
	exported := compiled.ExportedFunctions()

	var missing []string
	for _, name := range Symbols {
		if _, ok := exported[name]; !ok {
			missing = append(missing, name)
		}
	}
	for _, name := range RuntimeSymbols {
		if _, ok := exported[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// UndeclaredExports returns chfl_* functions the artifact exports but the
// declared table does not know, sorted by name. A non-empty result means
// the table is behind the engine version.
func UndeclaredExports(compiled wazero.CompiledModule) []string {
	declared := make(map[string]struct{}, len(Symbols))
	for _, name := range Symbols {
		declared[name] = struct{}{}
	}

	var undeclared []string
	for name := range compiled.ExportedFunctions() {
		if !strings.HasPrefix(name, "chfl_") {
			continue
		}
		if _, ok := declared[name]; !ok {
			undeclared = append(undeclared, name)
		}
	}
	sort.Strings(undeclared)
	return undeclared
}
