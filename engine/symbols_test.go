package engine

import (
	"strings"
	"testing"
)

func TestSymbolTableWellFormed(t *testing.T) {
	seen := make(map[string]bool, len(Symbols))
	for _, name := range Symbols {
		if !strings.HasPrefix(name, "chfl_") {
			t.Errorf("symbol %q does not carry the chfl_ prefix", name)
		}
		if seen[name] {
			t.Errorf("symbol %q declared twice", name)
		}
		seen[name] = true
	}
}

func TestRuntimeSymbols(t *testing.T) {
	required := map[string]bool{
		"malloc":       false,
		"free":         false,
		"stackSave":    false,
		"stackRestore": false,
		"stackAlloc":   false,
	}
	for _, name := range RuntimeSymbols {
		if _, ok := required[name]; !ok {
			t.Errorf("unexpected runtime symbol %q", name)
			continue
		}
		required[name] = true
	}
	for name, found := range required {
		if !found {
			t.Errorf("runtime symbol %q missing", name)
		}
	}
}

func TestEveryFacadeSymbolDeclared(t *testing.T) {
	declared := make(map[string]bool, len(Symbols))
	for _, name := range Symbols {
		declared[name] = true
	}

	// Spot-check one symbol per facade; the full cross-check against the
	// artifact lives in cmd/chflcheck.
	for _, name := range []string{
		SymAtomMass,
		SymFramePositions,
		SymTopologyBonds,
		SymCellVolume,
		SymResidueID,
		SymPropertyGetKind,
		SymSelectionEvaluate,
		SymTrajectoryRead,
	} {
		if !declared[name] {
			t.Errorf("symbol %q not in the declared table", name)
		}
	}
}
