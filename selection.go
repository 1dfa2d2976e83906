package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/engine"
)

const kindSelection = "Selection"

// Selection is a compiled selection-language expression such as
// "name O and z > 2.5". Evaluating it against a frame yields the matching
// atom index tuples.
type Selection struct {
	h handle
}

// Match is one result of a selection evaluation: as many atom indices as
// the selection context has variables (1 for "atoms", 2 for "pairs" or
// "bonds", up to 4 for "dihedrals").
type Match struct {
	Atoms []uint64
}

// NewSelection compiles a selection expression.
func NewSelection(expression string) (*Selection, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().CString(expression)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindSelection, engine.SymSelection, uint64(ref.Ptr))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Selection{h: wrapHandle(raw, kindSelection, false)}, nil
}

// Copy duplicates the selection, without the state of past evaluations.
func (sel *Selection) Copy() (*Selection, error) {
	raw, err := copyHandle(&sel.h, engine.SymSelectionCopy)
	if err != nil {
		return nil, err
	}
	return &Selection{h: wrapHandle(raw, kindSelection, false)}, nil
}

// Size returns the number of atoms per match: the selection context arity.
func (sel *Selection) Size() (uint64, error) {
	return getCount(&sel.h, engine.SymSelectionSize)
}

// Expression returns the selection string used to build this selection.
func (sel *Selection) Expression() (string, error) {
	return getGrownString(&sel.h, engine.SymSelectionString)
}

// Evaluate runs the selection against a frame and returns every match.
func (sel *Selection) Evaluate(frame *Frame) ([]Match, error) {
	var out []Match
	err := withSession(func(s *engine.Session) error {
		p, err := sel.h.ptr()
		if err != nil {
			return err
		}
		fp, err := frame.h.ptr()
		if err != nil {
			return err
		}
		countRef, err := s.Scratch().U64()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymSelectionEvaluate, p, fp, uint64(countRef.Ptr)); err != nil {
			return err
		}
		n, err := s.Scratch().GetU64(countRef)
		if err != nil {
			return err
		}
		out = make([]Match, 0, n)
		if n == 0 {
			return nil
		}

		// chfl_match is five 64-bit words: the tuple size then four
		// atom indices.
		const matchWords = 5
		arr, err := s.Scratch().U64s(matchWords * uint32(n))
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymSelectionMatches, p, uint64(arr.Ptr), n); err != nil {
			return err
		}
		flat, err := s.Scratch().GetU64s(arr)
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			rec := flat[i*matchWords : (i+1)*matchWords]
			size := rec[0]
			if size > 4 {
				size = 4
			}
			atoms := make([]uint64, size)
			copy(atoms, rec[1:1+size])
			out = append(out, Match{Atoms: atoms})
		}
		return nil
	})
	return out, err
}

// Release frees the engine-side selection.
func (sel *Selection) Release() error {
	return sel.h.release()
}
