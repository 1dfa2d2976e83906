package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/engine"
	"github.com/chemfiles/chemfiles.go/errors"
)

const kindResidue = "Residue"

// Residue is a named group of atom indices inside a topology, usually one
// molecule or one amino acid.
type Residue struct {
	h handle
}

// NewResidue creates an empty residue with a name and no id.
func NewResidue(name string) (*Residue, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().CString(name)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindResidue, engine.SymResidue, uint64(ref.Ptr))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Residue{h: wrapHandle(raw, kindResidue, false)}, nil
}

// NewResidueWithID creates an empty residue with a name and a residue id.
func NewResidueWithID(name string, id uint64) (*Residue, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().CString(name)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindResidue, engine.SymResidueWithID, uint64(ref.Ptr), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Residue{h: wrapHandle(raw, kindResidue, false)}, nil
}

// Copy deep-copies the residue; the copy is mutable even when the source
// was extracted from a topology.
func (r *Residue) Copy() (*Residue, error) {
	raw, err := copyHandle(&r.h, engine.SymResidueCopy)
	if err != nil {
		return nil, err
	}
	return &Residue{h: wrapHandle(raw, kindResidue, false)}, nil
}

// Name returns the residue name.
func (r *Residue) Name() (string, error) {
	return getGrownString(&r.h, engine.SymResidueName)
}

// ID returns the residue id. Residues created without one report ok=false;
// the engine signals that case with its generic error code.
func (r *Residue) ID() (uint64, bool, error) {
	var id uint64
	err := withSession(func(s *engine.Session) error {
		p, err := r.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().U64()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymResidueID, p, uint64(ref.Ptr)); err != nil {
			return err
		}
		id, err = s.Scratch().GetU64(ref)
		return err
	})
	if errors.IsStatus(err, errors.StatusGenericError) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// Size returns the number of atoms in the residue.
func (r *Residue) Size() (uint64, error) {
	return getCount(&r.h, engine.SymResidueAtomsCount)
}

// Contains reports whether the atom at index i belongs to the residue.
func (r *Residue) Contains(i uint64) (bool, error) {
	return getFlag(&r.h, engine.SymResidueContains, i)
}

// Atoms returns the indices of the atoms in the residue.
func (r *Residue) Atoms() ([]uint64, error) {
	var out []uint64
	err := withSession(func(s *engine.Session) error {
		p, err := r.h.ptr()
		if err != nil {
			return err
		}
		countRef, err := s.Scratch().U64()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymResidueAtomsCount, p, uint64(countRef.Ptr)); err != nil {
			return err
		}
		n, err := s.Scratch().GetU64(countRef)
		if err != nil || n == 0 {
			return err
		}
		arr, err := s.Scratch().U64s(uint32(n))
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymResidueAtoms, p, uint64(arr.Ptr), n); err != nil {
			return err
		}
		out, err = s.Scratch().GetU64s(arr)
		return err
	})
	return out, err
}

// AddAtom adds the atom at index i to the residue.
func (r *Residue) AddAtom(i uint64) error {
	return callMut(&r.h, engine.SymResidueAddAtom, i)
}

// SetProperty stores a named property; value must be a bool, float64, int,
// string or [3]float64.
func (r *Residue) SetProperty(name string, value any) error {
	return setNamedProperty(&r.h, engine.SymResidueSetProperty, name, value)
}

// Property looks a named property up; a missing name is ok=false.
func (r *Residue) Property(name string) (*Property, bool, error) {
	return getNamedProperty(&r.h, engine.SymResidueGetProperty, name)
}

// ListProperties returns the names of all properties on this residue.
func (r *Residue) ListProperties() ([]string, error) {
	return listNamedProperties(&r.h, engine.SymResiduePropertiesCount, engine.SymResidueListProperties)
}

// Release frees the engine-side residue.
func (r *Residue) Release() error {
	return r.h.release()
}
