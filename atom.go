package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/engine"
)

const kindAtom = "Atom"

// Atom is one particle: a name, a type and the physical constants the
// engine derives from the type (mass, charge, radii, atomic number).
type Atom struct {
	h handle
}

// NewAtom creates an atom with the given name; the type defaults to the
// name.
func NewAtom(name string) (*Atom, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().CString(name)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindAtom, engine.SymAtom, uint64(ref.Ptr))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Atom{h: wrapHandle(raw, kindAtom, false)}, nil
}

// Copy deep-copies the atom.
func (a *Atom) Copy() (*Atom, error) {
	raw, err := copyHandle(&a.h, engine.SymAtomCopy)
	if err != nil {
		return nil, err
	}
	return &Atom{h: wrapHandle(raw, kindAtom, false)}, nil
}

// Mass returns the mass, in atomic mass units.
func (a *Atom) Mass() (float64, error) {
	return getDouble(&a.h, engine.SymAtomMass)
}

// SetMass sets the mass, in atomic mass units.
func (a *Atom) SetMass(mass float64) error {
	return setDouble(&a.h, engine.SymAtomSetMass, mass)
}

// Charge returns the charge, in multiples of the elementary charge.
func (a *Atom) Charge() (float64, error) {
	return getDouble(&a.h, engine.SymAtomCharge)
}

// SetCharge sets the charge, in multiples of the elementary charge.
func (a *Atom) SetCharge(charge float64) error {
	return setDouble(&a.h, engine.SymAtomSetCharge, charge)
}

// Name returns the atom name ("H1", "OW").
func (a *Atom) Name() (string, error) {
	return getGrownString(&a.h, engine.SymAtomName)
}

// SetName sets the atom name.
func (a *Atom) SetName(name string) error {
	return setCString(&a.h, engine.SymAtomSetName, name)
}

// Type returns the atom type ("H", "O").
func (a *Atom) Type() (string, error) {
	return getGrownString(&a.h, engine.SymAtomType)
}

// SetType sets the atom type.
func (a *Atom) SetType(atomType string) error {
	return setCString(&a.h, engine.SymAtomSetType, atomType)
}

// FullName returns the element name for the atom type ("Helium" for "He"),
// or an empty string when the type is not an element.
func (a *Atom) FullName() (string, error) {
	return getGrownString(&a.h, engine.SymAtomFullName)
}

// VdwRadius returns the Van der Waals radius in angstroms, zero when
// unknown.
func (a *Atom) VdwRadius() (float64, error) {
	return getDouble(&a.h, engine.SymAtomVdwRadius)
}

// CovalentRadius returns the covalent radius in angstroms, zero when
// unknown.
func (a *Atom) CovalentRadius() (float64, error) {
	return getDouble(&a.h, engine.SymAtomCovalentRadius)
}

// AtomicNumber returns the element number for the atom type, zero when the
// type is not an element.
func (a *Atom) AtomicNumber() (uint64, error) {
	return getCount(&a.h, engine.SymAtomAtomicNumber)
}

// SetProperty stores a named property; value must be a bool, float64, int,
// string or [3]float64.
func (a *Atom) SetProperty(name string, value any) error {
	return setNamedProperty(&a.h, engine.SymAtomSetProperty, name, value)
}

// Property looks a named property up; a missing name is ok=false.
func (a *Atom) Property(name string) (*Property, bool, error) {
	return getNamedProperty(&a.h, engine.SymAtomGetProperty, name)
}

// ListProperties returns the names of all properties on this atom.
func (a *Atom) ListProperties() ([]string, error) {
	return listNamedProperties(&a.h, engine.SymAtomPropertiesCount, engine.SymAtomListProperties)
}

// Release frees the engine-side atom.
func (a *Atom) Release() error {
	return a.h.release()
}
