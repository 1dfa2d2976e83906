package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/engine"
	"github.com/chemfiles/chemfiles.go/errors"
	"github.com/chemfiles/chemfiles.go/scratch"
)

const kindFrame = "Frame"

// Frame is one trajectory snapshot: positions, optional velocities, a unit
// cell and a topology, plus the simulation step it was taken at.
type Frame struct {
	h handle
}

// NewFrame creates an empty frame.
func NewFrame() (*Frame, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		var err error
		raw, err = s.CallPtr(kindFrame, engine.SymFrame)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Frame{h: wrapHandle(raw, kindFrame, false)}, nil
}

// Copy deep-copies the frame.
func (f *Frame) Copy() (*Frame, error) {
	raw, err := copyHandle(&f.h, engine.SymFrameCopy)
	if err != nil {
		return nil, err
	}
	return &Frame{h: wrapHandle(raw, kindFrame, false)}, nil
}

// Size returns the number of atoms.
func (f *Frame) Size() (uint64, error) {
	return getCount(&f.h, engine.SymFrameAtomsCount)
}

// Resize changes the number of atoms, preserving existing data. New
// positions are zeroed.
func (f *Frame) Resize(count uint64) error {
	return callMut(&f.h, engine.SymFrameResize, count)
}

// AddAtom appends a copy of atom with a position, in angstroms.
func (f *Frame) AddAtom(atom *Atom, position [3]float64) error {
	return f.addAtom(atom, position, nil)
}

// AddAtomWithVelocity appends a copy of atom with a position in angstroms
// and a velocity in angstroms per femtosecond.
func (f *Frame) AddAtomWithVelocity(atom *Atom, position, velocity [3]float64) error {
	return f.addAtom(atom, position, &velocity)
}

func (f *Frame) addAtom(atom *Atom, position [3]float64, velocity *[3]float64) error {
	return withSession(func(s *engine.Session) error {
		p, err := f.h.mutPtr()
		if err != nil {
			return err
		}
		ap, err := atom.h.ptr()
		if err != nil {
			return err
		}
		posRef, err := s.Scratch().Vector3DFrom(position)
		if err != nil {
			return err
		}
		var velPtr uint64
		if velocity != nil {
			velRef, err := s.Scratch().Vector3DFrom(*velocity)
			if err != nil {
				return err
			}
			velPtr = uint64(velRef.Ptr)
		}
		return s.CallStatus(engine.SymFrameAddAtom, p, ap, uint64(posRef.Ptr), velPtr)
	})
}

// Remove deletes the atom at index i; indices above i shift down by one.
func (f *Frame) Remove(i uint64) error {
	return callMut(&f.h, engine.SymFrameRemove, i)
}

// Atom extracts the atom at index i. The handle shares storage with the
// frame; releasing it leaves the frame untouched, and it is invalidated
// when the frame is resized.
func (f *Frame) Atom(i uint64) (*Atom, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		p, err := f.h.ptr()
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindAtom, engine.SymAtomFromFrame, p, i)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Atom{h: wrapHandle(raw, kindAtom, false)}, nil
}

// Positions returns a copy of the atomic positions, in angstroms.
func (f *Frame) Positions() ([][3]float64, error) {
	return f.readVectors(engine.SymFramePositions)
}

// SetPositions overwrites the atomic positions. The slice length must match
// the frame size.
func (f *Frame) SetPositions(positions [][3]float64) error {
	return f.writeVectors(engine.SymFramePositions, positions)
}

// HasVelocities reports whether the frame stores velocities.
func (f *Frame) HasVelocities() (bool, error) {
	return getFlag(&f.h, engine.SymFrameHasVelocities)
}

// AddVelocities adds zeroed velocity storage; a no-op when velocities are
// already present.
func (f *Frame) AddVelocities() error {
	return callMut(&f.h, engine.SymFrameAddVelocities)
}

// Velocities returns a copy of the atomic velocities, in angstroms per
// femtosecond.
func (f *Frame) Velocities() ([][3]float64, error) {
	return f.readVectors(engine.SymFrameVelocities)
}

// SetVelocities overwrites the atomic velocities. The slice length must
// match the frame size.
func (f *Frame) SetVelocities(velocities [][3]float64) error {
	return f.writeVectors(engine.SymFrameVelocities, velocities)
}

// Cell extracts the frame's unit cell. The handle shares storage with the
// frame: changes through it are visible in the frame.
func (f *Frame) Cell() (*UnitCell, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		p, err := f.h.ptr()
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindCell, engine.SymCellFromFrame, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &UnitCell{h: wrapHandle(raw, kindCell, false)}, nil
}

// SetCell copies a unit cell into the frame.
func (f *Frame) SetCell(cell *UnitCell) error {
	return withSession(func(s *engine.Session) error {
		p, err := f.h.mutPtr()
		if err != nil {
			return err
		}
		cp, err := cell.h.ptr()
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymFrameSetCell, p, cp)
	})
}

// Topology extracts the frame's topology as a read-only handle sharing
// storage with the frame. Copy it to get a mutable topology.
func (f *Frame) Topology() (*Topology, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		p, err := f.h.ptr()
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindTopology, engine.SymTopologyFromFrame, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Topology{h: wrapHandle(raw, kindTopology, true)}, nil
}

// SetTopology copies a topology into the frame; its size must match the
// frame size.
func (f *Frame) SetTopology(topology *Topology) error {
	return withSession(func(s *engine.Session) error {
		p, err := f.h.mutPtr()
		if err != nil {
			return err
		}
		tp, err := topology.h.ptr()
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymFrameSetTopology, p, tp)
	})
}

// Step returns the simulation step the frame was taken at.
func (f *Frame) Step() (uint64, error) {
	return getCount(&f.h, engine.SymFrameStep)
}

// SetStep sets the simulation step.
func (f *Frame) SetStep(step uint64) error {
	return callMut(&f.h, engine.SymFrameSetStep, step)
}

// GuessBonds detects bonds, angles and dihedrals from interatomic
// distances and covalent radii.
func (f *Frame) GuessBonds() error {
	return callMut(&f.h, engine.SymFrameGuessBonds)
}

// Distance returns the distance between two atoms in angstroms, respecting
// periodic boundary conditions.
func (f *Frame) Distance(i, j uint64) (float64, error) {
	return getDouble(&f.h, engine.SymFrameDistance, i, j)
}

// Angle returns the angle formed by three atoms, in radians.
func (f *Frame) Angle(i, j, k uint64) (float64, error) {
	return getDouble(&f.h, engine.SymFrameAngle, i, j, k)
}

// Dihedral returns the dihedral angle formed by four atoms, in radians.
func (f *Frame) Dihedral(i, j, k, m uint64) (float64, error) {
	return getDouble(&f.h, engine.SymFrameDihedral, i, j, k, m)
}

// OutOfPlane returns the distance from atom k to the plane of atoms i, j
// and m, in angstroms.
func (f *Frame) OutOfPlane(i, j, k, m uint64) (float64, error) {
	return getDouble(&f.h, engine.SymFrameOutOfPlane, i, j, k, m)
}

// AddBond adds a bond between the atoms at indices i and j.
func (f *Frame) AddBond(i, j uint64) error {
	return callMut(&f.h, engine.SymFrameAddBond, i, j)
}

// AddBondWithOrder adds a bond with an explicit bond order.
func (f *Frame) AddBondWithOrder(i, j uint64, order BondOrder) error {
	return callMut(&f.h, engine.SymFrameBondWithOrder, i, j, uint64(uint32(order)))
}

// RemoveBond removes the bond between the atoms at indices i and j, if any.
func (f *Frame) RemoveBond(i, j uint64) error {
	return callMut(&f.h, engine.SymFrameRemoveBond, i, j)
}

// ClearBonds removes all bonds, angles and dihedrals.
func (f *Frame) ClearBonds() error {
	return callMut(&f.h, engine.SymFrameClearBonds)
}

// SetProperty stores a named property; value must be a bool, float64, int,
// string or [3]float64.
func (f *Frame) SetProperty(name string, value any) error {
	return setNamedProperty(&f.h, engine.SymFrameSetProperty, name, value)
}

// Property looks a named property up; a missing name is ok=false.
func (f *Frame) Property(name string) (*Property, bool, error) {
	return getNamedProperty(&f.h, engine.SymFrameGetProperty, name)
}

// ListProperties returns the names of all properties on this frame.
func (f *Frame) ListProperties() ([]string, error) {
	return listNamedProperties(&f.h, engine.SymFramePropertiesCount, engine.SymFrameListProperties)
}

// Release frees the engine-side frame.
func (f *Frame) Release() error {
	return f.h.release()
}

// readVectors decodes the engine's view of a per-atom 3-vector array into a
// host copy. symbol yields a pointer into engine memory plus the count.
func (f *Frame) readVectors(symbol string) ([][3]float64, error) {
	var out [][3]float64
	err := withSession(func(s *engine.Session) error {
		p, err := f.h.ptr()
		if err != nil {
			return err
		}
		data, n, err := vectorView(s, symbol, p)
		if err != nil {
			return err
		}
		out = make([][3]float64, n)
		for i := range out {
			base := data + uint32(i)*scratch.SizeVector3D
			for j := 0; j < 3; j++ {
				v, err := s.Memory().ReadF64(base + uint32(j)*scratch.SizeDouble)
				if err != nil {
					return err
				}
				out[i][j] = v
			}
		}
		return nil
	})
	return out, err
}

// writeVectors copies values over the engine's per-atom 3-vector array.
func (f *Frame) writeVectors(symbol string, values [][3]float64) error {
	return withSession(func(s *engine.Session) error {
		p, err := f.h.mutPtr()
		if err != nil {
			return err
		}
		data, n, err := vectorView(s, symbol, p)
		if err != nil {
			return err
		}
		if uint64(len(values)) != n {
			return errors.InvalidInput("got %d vectors for a frame of size %d", len(values), n)
		}
		for i, v := range values {
			base := data + uint32(i)*scratch.SizeVector3D
			for j := 0; j < 3; j++ {
				if err := s.Memory().WriteF64(base+uint32(j)*scratch.SizeDouble, v[j]); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func vectorView(s *engine.Session, symbol string, frame uint64) (uint32, uint64, error) {
	dataRef, err := s.Scratch().Ptr()
	if err != nil {
		return 0, 0, err
	}
	sizeRef, err := s.Scratch().U64()
	if err != nil {
		return 0, 0, err
	}
	if err := s.CallStatus(symbol, frame, uint64(dataRef.Ptr), uint64(sizeRef.Ptr)); err != nil {
		return 0, 0, err
	}
	data, err := s.Scratch().GetPtr(dataRef)
	if err != nil {
		return 0, 0, err
	}
	n, err := s.Scratch().GetU64(sizeRef)
	if err != nil {
		return 0, 0, err
	}
	return data, n, nil
}
