package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/engine"
)

const kindTopology = "Topology"

// Topology is the connectivity of a frame: atoms, bonds and the angles,
// dihedrals and impropers the engine derives from them, plus residues.
type Topology struct {
	h handle
}

// NewTopology creates an empty topology.
func NewTopology() (*Topology, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		var err error
		raw, err = s.CallPtr(kindTopology, engine.SymTopology)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Topology{h: wrapHandle(raw, kindTopology, false)}, nil
}

// Copy deep-copies the topology; the copy is mutable even when the source
// was extracted from a frame.
func (t *Topology) Copy() (*Topology, error) {
	raw, err := copyHandle(&t.h, engine.SymTopologyCopy)
	if err != nil {
		return nil, err
	}
	return &Topology{h: wrapHandle(raw, kindTopology, false)}, nil
}

// Size returns the number of atoms.
func (t *Topology) Size() (uint64, error) {
	return getCount(&t.h, engine.SymTopologyAtomsCount)
}

// Resize changes the number of atoms; new atoms are empty.
func (t *Topology) Resize(count uint64) error {
	return callMut(&t.h, engine.SymTopologyResize, count)
}

// AddAtom appends a copy of atom at the end of the topology.
func (t *Topology) AddAtom(atom *Atom) error {
	return withSession(func(s *engine.Session) error {
		p, err := t.h.mutPtr()
		if err != nil {
			return err
		}
		ap, err := atom.h.ptr()
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymTopologyAddAtom, p, ap)
	})
}

// Remove deletes the atom at index i; indices above i shift down by one.
func (t *Topology) Remove(i uint64) error {
	return callMut(&t.h, engine.SymTopologyRemove, i)
}

// Atom extracts the atom at index i. The handle shares storage with the
// topology; releasing it leaves the topology untouched, and it is
// invalidated when the topology is resized. Atoms extracted from a const
// topology are const themselves.
func (t *Topology) Atom(i uint64) (*Atom, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindAtom, engine.SymAtomFromTopology, p, i)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Atom{h: wrapHandle(raw, kindAtom, t.h.frozen)}, nil
}

// BondsCount returns the number of bonds.
func (t *Topology) BondsCount() (uint64, error) {
	return getCount(&t.h, engine.SymTopologyBondsCount)
}

// AnglesCount returns the number of angles.
func (t *Topology) AnglesCount() (uint64, error) {
	return getCount(&t.h, engine.SymTopologyAnglesCount)
}

// DihedralsCount returns the number of dihedral angles.
func (t *Topology) DihedralsCount() (uint64, error) {
	return getCount(&t.h, engine.SymTopologyDihedralsCount)
}

// ImpropersCount returns the number of improper dihedral angles.
func (t *Topology) ImpropersCount() (uint64, error) {
	return getCount(&t.h, engine.SymTopologyImpropersCount)
}

// Bonds returns all bonds as pairs of atom indices.
func (t *Topology) Bonds() ([][2]uint64, error) {
	flat, n, err := t.readIndexTuples(engine.SymTopologyBondsCount, engine.SymTopologyBonds, 2)
	if err != nil {
		return nil, err
	}
	out := make([][2]uint64, n)
	for i := range out {
		out[i] = [2]uint64{flat[2*i], flat[2*i+1]}
	}
	return out, nil
}

// Angles returns all angles as triples of atom indices.
func (t *Topology) Angles() ([][3]uint64, error) {
	flat, n, err := t.readIndexTuples(engine.SymTopologyAnglesCount, engine.SymTopologyAngles, 3)
	if err != nil {
		return nil, err
	}
	out := make([][3]uint64, n)
	for i := range out {
		out[i] = [3]uint64{flat[3*i], flat[3*i+1], flat[3*i+2]}
	}
	return out, nil
}

// Dihedrals returns all dihedral angles as quadruples of atom indices.
func (t *Topology) Dihedrals() ([][4]uint64, error) {
	flat, n, err := t.readIndexTuples(engine.SymTopologyDihedralsCount, engine.SymTopologyDihedrals, 4)
	if err != nil {
		return nil, err
	}
	return packQuads(flat, n), nil
}

// Impropers returns all improper dihedral angles as quadruples of atom
// indices, the central atom first.
func (t *Topology) Impropers() ([][4]uint64, error) {
	flat, n, err := t.readIndexTuples(engine.SymTopologyImpropersCount, engine.SymTopologyImpropers, 4)
	if err != nil {
		return nil, err
	}
	return packQuads(flat, n), nil
}

// AddBond adds a bond between the atoms at indices i and j.
func (t *Topology) AddBond(i, j uint64) error {
	return callMut(&t.h, engine.SymTopologyAddBond, i, j)
}

// AddBondWithOrder adds a bond with an explicit bond order.
func (t *Topology) AddBondWithOrder(i, j uint64, order BondOrder) error {
	return callMut(&t.h, engine.SymTopologyBondWithOrder, i, j, uint64(uint32(order)))
}

// RemoveBond removes the bond between the atoms at indices i and j, if any.
func (t *Topology) RemoveBond(i, j uint64) error {
	return callMut(&t.h, engine.SymTopologyRemoveBond, i, j)
}

// ClearBonds removes all bonds, angles and dihedrals.
func (t *Topology) ClearBonds() error {
	return callMut(&t.h, engine.SymTopologyClearBonds)
}

// BondOrder returns the order of the bond between the atoms at indices i
// and j.
func (t *Topology) BondOrder(i, j uint64) (BondOrder, error) {
	var order BondOrder
	err := withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Enum()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymTopologyBondOrder, p, i, j, uint64(ref.Ptr)); err != nil {
			return err
		}
		v, err := s.Scratch().GetEnum(ref)
		order = BondOrder(v)
		return err
	})
	return order, err
}

// BondOrders returns the orders of all bonds, in Bonds order.
func (t *Topology) BondOrders() ([]BondOrder, error) {
	var out []BondOrder
	err := withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		countRef, err := s.Scratch().U64()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymTopologyBondsCount, p, uint64(countRef.Ptr)); err != nil {
			return err
		}
		n, err := s.Scratch().GetU64(countRef)
		if err != nil || n == 0 {
			return err
		}
		arr, err := s.Scratch().Enums(uint32(n))
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymTopologyBondOrders, p, uint64(arr.Ptr), n); err != nil {
			return err
		}
		values, err := s.Scratch().GetEnums(arr)
		if err != nil {
			return err
		}
		out = make([]BondOrder, len(values))
		for i, v := range values {
			out[i] = BondOrder(v)
		}
		return nil
	})
	return out, err
}

// ResiduesCount returns the number of residues.
func (t *Topology) ResiduesCount() (uint64, error) {
	return getCount(&t.h, engine.SymTopologyResiduesCount)
}

// Residue extracts the residue at index i. The handle is read-only and
// shares storage with the topology.
func (t *Topology) Residue(i uint64) (*Residue, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindResidue, engine.SymResidueFromTopology, p, i)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Residue{h: wrapHandle(raw, kindResidue, true)}, nil
}

// ResidueForAtom extracts the residue containing the atom at index i;
// ok=false when the atom belongs to no residue. The handle is read-only.
func (t *Topology) ResidueForAtom(i uint64) (*Residue, bool, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		res, err := s.Call(engine.SymResidueForAtom, p, i)
		if err != nil {
			return err
		}
		raw = uint32(res[0])
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if raw == 0 {
		return nil, false, nil
	}
	return &Residue{h: wrapHandle(raw, kindResidue, true)}, true, nil
}

// AddResidue copies a residue into the topology. The engine rejects
// residues overlapping an existing one.
func (t *Topology) AddResidue(residue *Residue) error {
	return withSession(func(s *engine.Session) error {
		p, err := t.h.mutPtr()
		if err != nil {
			return err
		}
		rp, err := residue.h.ptr()
		if err != nil {
			return err
		}
		return s.CallStatus(engine.SymTopologyAddResidue, p, rp)
	})
}

// ResiduesLinked reports whether two residues are connected by a bond.
func (t *Topology) ResiduesLinked(first, second *Residue) (bool, error) {
	var linked bool
	err := withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		fp, err := first.h.ptr()
		if err != nil {
			return err
		}
		sp, err := second.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Bool()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymTopologyResiduesLinked, p, fp, sp, uint64(ref.Ptr)); err != nil {
			return err
		}
		linked, err = s.Scratch().GetBool(ref)
		return err
	})
	return linked, err
}

// Release frees the engine-side topology.
func (t *Topology) Release() error {
	return t.h.release()
}

// readIndexTuples fetches a counted flat buffer of index tuples: count via
// countSymbol, then width*count 64-bit indices via dataSymbol.
func (t *Topology) readIndexTuples(countSymbol, dataSymbol string, width uint32) ([]uint64, uint64, error) {
	var (
		flat []uint64
		n    uint64
	)
	err := withSession(func(s *engine.Session) error {
		p, err := t.h.ptr()
		if err != nil {
			return err
		}
		countRef, err := s.Scratch().U64()
		if err != nil {
			return err
		}
		if err := s.CallStatus(countSymbol, p, uint64(countRef.Ptr)); err != nil {
			return err
		}
		n, err = s.Scratch().GetU64(countRef)
		if err != nil || n == 0 {
			return err
		}
		arr, err := s.Scratch().U64s(width * uint32(n))
		if err != nil {
			return err
		}
		if err := s.CallStatus(dataSymbol, p, uint64(arr.Ptr), n); err != nil {
			return err
		}
		flat, err = s.Scratch().GetU64s(arr)
		return err
	})
	return flat, n, err
}

func packQuads(flat []uint64, n uint64) [][4]uint64 {
	out := make([][4]uint64, n)
	for i := range out {
		out[i] = [4]uint64{flat[4*i], flat[4*i+1], flat[4*i+2], flat[4*i+3]}
	}
	return out
}
