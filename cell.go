package chemfiles

import (
	"github.com/chemfiles/chemfiles.go/engine"
	"github.com/chemfiles/chemfiles.go/errors"
)

const kindCell = "UnitCell"

// UnitCell is the periodic box of a frame: three lengths in angstroms,
// three angles in degrees, and a shape.
type UnitCell struct {
	h handle
}

// NewUnitCell creates an orthorhombic cell from its lengths, in angstroms.
func NewUnitCell(lengths [3]float64) (*UnitCell, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().Vector3DFrom(lengths)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindCell, engine.SymCell, uint64(ref.Ptr), 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &UnitCell{h: wrapHandle(raw, kindCell, false)}, nil
}

// NewUnitCellWithAngles creates a triclinic cell from lengths in angstroms
// and angles in degrees.
func NewUnitCellWithAngles(lengths, angles [3]float64) (*UnitCell, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		lref, err := s.Scratch().Vector3DFrom(lengths)
		if err != nil {
			return err
		}
		aref, err := s.Scratch().Vector3DFrom(angles)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindCell, engine.SymCell, uint64(lref.Ptr), uint64(aref.Ptr))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &UnitCell{h: wrapHandle(raw, kindCell, false)}, nil
}

// NewUnitCellFromMatrix creates a cell from its 3x3 matrix, row major. The
// matrix must be upper triangular.
func NewUnitCellFromMatrix(matrix [3][3]float64) (*UnitCell, error) {
	var raw uint32
	err := withSession(func(s *engine.Session) error {
		ref, err := s.Scratch().Matrix3From(matrix)
		if err != nil {
			return err
		}
		raw, err = s.CallPtr(kindCell, engine.SymCellFromMatrix, uint64(ref.Ptr))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &UnitCell{h: wrapHandle(raw, kindCell, false)}, nil
}

// Copy deep-copies the cell.
func (c *UnitCell) Copy() (*UnitCell, error) {
	raw, err := copyHandle(&c.h, engine.SymCellCopy)
	if err != nil {
		return nil, err
	}
	return &UnitCell{h: wrapHandle(raw, kindCell, false)}, nil
}

// Shape returns the cell shape.
func (c *UnitCell) Shape() (CellShape, error) {
	var shape CellShape
	err := withSession(func(s *engine.Session) error {
		p, err := c.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Enum()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymCellShape, p, uint64(ref.Ptr)); err != nil {
			return err
		}
		v, err := s.Scratch().GetEnum(ref)
		shape = CellShape(v)
		return err
	})
	return shape, err
}

// SetShape sets the cell shape.
func (c *UnitCell) SetShape(shape CellShape) error {
	switch shape {
	case Orthorhombic, Triclinic, Infinite:
	default:
		return errors.InvalidInput("unknown cell shape %d", shape)
	}
	return callMut(&c.h, engine.SymCellSetShape, uint64(uint32(shape)))
}

// Lengths returns the cell lengths in angstroms.
func (c *UnitCell) Lengths() ([3]float64, error) {
	return c.getVector(engine.SymCellLengths)
}

// SetLengths sets the cell lengths in angstroms.
func (c *UnitCell) SetLengths(lengths [3]float64) error {
	return c.setVector(engine.SymCellSetLengths, lengths)
}

// Angles returns the cell angles in degrees.
func (c *UnitCell) Angles() ([3]float64, error) {
	return c.getVector(engine.SymCellAngles)
}

// SetAngles sets the cell angles in degrees; the engine rejects this on
// non-triclinic cells.
func (c *UnitCell) SetAngles(angles [3]float64) error {
	return c.setVector(engine.SymCellSetAngles, angles)
}

// Volume returns the cell volume in cubic angstroms.
func (c *UnitCell) Volume() (float64, error) {
	return getDouble(&c.h, engine.SymCellVolume)
}

// Matrix returns the 3x3 cell matrix, row major.
func (c *UnitCell) Matrix() ([3][3]float64, error) {
	var out [3][3]float64
	err := withSession(func(s *engine.Session) error {
		p, err := c.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Matrix3()
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymCellMatrix, p, uint64(ref.Ptr)); err != nil {
			return err
		}
		out, err = s.Scratch().GetMatrix3(ref)
		return err
	})
	return out, err
}

// Wrap folds a vector back into the cell, respecting periodic boundaries.
func (c *UnitCell) Wrap(vector [3]float64) ([3]float64, error) {
	var out [3]float64
	err := withSession(func(s *engine.Session) error {
		p, err := c.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Vector3DFrom(vector)
		if err != nil {
			return err
		}
		if err := s.CallStatus(engine.SymCellWrap, p, uint64(ref.Ptr)); err != nil {
			return err
		}
		out, err = s.Scratch().GetVector3D(ref)
		return err
	})
	return out, err
}

// Release frees the engine-side cell.
func (c *UnitCell) Release() error {
	return c.h.release()
}

func (c *UnitCell) getVector(symbol string) ([3]float64, error) {
	var out [3]float64
	err := withSession(func(s *engine.Session) error {
		p, err := c.h.ptr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Vector3D()
		if err != nil {
			return err
		}
		if err := s.CallStatus(symbol, p, uint64(ref.Ptr)); err != nil {
			return err
		}
		out, err = s.Scratch().GetVector3D(ref)
		return err
	})
	return out, err
}

func (c *UnitCell) setVector(symbol string, v [3]float64) error {
	return withSession(func(s *engine.Session) error {
		p, err := c.h.mutPtr()
		if err != nil {
			return err
		}
		ref, err := s.Scratch().Vector3DFrom(v)
		if err != nil {
			return err
		}
		return s.CallStatus(symbol, p, uint64(ref.Ptr))
	})
}
