package chemfiles

import (
	"gonum.org/v1/gonum/mat"
)

// Dense-matrix views for analysis code built on gonum. All of these copy;
// nothing aliases engine memory.

// PositionsDense returns the atomic positions as an n-by-3 matrix.
func (f *Frame) PositionsDense() (*mat.Dense, error) {
	vs, err := f.Positions()
	if err != nil {
		return nil, err
	}
	return vectorsDense(vs), nil
}

// VelocitiesDense returns the atomic velocities as an n-by-3 matrix.
func (f *Frame) VelocitiesDense() (*mat.Dense, error) {
	vs, err := f.Velocities()
	if err != nil {
		return nil, err
	}
	return vectorsDense(vs), nil
}

// MatrixDense returns the 3x3 cell matrix as a gonum matrix.
func (c *UnitCell) MatrixDense() (*mat.Dense, error) {
	m, err := c.Matrix()
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		out.SetRow(i, m[i][:])
	}
	return out, nil
}

func vectorsDense(vs [][3]float64) *mat.Dense {
	if len(vs) == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(len(vs), 3, nil)
	for i, v := range vs {
		out.SetRow(i, v[:])
	}
	return out
}
