package chemfiles

// CellShape is the engine's unit-cell shape enum.
type CellShape int32

const (
	// Orthorhombic cells have all angles at 90 degrees.
	Orthorhombic CellShape = 0
	// Triclinic cells have arbitrary angles.
	Triclinic CellShape = 1
	// Infinite cells have no periodic boundaries.
	Infinite CellShape = 2
)

func (c CellShape) String() string {
	switch c {
	case Orthorhombic:
		return "orthorhombic"
	case Triclinic:
		return "triclinic"
	case Infinite:
		return "infinite"
	default:
		return "unknown"
	}
}

// PropertyKind is the engine's property tagged-union discriminant.
type PropertyKind int32

const (
	PropertyBool     PropertyKind = 0
	PropertyDouble   PropertyKind = 1
	PropertyString   PropertyKind = 2
	PropertyVector3D PropertyKind = 3
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyBool:
		return "bool"
	case PropertyDouble:
		return "double"
	case PropertyString:
		return "string"
	case PropertyVector3D:
		return "vector3d"
	default:
		return "unknown"
	}
}

// BondOrder is the engine's bond order enum.
type BondOrder int32

const (
	BondUnknown    BondOrder = 0
	BondSingle     BondOrder = 1
	BondDouble     BondOrder = 2
	BondTriple     BondOrder = 3
	BondQuadruple  BondOrder = 4
	BondQuintuplet BondOrder = 5
	BondAmide      BondOrder = 254
	BondAromatic   BondOrder = 255
)

func (b BondOrder) String() string {
	switch b {
	case BondUnknown:
		return "unknown"
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondQuadruple:
		return "quadruple"
	case BondQuintuplet:
		return "quintuplet"
	case BondAmide:
		return "amide"
	case BondAromatic:
		return "aromatic"
	default:
		return "invalid"
	}
}
