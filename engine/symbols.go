package engine

// Declared boundary export table. This is the entire contract with the
// chemfiles artifact: every function the binding may call appears here, and
// cmd/chflcheck keeps the table in lockstep with the artifact in both
// directions.

// Generic functions
const (
	SymVersion               = "chfl_version"
	SymLastError             = "chfl_last_error"
	SymClearErrors           = "chfl_clear_errors"
	SymAddConfiguration      = "chfl_add_configuration"
	SymFree                  = "chfl_free"
	SymInstallWarningHandler = "chfl_goext_install_warning_handler"
)

// Atom functions
const (
	SymAtom                = "chfl_atom"
	SymAtomCopy            = "chfl_atom_copy"
	SymAtomFromFrame       = "chfl_atom_from_frame"
	SymAtomFromTopology    = "chfl_atom_from_topology"
	SymAtomMass            = "chfl_atom_mass"
	SymAtomSetMass         = "chfl_atom_set_mass"
	SymAtomCharge          = "chfl_atom_charge"
	SymAtomSetCharge       = "chfl_atom_set_charge"
	SymAtomName            = "chfl_atom_name"
	SymAtomSetName         = "chfl_atom_set_name"
	SymAtomType            = "chfl_atom_type"
	SymAtomSetType         = "chfl_atom_set_type"
	SymAtomFullName        = "chfl_atom_full_name"
	SymAtomVdwRadius       = "chfl_atom_vdw_radius"
	SymAtomCovalentRadius  = "chfl_atom_covalent_radius"
	SymAtomAtomicNumber    = "chfl_atom_atomic_number"
	SymAtomPropertiesCount = "chfl_atom_properties_count"
	SymAtomListProperties  = "chfl_atom_list_properties"
	SymAtomSetProperty     = "chfl_atom_set_property"
	SymAtomGetProperty     = "chfl_atom_get_property"
)

// Residue functions
const (
	SymResidue                = "chfl_residue"
	SymResidueWithID          = "chfl_residue_with_id"
	SymResidueCopy            = "chfl_residue_copy"
	SymResidueFromTopology    = "chfl_residue_from_topology"
	SymResidueForAtom         = "chfl_residue_for_atom"
	SymResidueAtomsCount      = "chfl_residue_atoms_count"
	SymResidueAtoms           = "chfl_residue_atoms"
	SymResidueContains        = "chfl_residue_contains"
	SymResidueName            = "chfl_residue_name"
	SymResidueID              = "chfl_residue_id"
	SymResidueAddAtom         = "chfl_residue_add_atom"
	SymResiduePropertiesCount = "chfl_residue_properties_count"
	SymResidueListProperties  = "chfl_residue_list_properties"
	SymResidueSetProperty     = "chfl_residue_set_property"
	SymResidueGetProperty     = "chfl_residue_get_property"
)

// Topology functions
const (
	SymTopology               = "chfl_topology"
	SymTopologyCopy           = "chfl_topology_copy"
	SymTopologyFromFrame      = "chfl_topology_from_frame"
	SymTopologyAtomsCount     = "chfl_topology_atoms_count"
	SymTopologyResize         = "chfl_topology_resize"
	SymTopologyAddAtom        = "chfl_topology_add_atom"
	SymTopologyRemove         = "chfl_topology_remove"
	SymTopologyBondsCount     = "chfl_topology_bonds_count"
	SymTopologyAnglesCount    = "chfl_topology_angles_count"
	SymTopologyDihedralsCount = "chfl_topology_dihedrals_count"
	SymTopologyImpropersCount = "chfl_topology_impropers_count"
	SymTopologyBonds          = "chfl_topology_bonds"
	SymTopologyAngles         = "chfl_topology_angles"
	SymTopologyDihedrals      = "chfl_topology_dihedrals"
	SymTopologyImpropers      = "chfl_topology_impropers"
	SymTopologyAddBond        = "chfl_topology_add_bond"
	SymTopologyBondWithOrder  = "chfl_topology_bond_with_order"
	SymTopologyRemoveBond     = "chfl_topology_remove_bond"
	SymTopologyClearBonds     = "chfl_topology_clear_bonds"
	SymTopologyBondOrder      = "chfl_topology_bond_order"
	SymTopologyBondOrders     = "chfl_topology_bond_orders"
	SymTopologyResiduesCount  = "chfl_topology_residues_count"
	SymTopologyAddResidue     = "chfl_topology_add_residue"
	SymTopologyResiduesLinked = "chfl_topology_residues_linked"
)

// UnitCell functions
const (
	SymCell           = "chfl_cell"
	SymCellFromMatrix = "chfl_cell_from_matrix"
	SymCellCopy       = "chfl_cell_copy"
	SymCellFromFrame  = "chfl_cell_from_frame"
	SymCellVolume     = "chfl_cell_volume"
	SymCellLengths    = "chfl_cell_lengths"
	SymCellSetLengths = "chfl_cell_set_lengths"
	SymCellAngles     = "chfl_cell_angles"
	SymCellSetAngles  = "chfl_cell_set_angles"
	SymCellMatrix     = "chfl_cell_matrix"
	SymCellShape      = "chfl_cell_shape"
	SymCellSetShape   = "chfl_cell_set_shape"
	SymCellWrap       = "chfl_cell_wrap"
)

// Frame functions
const (
	SymFrame                = "chfl_frame"
	SymFrameCopy            = "chfl_frame_copy"
	SymFrameAtomsCount      = "chfl_frame_atoms_count"
	SymFramePositions       = "chfl_frame_positions"
	SymFrameVelocities      = "chfl_frame_velocities"
	SymFrameAddVelocities   = "chfl_frame_add_velocities"
	SymFrameHasVelocities   = "chfl_frame_has_velocities"
	SymFrameResize          = "chfl_frame_resize"
	SymFrameAddAtom         = "chfl_frame_add_atom"
	SymFrameRemove          = "chfl_frame_remove"
	SymFrameSetCell         = "chfl_frame_set_cell"
	SymFrameSetTopology     = "chfl_frame_set_topology"
	SymFrameStep            = "chfl_frame_step"
	SymFrameSetStep         = "chfl_frame_set_step"
	SymFrameGuessBonds      = "chfl_frame_guess_bonds"
	SymFrameDistance        = "chfl_frame_distance"
	SymFrameAngle           = "chfl_frame_angle"
	SymFrameDihedral        = "chfl_frame_dihedral"
	SymFrameOutOfPlane      = "chfl_frame_out_of_plane"
	SymFrameAddBond         = "chfl_frame_add_bond"
	SymFrameBondWithOrder   = "chfl_frame_bond_with_order"
	SymFrameRemoveBond      = "chfl_frame_remove_bond"
	SymFrameClearBonds      = "chfl_frame_clear_bonds"
	SymFramePropertiesCount = "chfl_frame_properties_count"
	SymFrameListProperties  = "chfl_frame_list_properties"
	SymFrameSetProperty     = "chfl_frame_set_property"
	SymFrameGetProperty     = "chfl_frame_get_property"
)

// Property functions
const (
	SymPropertyBool        = "chfl_property_bool"
	SymPropertyDouble      = "chfl_property_double"
	SymPropertyString      = "chfl_property_string"
	SymPropertyVector3D    = "chfl_property_vector3d"
	SymPropertyGetKind     = "chfl_property_get_kind"
	SymPropertyGetBool     = "chfl_property_get_bool"
	SymPropertyGetDouble   = "chfl_property_get_double"
	SymPropertyGetString   = "chfl_property_get_string"
	SymPropertyGetVector3D = "chfl_property_get_vector3d"
)

// Selection functions
const (
	SymSelection         = "chfl_selection"
	SymSelectionCopy     = "chfl_selection_copy"
	SymSelectionSize     = "chfl_selection_size"
	SymSelectionString   = "chfl_selection_string"
	SymSelectionEvaluate = "chfl_selection_evaluate"
	SymSelectionMatches  = "chfl_selection_matches"
)

// Trajectory functions
const (
	SymTrajectoryOpen         = "chfl_trajectory_open"
	SymTrajectoryWithFormat   = "chfl_trajectory_with_format"
	SymTrajectoryMemoryReader = "chfl_trajectory_memory_reader"
	SymTrajectoryMemoryWriter = "chfl_trajectory_memory_writer"
	SymTrajectoryPath         = "chfl_trajectory_path"
	SymTrajectoryRead         = "chfl_trajectory_read"
	SymTrajectoryReadStep     = "chfl_trajectory_read_step"
	SymTrajectoryWrite        = "chfl_trajectory_write"
	SymTrajectorySetTopology  = "chfl_trajectory_set_topology"
	SymTrajectoryTopologyFile = "chfl_trajectory_topology_file"
	SymTrajectorySetCell      = "chfl_trajectory_set_cell"
	SymTrajectoryNsteps       = "chfl_trajectory_nsteps"
	SymTrajectoryMemoryBuffer = "chfl_trajectory_memory_buffer"
	SymTrajectoryClose        = "chfl_trajectory_close"
)

// Emscripten runtime exports the scratch and buffer machinery depends on.
const (
	symMalloc       = "malloc"
	symFreeRuntime  = "free"
	symStackSave    = "stackSave"
	symStackRestore = "stackRestore"
	symStackAlloc   = "stackAlloc"
	symInitialize   = "_initialize"
)

// Symbols lists every declared chfl_* boundary function.
var Symbols = []string{
	SymVersion,
	SymLastError,
	SymClearErrors,
	SymAddConfiguration,
	SymFree,
	SymInstallWarningHandler,

	SymAtom,
	SymAtomCopy,
	SymAtomFromFrame,
	SymAtomFromTopology,
	SymAtomMass,
	SymAtomSetMass,
	SymAtomCharge,
	SymAtomSetCharge,
	SymAtomName,
	SymAtomSetName,
	SymAtomType,
	SymAtomSetType,
	SymAtomFullName,
	SymAtomVdwRadius,
	SymAtomCovalentRadius,
	SymAtomAtomicNumber,
	SymAtomPropertiesCount,
	SymAtomListProperties,
	SymAtomSetProperty,
	SymAtomGetProperty,

	SymResidue,
	SymResidueWithID,
	SymResidueCopy,
	SymResidueFromTopology,
	SymResidueForAtom,
	SymResidueAtomsCount,
	SymResidueAtoms,
	SymResidueContains,
	SymResidueName,
	SymResidueID,
	SymResidueAddAtom,
	SymResiduePropertiesCount,
	SymResidueListProperties,
	SymResidueSetProperty,
	SymResidueGetProperty,

	SymTopology,
	SymTopologyCopy,
	SymTopologyFromFrame,
	SymTopologyAtomsCount,
	SymTopologyResize,
	SymTopologyAddAtom,
	SymTopologyRemove,
	SymTopologyBondsCount,
	SymTopologyAnglesCount,
	SymTopologyDihedralsCount,
	SymTopologyImpropersCount,
	SymTopologyBonds,
	SymTopologyAngles,
	SymTopologyDihedrals,
	SymTopologyImpropers,
	SymTopologyAddBond,
	SymTopologyBondWithOrder,
	SymTopologyRemoveBond,
	SymTopologyClearBonds,
	SymTopologyBondOrder,
	SymTopologyBondOrders,
	SymTopologyResiduesCount,
	SymTopologyAddResidue,
	SymTopologyResiduesLinked,

	SymCell,
	SymCellFromMatrix,
	SymCellCopy,
	SymCellFromFrame,
	SymCellVolume,
	SymCellLengths,
	SymCellSetLengths,
	SymCellAngles,
	SymCellSetAngles,
	SymCellMatrix,
	SymCellShape,
	SymCellSetShape,
	SymCellWrap,

	SymFrame,
	SymFrameCopy,
	SymFrameAtomsCount,
	SymFramePositions,
	SymFrameVelocities,
	SymFrameAddVelocities,
	SymFrameHasVelocities,
	SymFrameResize,
	SymFrameAddAtom,
	SymFrameRemove,
	SymFrameSetCell,
	SymFrameSetTopology,
	SymFrameStep,
	SymFrameSetStep,
	SymFrameGuessBonds,
	SymFrameDistance,
	SymFrameAngle,
	SymFrameDihedral,
	SymFrameOutOfPlane,
	SymFrameAddBond,
	SymFrameBondWithOrder,
	SymFrameRemoveBond,
	SymFrameClearBonds,
	SymFramePropertiesCount,
	SymFrameListProperties,
	SymFrameSetProperty,
	SymFrameGetProperty,

	SymPropertyBool,
	SymPropertyDouble,
	SymPropertyString,
	SymPropertyVector3D,
	SymPropertyGetKind,
	SymPropertyGetBool,
	SymPropertyGetDouble,
	SymPropertyGetString,
	SymPropertyGetVector3D,

	SymSelection,
	SymSelectionCopy,
	SymSelectionSize,
	SymSelectionString,
	SymSelectionEvaluate,
	SymSelectionMatches,

	SymTrajectoryOpen,
	SymTrajectoryWithFormat,
	SymTrajectoryMemoryReader,
	SymTrajectoryMemoryWriter,
	SymTrajectoryPath,
	SymTrajectoryRead,
	SymTrajectoryReadStep,
	SymTrajectoryWrite,
	SymTrajectorySetTopology,
	SymTrajectoryTopologyFile,
	SymTrajectorySetCell,
	SymTrajectoryNsteps,
	SymTrajectoryMemoryBuffer,
	SymTrajectoryClose,
}

// RuntimeSymbols lists the emscripten runtime exports the binding requires.
var RuntimeSymbols = []string{
	symMalloc,
	symFreeRuntime,
	symStackSave,
	symStackRestore,
	symStackAlloc,
}
