package orbital

// DefaultHeader is the line OpenMX prints right before the orbital table in
// System.Name.out.
const DefaultHeader = "The sequence for the orbital weights in System.Name.unfold_orbup(dn)"

// Descriptor describes one orbital row of the metadata table.
type Descriptor struct {
	Index       int    // 1-based; column position in the weight file
	AtomNumber  int    // valid only when HasAtom is set
	Element     string // valid only when HasAtom is set
	HasAtom     bool
	N           string
	OrbitalType string
}

// Criteria selects orbitals out of a descriptor list.
type Criteria struct {
	Element     string
	Atoms       []int
	AllAtoms    bool
	Orbitals    []string
	AllOrbitals bool
}
