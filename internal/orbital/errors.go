package orbital

import "errors"

var (
	// ErrNoOrbitalSelection indicates neither explicit orbitals nor "all orbitals" were requested.
	ErrNoOrbitalSelection = errors.New("no orbital selection")
	// ErrNoAtomSelection indicates neither explicit atoms nor "all atoms" were requested.
	ErrNoAtomSelection = errors.New("no atom selection")
	// ErrNoAtoms indicates the requested element does not occur in the metadata.
	ErrNoAtoms = errors.New("no atoms found")
	// ErrNoOrbitals indicates the criteria resolved to an empty index set.
	ErrNoOrbitals = errors.New("no orbitals matched")
)
