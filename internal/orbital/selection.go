package orbital

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validate checks that c names both an orbital mode and an atom mode, in that
// order.
func (c Criteria) Validate() error {
	if !c.AllOrbitals && len(c.Orbitals) == 0 {
		return ErrNoOrbitalSelection
	}
	if !c.AllAtoms && len(c.Atoms) == 0 {
		return ErrNoAtomSelection
	}
	return nil
}

// AtomsOf returns the distinct atom numbers declared for element, in the
// order they first appear.
func AtomsOf(descs []Descriptor, element string) []int {
	seen := map[int]bool{}
	var out []int
	for _, d := range descs {
		if !d.HasAtom || d.Element != element || seen[d.AtomNumber] {
			continue
		}
		seen[d.AtomNumber] = true
		out = append(out, d.AtomNumber)
	}
	return out
}

// Resolve returns the orbital indices selected by c, deduplicated and in
// descriptor order. With explicit orbitals, a descriptor is selected by the
// first substring it contains; later substrings are not consulted for it.
func Resolve(descs []Descriptor, c Criteria) ([]int, error) {
	atoms := c.Atoms
	if c.AllAtoms {
		atoms = AtomsOf(descs, c.Element)
		if len(atoms) == 0 {
			return nil, fmt.Errorf("%w for element %s", ErrNoAtoms, c.Element)
		}
	}
	atomSet := make(map[int]bool, len(atoms))
	for _, a := range atoms {
		atomSet[a] = true
	}

	lower := cases.Lower(language.Und)
	wanted := make([]string, 0, len(c.Orbitals))
	for _, o := range c.Orbitals {
		wanted = append(wanted, lower.String(o))
	}

	seen := map[int]bool{}
	var out []int
	for _, d := range descs {
		if !d.HasAtom || d.Element != c.Element || !atomSet[d.AtomNumber] {
			continue
		}
		if !c.AllOrbitals && !matchesAny(lower.String(d.OrbitalType), wanted) {
			continue
		}
		if seen[d.Index] {
			continue
		}
		seen[d.Index] = true
		out = append(out, d.Index)
	}

	if len(out) == 0 {
		return nil, ErrNoOrbitals
	}
	return out, nil
}

// Selected returns the descriptors behind indices, in descriptor order.
func Selected(descs []Descriptor, indices []int) []Descriptor {
	want := make(map[int]bool, len(indices))
	for _, i := range indices {
		want[i] = true
	}
	var out []Descriptor
	for _, d := range descs {
		if want[d.Index] {
			out = append(out, d)
			delete(want, d.Index)
		}
	}
	return out
}

func matchesAny(orbitalType string, wanted []string) bool {
	for _, w := range wanted {
		if strings.Contains(orbitalType, w) {
			return true
		}
	}
	return false
}
