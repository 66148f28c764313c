// Package orbital reads the orbital table of an unfolding run and resolves
// user selections against it.
package orbital

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/kamusis/orbweight/internal/datafile"
)

var elementRe = regexp.MustCompile(`^[A-Z][a-z]?$`)

// atomContext carries the most recently declared atom across table rows.
type atomContext struct {
	number  int
	element string
	set     bool
}

// ParseFile opens path (plain or gzip) and parses it with Parse.
func ParseFile(path, header string) ([]Descriptor, error) {
	rc, err := datafile.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	descs, err := Parse(rc, header)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return descs, nil
}

// Parse scans r for header and returns one Descriptor per orbital row that
// follows it. Lines before the header are ignored; a missing header yields an
// empty result. An empty header means DefaultHeader.
func Parse(r io.Reader, header string) ([]Descriptor, error) {
	if header == "" {
		header = DefaultHeader
	}

	out := []Descriptor{}
	var atom atomContext
	found := false

	scanner := datafile.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, header) {
			found = true
			continue
		}
		if !found {
			continue
		}
		if d, ok := classifyLine(strings.Fields(line), &atom); ok {
			out = append(out, d)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// classifyLine turns one tokenized table row into a Descriptor. It reports
// false for rows that are not orbital entries. A row that opens a new atom
// updates atom before the descriptor is built.
func classifyLine(fields []string, atom *atomContext) (Descriptor, bool) {
	if len(fields) == 0 || !isDigits(fields[0]) {
		return Descriptor{}, false
	}
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return Descriptor{}, false
	}

	rest := fields[1:]
	if len(fields) >= 3 && isDigits(fields[1]) && elementRe.MatchString(fields[2]) {
		number, err := strconv.Atoi(fields[1])
		if err != nil {
			return Descriptor{}, false
		}
		*atom = atomContext{number: number, element: fields[2], set: true}
		rest = fields[3:]
	}
	if len(rest) == 0 {
		return Descriptor{}, false
	}

	return Descriptor{
		Index:       index,
		AtomNumber:  atom.number,
		Element:     atom.element,
		HasAtom:     atom.set,
		N:           rest[0],
		OrbitalType: strings.Join(rest[1:], " "),
	}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
