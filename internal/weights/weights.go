// Package weights sums selected orbital columns of an unfold_orbup/dn file.
package weights

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kamusis/orbweight/internal/datafile"
)

// Row is one data line: k-point, energy and the raw weight columns.
type Row struct {
	K       string
	Energy  string
	Weights []string
}

// Stats counts what Aggregate did with its input.
type Stats struct {
	Rows    int // output lines written
	Skipped int // non-blank, non-comment lines with fewer than three fields
}

// ParseRow splits a data line. It reports false for blank lines, comments
// and lines with fewer than three fields.
func ParseRow(line string) (Row, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Row{}, false
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Row{}, false
	}
	return Row{K: fields[0], Energy: fields[1], Weights: fields[2:]}, true
}

// Sum adds the weights at the given 1-based indices. Indices outside the row
// are left out of the sum.
func (r Row) Sum(indices []int) (float64, error) {
	total := 0.0
	for _, i := range indices {
		if i < 1 || i > len(r.Weights) {
			continue
		}
		v, err := strconv.ParseFloat(r.Weights[i-1], 64)
		if err != nil {
			return 0, fmt.Errorf("weight column %d: %w", i, err)
		}
		total += v
	}
	return total, nil
}

// Aggregate streams r and writes "<k> <energy> <sum>" to w for every data
// row, where sum is the total of the selected weight columns.
func Aggregate(r io.Reader, w io.Writer, indices []int) (Stats, error) {
	var st Stats
	scanner := datafile.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		row, ok := ParseRow(raw)
		if !ok {
			if t := strings.TrimSpace(raw); t != "" && !strings.HasPrefix(t, "#") {
				st.Skipped++
			}
			continue
		}
		total, err := row.Sum(indices)
		if err != nil {
			return st, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := fmt.Fprintf(w, "%s %s %.6f\n", row.K, row.Energy, total); err != nil {
			return st, err
		}
		st.Rows++
	}
	if err := scanner.Err(); err != nil {
		return st, err
	}
	return st, nil
}
