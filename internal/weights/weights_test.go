package weights

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregate(t *testing.T, in string, indices []int) (string, Stats) {
	t.Helper()
	var buf bytes.Buffer
	st, err := Aggregate(strings.NewReader(in), &buf, indices)
	require.NoError(t, err)
	return buf.String(), st
}

func TestAggregate_WorkedExample(t *testing.T) {
	out, st := aggregate(t, "1 -5.0 0.2 0.3\n", []int{1, 2})
	assert.Equal(t, "1 -5.0 0.500000\n", out)
	assert.Equal(t, Stats{Rows: 1}, st)
}

func TestAggregate_OutOfRangeIndexOmitted(t *testing.T) {
	out, _ := aggregate(t, "1 -5.0 0.2\n", []int{1, 2})
	assert.Equal(t, "1 -5.0 0.200000\n", out)
}

func TestAggregate_SkipsCommentsBlankAndShortRows(t *testing.T) {
	in := "# k  E  w1 w2 w3\n" +
		"\n" +
		"   \n" +
		"1 -5.000 0.1 0.2 0.3\n" +
		"2 -4.5\n" +
		"  # indented comment\n" +
		"3  1.25e+00   1.0e-1  2  3.5\n"
	out, st := aggregate(t, in, []int{1, 3})
	assert.Equal(t, "1 -5.000 0.400000\n3 1.25e+00 3.600000\n", out)
	assert.Equal(t, Stats{Rows: 2, Skipped: 1}, st)
}

func TestAggregate_PassesKAndEnergyThrough(t *testing.T) {
	out, _ := aggregate(t, "0012 -0.50000000 1\n", []int{1})
	assert.Equal(t, "0012 -0.50000000 1.000000\n", out)
}

func TestAggregate_RowWithNoSelectedColumns(t *testing.T) {
	out, _ := aggregate(t, "1 0.0 0.7\n", []int{5})
	assert.Equal(t, "1 0.0 0.000000\n", out)
}

func TestAggregate_BadWeight(t *testing.T) {
	var buf bytes.Buffer
	_, err := Aggregate(strings.NewReader("# c\n1 0.0 abc 0.2\n"), &buf, []int{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestAggregate_BadWeightOutsideSelectionIgnored(t *testing.T) {
	out, _ := aggregate(t, "1 0.0 abc 0.2\n", []int{2})
	assert.Equal(t, "1 0.0 0.200000\n", out)
}

func TestAggregate_Deterministic(t *testing.T) {
	in := "1 -1 0.1 0.2 0.3 0.4\n2 -2 0.5 0.6 0.7 0.8\n"
	a, _ := aggregate(t, in, []int{4, 2, 1})
	b, _ := aggregate(t, in, []int{4, 2, 1})
	assert.Equal(t, a, b)
}

func TestAggregate_WideRow(t *testing.T) {
	var b strings.Builder
	b.WriteString("1 -3.0")
	for i := 0; i < 20000; i++ {
		b.WriteString(" 0.0001")
	}
	b.WriteString("\n")
	out, _ := aggregate(t, b.String(), []int{1, 10000, 20000, 20001})
	assert.Equal(t, "1 -3.0 0.000300\n", out)
}

func TestParseRow(t *testing.T) {
	r, ok := ParseRow("  7 2.5 0.1 0.2  ")
	require.True(t, ok)
	assert.Equal(t, Row{K: "7", Energy: "2.5", Weights: []string{"0.1", "0.2"}}, r)

	_, ok = ParseRow("#1 2 3")
	assert.False(t, ok)
	_, ok = ParseRow("1 2")
	assert.False(t, ok)
}

func TestRowSum(t *testing.T) {
	r := Row{Weights: []string{"0.25", "0.5", "1"}}
	got, err := r.Sum([]int{0, 1, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.25, got, 1e-12)
}
