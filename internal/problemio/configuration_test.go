package problemio

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
)

func TestReadConfiguration(t *testing.T) {
	content := "M 5 7\nk 3 4\no 1 2\nb 2 3\ndeceptive-trap\n"
	cfg, err := ReadConfiguration(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, Range{Begin: 5, End: 7}, cfg.M)
	assert.Equal(t, Range{Begin: 3, End: 4}, cfg.K)
	assert.Equal(t, Range{Begin: 1, End: 2}, cfg.O)
	assert.Equal(t, Range{Begin: 2, End: 3}, cfg.B)
	assert.Equal(t, codomain.DeceptiveTrap{}, cfg.Function)
	assert.Equal(t, 2, cfg.Count())
	assert.Equal(t, []landscape.InputParameters{
		{M: 5, K: 3, O: 1, B: 2},
		{M: 6, K: 3, O: 1, B: 2},
	}, cfg.Parameters())
}

func TestReadConfigurationParameterizedFunction(t *testing.T) {
	cfg, err := ReadConfiguration(strings.NewReader("M 2 3\nk 3 4\no 1 2\nb 1 2\nnk-q 3\n"))
	require.NoError(t, err)
	assert.Equal(t, codomain.NKq{Q: 3}, cfg.Function)
	assert.Equal(t, "nk-q 3", cfg.Function.String())
}

// TestParametersOrder pins the expansion order downstream file naming
// depends on: b varies fastest, then o, then k, then m.
func TestParametersOrder(t *testing.T) {
	cfg := Configuration{
		M: Range{Begin: 2, End: 3},
		K: Range{Begin: 3, End: 5},
		O: Range{Begin: 1, End: 3},
		B: Range{Begin: 1, End: 3},
	}
	assert.Equal(t, []landscape.InputParameters{
		{M: 2, K: 3, O: 1, B: 1},
		{M: 2, K: 3, O: 1, B: 2},
		{M: 2, K: 3, O: 2, B: 1},
		{M: 2, K: 3, O: 2, B: 2},
		{M: 2, K: 4, O: 1, B: 1},
		{M: 2, K: 4, O: 1, B: 2},
		{M: 2, K: 4, O: 2, B: 1},
		{M: 2, K: 4, O: 2, B: 2},
	}, cfg.Parameters())
}

func TestReadConfigurationProblemSizeRange(t *testing.T) {
	// n in [6, 12) with k=3, o=1 needs m=3 at least (n(3)=7) and
	// excludes m=6 (n(6)=13), so m ranges over [3, 6).
	cfg, err := ReadConfiguration(strings.NewReader("N 6 12\nk 3 4\no 1 2\nb 1 2\nrandom\n"))
	require.NoError(t, err)
	assert.Equal(t, Range{Begin: 3, End: 6}, cfg.M)

	sizes := make([]int, 0, cfg.Count())
	for _, p := range cfg.Parameters() {
		sizes = append(sizes, p.ProblemSize())
	}
	assert.Equal(t, []int{7, 9, 11}, sizes)
}

func TestReadConfigurationProblemSizeClamps(t *testing.T) {
	// A size range smaller than a single clique still yields m=1.
	cfg, err := ReadConfiguration(strings.NewReader("N 1 2\nk 3 4\no 0 1\nb 1 2\nrandom\n"))
	require.NoError(t, err)
	assert.Equal(t, Range{Begin: 1, End: 2}, cfg.M)
}

func TestReadConfigurationErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"wrong first label", "X 1 2\nk 3 4\no 1 2\nb 1 2\nrandom\n"},
		{"wrong inner label", "M 1 2\no 1 2\nk 3 4\nb 1 2\nrandom\n"},
		{"short range line", "M 1\nk 3 4\no 1 2\nb 1 2\nrandom\n"},
		{"range not integers", "M a b\nk 3 4\no 1 2\nb 1 2\nrandom\n"},
		{"empty range", "M 2 2\nk 3 4\no 1 2\nb 1 2\nrandom\n"},
		{"overlap reaches clique size", "M 1 2\nk 3 4\no 3 4\nb 1 2\nrandom\n"},
		{"clique size above table limit", "M 1 2\nk 31 32\no 1 2\nb 1 2\nrandom\n"},
		{"wide k with problem size", "N 6 12\nk 3 5\no 1 2\nb 1 2\nrandom\n"},
		{"wide o with problem size", "N 6 12\nk 3 4\no 0 2\nb 1 2\nrandom\n"},
		{"missing function", "M 1 2\nk 3 4\no 1 2\nb 1 2\n"},
		{"several functions", "M 1 2\nk 3 4\no 1 2\nb 1 2\nrandom, trap\n"},
		{"unknown function", "M 1 2\nk 3 4\no 1 2\nb 1 2\nunknown\n"},
		{"misspelled function", "M 1 2\nk 3 4\no 1 2\nb 1 2\ntarp\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadConfiguration(strings.NewReader(tc.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, landscape.ErrConfiguration), "got %v", err)
		})
	}
}
