package cliquetree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
)

func TestNewRejectsInvalidInput(t *testing.T) {
	bad := []landscape.InputParameters{
		{M: 0, K: 3, O: 1, B: 1},
		{M: 2, K: 0, O: 0, B: 1},
		{M: 2, K: 3, O: 3, B: 1},
		{M: 2, K: 3, O: -1, B: 1},
		{M: 2, K: 3, O: 1, B: 0},
		{M: 2, K: 31, O: 1, B: 1},
	}
	for _, p := range bad {
		_, err := New(p, codomain.Random{}, landscape.NewRand(1))
		assert.ErrorIs(t, err, landscape.ErrConfiguration, "parameters %+v", p)
	}

	// A function that cannot generate values fails construction.
	_, err := New(landscape.InputParameters{M: 2, K: 3, O: 1, B: 1}, codomain.Unknown{}, landscape.NewRand(1))
	assert.ErrorIs(t, err, landscape.ErrConfiguration)
}

func TestNewWithCodomainValidation(t *testing.T) {
	p := landscape.InputParameters{M: 2, K: 2, O: 1, B: 1}

	_, err := NewWithCodomain(p, codomain.Unknown{}, [][]float64{{1, 2, 3, 4}}, landscape.NewRand(1))
	assert.ErrorIs(t, err, landscape.ErrCodomainLength, "missing table")

	_, err = NewWithCodomain(p, codomain.Unknown{}, [][]float64{{1, 2, 3, 4}, {1, 2, 3}}, landscape.NewRand(1))
	assert.ErrorIs(t, err, landscape.ErrCodomainLength, "short table")

	tree, err := NewWithCodomain(p, codomain.Unknown{}, [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}}, landscape.NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, codomain.NameUnknown, tree.Function().String())
}

func TestNewFromProblemRoundTrip(t *testing.T) {
	p := landscape.InputParameters{M: 5, K: 3, O: 1, B: 2}
	built, err := New(p, codomain.NKq{Q: 5}, landscape.NewRand(31))
	require.NoError(t, err)

	loaded, err := NewFromProblem(p, built.Function(), built.Cliques(), built.CodomainValues(), built.Optima(), built.OptimumScore())
	require.NoError(t, err)

	assert.Equal(t, built.Cliques(), loaded.Cliques())
	assert.Equal(t, built.CodomainValues(), loaded.CodomainValues())
	assert.Equal(t, built.Optima(), loaded.Optima())
	assert.Equal(t, built.OptimumScore(), loaded.OptimumScore())
	assert.Equal(t, built.ProblemSize(), loaded.ProblemSize())

	rng := landscape.NewRand(8)
	sol := make(landscape.Solution, p.ProblemSize())
	for i := range sol {
		sol[i] = uint8(rng.Intn(2))
	}
	wantFitness, err := built.Evaluate(sol)
	require.NoError(t, err)
	gotFitness, err := loaded.Evaluate(sol)
	require.NoError(t, err)
	assert.Equal(t, wantFitness, gotFitness)

	for _, opt := range loaded.Optima() {
		fitness, err := loaded.Evaluate(opt)
		require.NoError(t, err)
		assert.True(t, loaded.IsGlobalOptimum(landscape.SolutionFit{Solution: opt, Fitness: fitness}))
	}
}

func TestNewFromProblemValidation(t *testing.T) {
	p := landscape.InputParameters{M: 2, K: 2, O: 1, B: 1}
	cliques := [][]int{{0, 1}, {1, 2}}
	tables := [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}}
	optima := []landscape.Solution{{1, 1, 1}}

	_, err := NewFromProblem(p, codomain.Unknown{}, cliques[:1], tables, optima, 12)
	assert.ErrorIs(t, err, landscape.ErrConfiguration, "clique count")

	_, err = NewFromProblem(p, codomain.Unknown{}, [][]int{{0, 1}, {1}}, tables, optima, 12)
	assert.ErrorIs(t, err, landscape.ErrConfiguration, "clique size")

	_, err = NewFromProblem(p, codomain.Unknown{}, [][]int{{0, 1}, {1, 3}}, tables, optima, 12)
	assert.ErrorIs(t, err, landscape.ErrConfiguration, "variable out of range")

	_, err = NewFromProblem(p, codomain.Unknown{}, cliques, tables[:1], optima, 12)
	assert.ErrorIs(t, err, landscape.ErrCodomainLength, "table count")

	_, err = NewFromProblem(p, codomain.Unknown{}, cliques, tables, nil, 12)
	assert.ErrorIs(t, err, landscape.ErrConfiguration, "missing optima")

	_, err = NewFromProblem(p, codomain.Unknown{}, cliques, tables, []landscape.Solution{{1, 1}}, 12)
	assert.ErrorIs(t, err, landscape.ErrDimensionMismatch, "optimum length")
}

func TestAccessorsReturnCopies(t *testing.T) {
	p := landscape.InputParameters{M: 3, K: 3, O: 1, B: 1}
	tree, err := New(p, codomain.NKq{Q: 3}, landscape.NewRand(4))
	require.NoError(t, err)

	cliques := tree.Cliques()
	cliques[0][0] = -100
	assert.NotEqual(t, -100, tree.Cliques()[0][0])

	tables := tree.CodomainValues()
	tables[0][0] = -100
	assert.NotEqual(t, -100.0, tree.CodomainValues()[0][0])

	optima := tree.Optima()
	optima[0][0] ^= 1
	assert.Equal(t, tree.Optima(), tree.Optima())
	assert.NotEqual(t, optima[0], tree.Optima()[0])
}

func TestCodomainStats(t *testing.T) {
	p := landscape.InputParameters{M: 1, K: 1, O: 0, B: 1}
	tree, err := NewWithCodomain(p, codomain.Unknown{}, [][]float64{{0, 1}}, landscape.NewRand(1))
	require.NoError(t, err)

	mean, stddev := tree.CodomainStats()
	assert.InDelta(t, 0.5, mean, 1e-12)
	assert.InDelta(t, math.Sqrt(0.5), stddev, 1e-12)

	p = landscape.InputParameters{M: 2, K: 1, O: 0, B: 1}
	tree, err = NewWithCodomain(p, codomain.Unknown{}, [][]float64{{0, 0}, {1, 1}}, landscape.NewRand(1))
	require.NoError(t, err)

	mean, stddev = tree.CodomainStats()
	assert.InDelta(t, 0.5, mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.0/3.0), stddev, 1e-12)
}

func TestTreeAccessors(t *testing.T) {
	p := landscape.InputParameters{M: 4, K: 3, O: 2, B: 2}
	fn := codomain.NKq{Q: 3}
	tree, err := New(p, fn, landscape.NewRand(16))
	require.NoError(t, err)

	assert.Equal(t, p, tree.Parameters())
	assert.Equal(t, fn.String(), tree.Function().String())
	assert.Equal(t, p.ProblemSize(), tree.ProblemSize())
	assert.Equal(t, len(tree.Optima()), tree.OptimumCount())
	assert.Greater(t, tree.OptimumCount(), 0)
}
