// Package cliquetree builds TD Mk landscapes and computes their global
// optima. A landscape is a sum of M k-variable pseudo-boolean
// subfunctions whose variable sets overlap along the edges of a clique
// tree; because the interaction graph is the tree itself, the global
// optimum set follows from one bottom-up dynamic programming pass over
// the cliques instead of a scan of all 2^n assignments.
package cliquetree

import (
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
)

// CliqueTree is a fully constructed landscape: the clique topology, the
// per-clique fitness tables, and the exhaustive set of global optima.
// It is immutable after construction and safe for concurrent reads.
type CliqueTree struct {
	params   landscape.InputParameters
	function codomain.Function
	n        int

	// cliques[i] lists the global variable ids of clique i; for a
	// non-root clique the first O entries are the separator shared
	// with its parent.
	cliques    [][]int
	separators [][]int
	children   [][]int
	// sepPositions[c] holds, for each separator variable of clique c,
	// its position inside the parent clique.
	sepPositions [][]int

	tables [][]float64

	optima       []landscape.Solution
	optimumScore float64
}

// New draws a fresh landscape from rng: first the clique topology, then
// the fitness tables under fn, and finally the global optimum set by
// propagation over the tree. Everything a given seed produces is
// reproducible.
func New(p landscape.InputParameters, fn codomain.Function, rng *rand.Rand) (*CliqueTree, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	t := newSkeleton(p, fn, rng)
	tables, err := fn.Generate(p, rng)
	if err != nil {
		return nil, err
	}
	t.tables = tables
	if err := t.propagate(); err != nil {
		return nil, err
	}
	return t, nil
}

// NewWithCodomain builds a landscape around externally supplied fitness
// tables, drawing only the topology from rng. fn records where the
// tables came from; pass codomain.Unknown when nothing is known.
func NewWithCodomain(p landscape.InputParameters, fn codomain.Function, tables [][]float64, rng *rand.Rand) (*CliqueTree, error) {
	if err := codomain.ValidateTables(p, tables); err != nil {
		return nil, err
	}
	t := newSkeleton(p, fn, rng)
	t.tables = copyTables(tables)
	if err := t.propagate(); err != nil {
		return nil, err
	}
	return t, nil
}

// NewFromProblem rebuilds a landscape from a previously written problem
// description: the stored cliques, optima, and optimum score are taken
// as given and propagation is skipped.
func NewFromProblem(p landscape.InputParameters, fn codomain.Function, cliques [][]int, tables [][]float64, optima []landscape.Solution, score float64) (*CliqueTree, error) {
	const op = "CliqueTree.NewFromProblem"
	if err := codomain.ValidateTables(p, tables); err != nil {
		return nil, err
	}
	n := p.ProblemSize()
	if len(cliques) != p.M {
		return nil, landscape.NewConfigurationErrorf("expected %d cliques, got %d", p.M, len(cliques)).WithOperation(op)
	}
	for i, clique := range cliques {
		if len(clique) != p.K {
			return nil, landscape.NewConfigurationErrorf("clique %d has %d variables, expected %d", i, len(clique), p.K).WithOperation(op)
		}
		for _, v := range clique {
			if v < 0 || v >= n {
				return nil, landscape.NewConfigurationErrorf("clique %d references variable %d outside [0, %d)", i, v, n).WithOperation(op)
			}
		}
	}
	if len(optima) == 0 {
		return nil, landscape.NewConfigurationErrorf("problem lists no global optima").WithOperation(op)
	}
	for i, sol := range optima {
		if len(sol) != n {
			return nil, landscape.NewDimensionMismatchErrorf("optimum %d has %d variables, expected %d", i, len(sol), n).WithOperation(op)
		}
	}

	t := &CliqueTree{
		params:       p,
		function:     fn,
		n:            n,
		cliques:      copyCliques(cliques),
		separators:   make([][]int, p.M),
		tables:       copyTables(tables),
		optima:       copySolutions(optima),
		optimumScore: score,
	}
	for i := 1; i < p.M; i++ {
		t.separators[i] = append([]int(nil), t.cliques[i][:p.O]...)
	}
	return t, nil
}

// newSkeleton draws the topology and prepares the derived lookup
// structures the propagation needs.
func newSkeleton(p landscape.InputParameters, fn codomain.Function, rng *rand.Rand) *CliqueTree {
	cliques, separators := buildTopology(p, rng)
	b := p.EffectiveBranching()
	return &CliqueTree{
		params:       p,
		function:     fn,
		n:            p.ProblemSize(),
		cliques:      cliques,
		separators:   separators,
		children:     buildChildren(p.M, b),
		sepPositions: buildSeparatorPositions(cliques, separators, b),
	}
}

// Parameters returns the landscape's shape parameters.
func (t *CliqueTree) Parameters() landscape.InputParameters { return t.params }

// Function returns the codomain function the tables were generated
// with, or codomain.Unknown for loaded tables of unknown origin.
func (t *CliqueTree) Function() codomain.Function { return t.function }

// ProblemSize returns the number of binary variables.
func (t *CliqueTree) ProblemSize() int { return t.n }

// OptimumScore returns the fitness every global optimum evaluates to.
func (t *CliqueTree) OptimumScore() float64 { return t.optimumScore }

// OptimumCount returns the number of distinct global optima.
func (t *CliqueTree) OptimumCount() int { return len(t.optima) }

// Optima returns a copy of the full global optimum set.
func (t *CliqueTree) Optima() []landscape.Solution {
	return copySolutions(t.optima)
}

// Cliques returns a copy of the per-clique variable ids.
func (t *CliqueTree) Cliques() [][]int {
	return copyCliques(t.cliques)
}

// CodomainValues returns a copy of the per-clique fitness tables.
func (t *CliqueTree) CodomainValues() [][]float64 {
	return copyTables(t.tables)
}

// CodomainStats returns the mean and standard deviation over all table
// entries, a cheap fingerprint of the landscape's value distribution.
func (t *CliqueTree) CodomainStats() (mean, stddev float64) {
	flat := make([]float64, 0, len(t.tables)*t.params.CliqueEntries())
	for _, table := range t.tables {
		flat = append(flat, table...)
	}
	return stat.Mean(flat, nil), stat.StdDev(flat, nil)
}

func copyCliques(cliques [][]int) [][]int {
	out := make([][]int, len(cliques))
	for i, clique := range cliques {
		out[i] = append([]int(nil), clique...)
	}
	return out
}

func copyTables(tables [][]float64) [][]float64 {
	out := make([][]float64, len(tables))
	for i, table := range tables {
		out[i] = append([]float64(nil), table...)
	}
	return out
}

func copySolutions(sols []landscape.Solution) []landscape.Solution {
	out := make([]landscape.Solution, len(sols))
	for i, sol := range sols {
		out[i] = sol.Clone()
	}
	return out
}
