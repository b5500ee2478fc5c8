package cliquetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/TDMK/internal/landscape"
)

func TestTopologyShape(t *testing.T) {
	tests := []landscape.InputParameters{
		{M: 1, K: 3, O: 0, B: 1},
		{M: 2, K: 3, O: 1, B: 1},
		{M: 5, K: 3, O: 1, B: 2},
		{M: 7, K: 4, O: 2, B: 3},
		{M: 10, K: 5, O: 4, B: 2},
		{M: 6, K: 2, O: 1, B: 5},
		{M: 4, K: 3, O: 0, B: 2},
	}

	for _, p := range tests {
		t.Run(p.String(), func(t *testing.T) {
			cliques, separators := buildTopology(p, landscape.NewRand(17))
			n := p.ProblemSize()

			require.Len(t, cliques, p.M)
			require.Len(t, separators, p.M)
			assert.Empty(t, separators[0], "the root has no separator")

			seen := make(map[int]bool, n)
			for c, clique := range cliques {
				require.Len(t, clique, p.K, "clique %d", c)

				fresh := 0
				for _, v := range clique {
					require.GreaterOrEqual(t, v, 0)
					require.Less(t, v, n)
					if !seen[v] {
						fresh++
						seen[v] = true
					}
				}
				if c == 0 {
					assert.Equal(t, p.K, fresh, "the root introduces all its variables")
				} else {
					assert.Equal(t, p.K-p.O, fresh, "clique %d must introduce exactly K-O new variables", c)
				}
			}
			assert.Len(t, seen, n, "every variable id must be owned by some clique")

			b := p.EffectiveBranching()
			for c := 1; c < p.M; c++ {
				parent := cliques[parentIndex(c, b)]
				require.Len(t, separators[c], p.O)

				// The separator occupies the first O local positions of the
				// child and every separator variable appears in the parent.
				assert.Equal(t, cliques[c][:p.O], separators[c])
				for _, v := range separators[c] {
					assert.Contains(t, parent, v, "separator of clique %d must come from its parent", c)
				}
			}
		})
	}
}

func TestTopologyDeterminism(t *testing.T) {
	p := landscape.InputParameters{M: 5, K: 3, O: 1, B: 2}

	cliquesA, sepsA := buildTopology(p, landscape.NewRand(2398))
	cliquesB, sepsB := buildTopology(p, landscape.NewRand(2398))
	assert.Equal(t, cliquesA, cliquesB, "same seed must reproduce the same layout")
	assert.Equal(t, sepsA, sepsB)

	cliquesC, _ := buildTopology(p, landscape.NewRand(2399))
	assert.NotEqual(t, cliquesA, cliquesC, "different seeds should shuffle differently")
}

func TestChildrenLayout(t *testing.T) {
	children := buildChildren(7, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5, 6}, nil, nil, nil, nil}, children)

	children = buildChildren(5, 3)
	assert.Equal(t, [][]int{{1, 2, 3}, {4}, nil, nil, nil}, children)

	children = buildChildren(1, 2)
	assert.Equal(t, [][]int{nil}, children)

	// Every clique occurs as a child of exactly its computed parent.
	for _, b := range []int{1, 2, 3} {
		children := buildChildren(9, b)
		for c := 1; c < 9; c++ {
			assert.Contains(t, children[parentIndex(c, b)], c, "b=%d clique %d", b, c)
		}
	}
}

func TestSeparatorPositions(t *testing.T) {
	p := landscape.InputParameters{M: 6, K: 4, O: 2, B: 2}
	cliques, separators := buildTopology(p, landscape.NewRand(5))
	positions := buildSeparatorPositions(cliques, separators, p.EffectiveBranching())

	require.Len(t, positions, p.M)
	assert.Empty(t, positions[0])
	for c := 1; c < p.M; c++ {
		parent := cliques[parentIndex(c, p.EffectiveBranching())]
		require.Len(t, positions[c], p.O)
		for j, pos := range positions[c] {
			assert.Equal(t, separators[c][j], parent[pos], "clique %d separator %d", c, j)
		}
	}
}

func TestZeroOverlapForcesChain(t *testing.T) {
	p := landscape.InputParameters{M: 4, K: 3, O: 0, B: 5}
	require.Equal(t, 1, p.EffectiveBranching())

	cliques, separators := buildTopology(p, landscape.NewRand(9))
	require.Len(t, cliques, 4)

	// Disjoint cliques: all m*k variables are distinct.
	seen := make(map[int]bool)
	for c, clique := range cliques {
		assert.Empty(t, separators[c])
		for _, v := range clique {
			assert.False(t, seen[v], "variable %d appears twice", v)
			seen[v] = true
		}
	}
	assert.Len(t, seen, p.ProblemSize())
}
