package cliquetree

import (
	"math/rand"

	"github.com/copyleftdev/TDMK/internal/landscape"
)

// buildTopology draws the variable layout of the tree. All variable ids
// are shuffled once; the root clique takes the first K, and every new
// clique combines a random O-subset of its parent with the next K-O
// unused ids. Cliques are laid out in breadth-first order, so clique i
// parents cliques b*i+1 through b*i+b.
func buildTopology(p landscape.InputParameters, rng *rand.Rand) (cliques, separators [][]int) {
	indices := rng.Perm(p.ProblemSize())

	cliques = make([][]int, 0, p.M)
	separators = make([][]int, 0, p.M)

	root := append([]int(nil), indices[:p.K]...)
	cliques = append(cliques, root)
	// The root has no separator.
	separators = append(separators, nil)

	b := p.EffectiveBranching()
	parents := parentCount(p.M, b)

	count := 1
	for i := 0; i < parents; i++ {
		for j := 0; j < b; j++ {
			if i*b+j >= p.M-1 {
				break
			}

			// Pick O random variables from the parent clique as the
			// shared separator.
			pool := append([]int(nil), cliques[i]...)
			rng.Shuffle(len(pool), func(x, y int) { pool[x], pool[y] = pool[y], pool[x] })
			sep := pool[:p.O:p.O]

			clique := make([]int, 0, p.K)
			clique = append(clique, sep...)
			start := (count-1)*(p.K-p.O) + p.K
			clique = append(clique, indices[start:start+p.K-p.O]...)

			cliques = append(cliques, clique)
			separators = append(separators, sep)
			count++
		}
	}
	return cliques, separators
}

// parentCount returns how many cliques get at least one child when M-1
// children are attached b at a time in breadth-first order.
func parentCount(m, b int) int {
	parents := (m - 1) / b
	if (m-1)%b > 0 {
		parents++
	}
	return parents
}

// buildChildren lists each clique's children under the breadth-first
// layout: clique i parents b*i+1 through b*i+b, capped at m-1.
func buildChildren(m, b int) [][]int {
	children := make([][]int, m)
	for i := 0; i < m; i++ {
		first := b*i + 1
		if first >= m {
			break
		}
		last := b*i + b
		if last > m-1 {
			last = m - 1
		}
		for c := first; c <= last; c++ {
			children[i] = append(children[i], c)
		}
	}
	return children
}

// parentIndex returns the parent of clique c under the breadth-first
// layout.
func parentIndex(c, b int) int {
	return (c - 1) / b
}

// buildSeparatorPositions locates every clique's separator variables
// inside its parent, so propagation can read a child's separator
// pattern straight out of the parent's local pattern.
func buildSeparatorPositions(cliques, separators [][]int, b int) [][]int {
	positions := make([][]int, len(cliques))
	for c := 1; c < len(cliques); c++ {
		parent := cliques[parentIndex(c, b)]
		pos := make([]int, len(separators[c]))
		for j, v := range separators[c] {
			for idx, pv := range parent {
				if pv == v {
					pos[j] = idx
					break
				}
			}
		}
		positions[c] = pos
	}
	return positions
}
