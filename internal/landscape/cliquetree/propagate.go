package cliquetree

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/TDMK/internal/landscape"
)

// tiedCompletions records, for one clique under one separator pattern,
// the best achievable subtree score and every rest pattern attaining
// it. Ties are exact float equalities: the propagation reuses each
// clique's sums unchanged, so equal subtree scores compare equal.
type tiedCompletions struct {
	score       float64
	completions []int
}

// propagate computes the global optimum set for the constructed
// topology and tables.
func (t *CliqueTree) propagate() error {
	if t.params.O == 0 {
		return t.propagateSeparable()
	}
	return t.propagateTree()
}

// propagateTree runs the bottom-up dynamic program. For every non-root
// clique i and separator pattern s it maximizes, over the 2^(K-O) rest
// patterns r, the clique's own table entry plus the best scores of its
// children under the separator patterns induced by (s, r). The root has
// no separator, so its pass ranges over all 2^K patterns and yields the
// global optimum score. A top-down walk then rebuilds every optimum,
// fanning out wherever completions tied.
func (t *CliqueTree) propagateTree() error {
	k, o := t.params.K, t.params.O
	restBits := k - o
	restCount := 1 << restBits
	sepCount := 1 << o

	best := make([][]tiedCompletions, t.params.M)
	for i := t.params.M - 1; i >= 1; i-- {
		best[i] = make([]tiedCompletions, sepCount)
		for s := 0; s < sepCount; s++ {
			entry := tiedCompletions{score: math.Inf(-1)}
			for r := 0; r < restCount; r++ {
				pattern := s<<restBits | r
				score := t.tables[i][pattern]
				for _, c := range t.children[i] {
					score += best[c][extractPattern(pattern, t.sepPositions[c], k)].score
				}
				if score > entry.score {
					entry.score = score
					entry.completions = []int{r}
				} else if score == entry.score {
					entry.completions = append(entry.completions, r)
				}
			}
			best[i][s] = entry
		}
	}

	root := tiedCompletions{score: math.Inf(-1)}
	for pattern := 0; pattern < t.params.CliqueEntries(); pattern++ {
		score := t.tables[0][pattern]
		for _, c := range t.children[0] {
			score += best[c][extractPattern(pattern, t.sepPositions[c], k)].score
		}
		if score > root.score {
			root.score = score
			root.completions = []int{pattern}
		} else if score == root.score {
			root.completions = append(root.completions, pattern)
		}
	}

	// Seed one partial optimum per tied root pattern, then walk the
	// cliques in breadth-first order. Parents precede children, so each
	// child's separator values are already written when it is reached.
	optima := make([]landscape.Solution, 0, len(root.completions))
	for _, pattern := range root.completions {
		sol := make(landscape.Solution, t.n)
		writePattern(sol, t.cliques[0], pattern)
		optima = append(optima, sol)
	}
	for i := 0; i < t.params.M; i++ {
		for _, c := range t.children[i] {
			grown := make([]landscape.Solution, 0, len(optima))
			for _, sol := range optima {
				comps := best[c][solutionPattern(sol, t.separators[c])].completions
				rest := t.cliques[c][o:]
				if len(comps) == 1 {
					writePattern(sol, rest, comps[0])
					grown = append(grown, sol)
					continue
				}
				for _, comp := range comps {
					next := sol.Clone()
					writePattern(next, rest, comp)
					grown = append(grown, next)
				}
			}
			optima = grown
		}
	}

	t.optimumScore = root.score
	t.optima = optima
	return t.checkDistinct()
}

// propagateSeparable handles zero overlap: the cliques are variable
// disjoint, so the optimum is the sum of per-clique maxima and the
// optimum set is the cartesian product of each clique's tied argmax
// patterns.
func (t *CliqueTree) propagateSeparable() error {
	total := 0.0
	tied := make([][]int, t.params.M)
	for i, table := range t.tables {
		max := floats.Max(table)
		var patterns []int
		for j, v := range table {
			if v == max {
				patterns = append(patterns, j)
			}
		}
		total += max
		tied[i] = patterns
	}

	optima := []landscape.Solution{make(landscape.Solution, t.n)}
	for i, patterns := range tied {
		if len(patterns) == 1 {
			for _, sol := range optima {
				writePattern(sol, t.cliques[i], patterns[0])
			}
			continue
		}
		grown := make([]landscape.Solution, 0, len(optima)*len(patterns))
		for _, sol := range optima {
			for _, pattern := range patterns {
				next := sol.Clone()
				writePattern(next, t.cliques[i], pattern)
				grown = append(grown, next)
			}
		}
		optima = grown
	}

	t.optimumScore = total
	t.optima = optima
	return t.checkDistinct()
}

// checkDistinct verifies that the reconstruction produced no duplicate
// optimum, which would mean the fan-out walked the same completion
// twice.
func (t *CliqueTree) checkDistinct() error {
	seen := make(map[string]struct{}, len(t.optima))
	for _, sol := range t.optima {
		key := string(sol)
		if _, dup := seen[key]; dup {
			return landscape.NewInternalConsistencyErrorf("duplicate global optimum %s", sol).WithOperation("CliqueTree.propagate")
		}
		seen[key] = struct{}{}
	}
	return nil
}
