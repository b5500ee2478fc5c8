package cliquetree

import "github.com/copyleftdev/TDMK/internal/landscape"

// Evaluate sums, over all cliques, the table entry selected by the
// pattern the solution induces on that clique.
func (t *CliqueTree) Evaluate(sol landscape.Solution) (float64, error) {
	if len(sol) != t.n {
		return 0, landscape.NewDimensionMismatchError(t.n, len(sol)).WithOperation("CliqueTree.Evaluate")
	}
	fitness := 0.0
	for i, clique := range t.cliques {
		fitness += t.tables[i][solutionPattern(sol, clique)]
	}
	return fitness, nil
}

// DeltaEvaluate returns the fitness prev.Solution would have with the
// variable at index flip inverted, recomputing only the cliques that
// contain flip. The solution itself is not modified; callers flip the
// bit afterwards if they accept the move.
func (t *CliqueTree) DeltaEvaluate(prev landscape.SolutionFit, flip int) (float64, error) {
	const op = "CliqueTree.DeltaEvaluate"
	if len(prev.Solution) != t.n {
		return 0, landscape.NewDimensionMismatchError(t.n, len(prev.Solution)).WithOperation(op)
	}
	if flip < 0 || flip >= t.n {
		return 0, landscape.NewDimensionMismatchErrorf("flip index %d outside [0, %d)", flip, t.n).WithOperation(op)
	}

	fitness := prev.Fitness
	k := t.params.K
	for i, clique := range t.cliques {
		pos := -1
		for j, v := range clique {
			if v == flip {
				pos = j
				break
			}
		}
		if pos < 0 {
			continue
		}
		pattern := solutionPattern(prev.Solution, clique)
		fitness -= t.tables[i][pattern]
		fitness += t.tables[i][pattern^1<<(k-1-pos)]
	}
	return fitness, nil
}

// IsGlobalOptimum reports whether the candidate reaches the global
// optimum: either its fitness matches the optimum score exactly, or it
// lies within FitnessEpsilon and the solution matches one of the optima
// bit for bit. The epsilon absorbs rounding drift in fitnesses that
// consumers accumulated incrementally.
func (t *CliqueTree) IsGlobalOptimum(candidate landscape.SolutionFit) bool {
	if candidate.Fitness == t.optimumScore {
		return true
	}
	if !landscape.EqualFitness(candidate.Fitness, t.optimumScore) {
		return false
	}
	for _, sol := range t.optima {
		if sol.Equal(candidate.Solution) {
			return true
		}
	}
	return false
}

// solutionPattern reads the clique's variables out of a full solution
// and packs them into a table index, clique position 0 first as the
// most significant bit.
func solutionPattern(sol landscape.Solution, vars []int) int {
	pattern := 0
	for _, v := range vars {
		pattern = pattern<<1 | int(sol[v])
	}
	return pattern
}

// writePattern unpacks a pattern into the solution at the given
// variable ids, most significant bit first.
func writePattern(sol landscape.Solution, vars []int, pattern int) {
	for j := range vars {
		sol[vars[j]] = uint8(pattern >> (len(vars) - 1 - j) & 1)
	}
}

// extractPattern pulls the bits at the given clique positions out of a
// clique-local pattern of width k, preserving their listed order.
func extractPattern(pattern int, positions []int, k int) int {
	out := 0
	for _, pos := range positions {
		out = out<<1 | pattern>>(k-1-pos)&1
	}
	return out
}
