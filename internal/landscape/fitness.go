package landscape

import "math"

// FitnessEpsilon bounds the rounding error accepted when comparing
// fitness sums that were accumulated in different orders. Scores inside
// the propagation itself are compared exactly; the epsilon applies only
// to externally supplied candidates.
const FitnessEpsilon = 1e-10

// EqualFitness reports whether a and b agree to within FitnessEpsilon.
func EqualFitness(a, b float64) bool {
	return math.Abs(a-b) < FitnessEpsilon
}

// BetterFitness reports whether a exceeds b by more than FitnessEpsilon.
func BetterFitness(a, b float64) bool {
	return a-b > FitnessEpsilon
}

// WorseFitness reports whether a falls short of b by more than
// FitnessEpsilon.
func WorseFitness(a, b float64) bool {
	return b-a > FitnessEpsilon
}
