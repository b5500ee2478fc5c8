package landscape

// Solution is one assignment of a landscape's binary variables, one
// byte per variable holding 0 or 1.
type Solution []uint8

// ParseSolution decodes a string of '0' and '1' characters.
func ParseSolution(s string) (Solution, error) {
	const op = "ParseSolution"
	sol := make(Solution, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			sol[i] = 0
		case '1':
			sol[i] = 1
		default:
			return nil, NewConfigurationErrorf("solution may contain only '0' and '1', got %q at position %d", s[i], i).WithOperation(op)
		}
	}
	return sol, nil
}

// String renders the solution as a string of '0' and '1' characters.
func (s Solution) String() string {
	buf := make([]byte, len(s))
	for i, bit := range s {
		buf[i] = '0' + bit
	}
	return string(buf)
}

// Clone returns an independent copy of the solution.
func (s Solution) Clone() Solution {
	out := make(Solution, len(s))
	copy(out, s)
	return out
}

// Equal reports whether two solutions assign the same value to every
// variable.
func (s Solution) Equal(other Solution) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// SolutionFit pairs a solution with its evaluated fitness, the unit
// that incremental evaluation and optimum membership checks work on.
type SolutionFit struct {
	Solution Solution
	Fitness  float64
}
