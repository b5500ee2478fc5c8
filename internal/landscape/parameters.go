// Package landscape defines the shared vocabulary for tree-decomposition
// Mk landscapes: the four shape parameters, candidate solutions, fitness
// comparison, and the error taxonomy used by construction, propagation,
// and file IO.
package landscape

import "fmt"

// InputParameters fixes the shape of a TD Mk landscape: M cliques of K
// binary variables each, every non-root clique sharing O variables with
// its parent in a clique tree of branching factor B.
type InputParameters struct {
	M int `json:"m"` // number of cliques
	K int `json:"k"` // variables per clique
	O int `json:"o"` // overlap with the parent clique
	B int `json:"b"` // branching factor of the clique tree
}

// NewInputParameters builds a parameter set and validates it.
func NewInputParameters(m, k, o, b int) (InputParameters, error) {
	p := InputParameters{M: m, K: k, O: o, B: b}
	if err := p.Validate(); err != nil {
		return InputParameters{}, err
	}
	return p, nil
}

// Validate checks that the parameters describe a constructible landscape.
func (p InputParameters) Validate() error {
	const op = "InputParameters.Validate"
	switch {
	case p.M < 1:
		return NewConfigurationErrorf("number of cliques m must be at least 1, got %d", p.M).WithOperation(op)
	case p.K < 1:
		return NewConfigurationErrorf("clique size k must be at least 1, got %d", p.K).WithOperation(op)
	case p.O < 0:
		return NewConfigurationErrorf("overlap o must be non-negative, got %d", p.O).WithOperation(op)
	case p.K > 30:
		// Fitness tables hold 2^K entries; beyond this the table index
		// overflows 32-bit ints.
		return NewConfigurationErrorf("clique size k must be at most 30, got %d", p.K).WithOperation(op)
	case p.O >= p.K:
		return NewConfigurationErrorf("overlap o must be smaller than clique size k, got o=%d k=%d", p.O, p.K).WithOperation(op)
	case p.B < 1:
		return NewConfigurationErrorf("branching factor b must be at least 1, got %d", p.B).WithOperation(op)
	}
	return nil
}

// ProblemSize returns the total number of binary variables,
// (M-1)*(K-O) + K.
func (p InputParameters) ProblemSize() int {
	return (p.M-1)*(p.K-p.O) + p.K
}

// EffectiveBranching returns the branching factor actually used when
// building the tree. Zero overlap makes the cliques fully disjoint, so
// the tree degenerates to a chain regardless of B.
func (p InputParameters) EffectiveBranching() int {
	if p.O == 0 {
		return 1
	}
	return p.B
}

// CliqueEntries returns the number of rows in one clique's fitness
// table, 2^K.
func (p InputParameters) CliqueEntries() int {
	return 1 << p.K
}

// String renders the parameters in the order used by file headers.
func (p InputParameters) String() string {
	return fmt.Sprintf("%d %d %d %d", p.M, p.K, p.O, p.B)
}
