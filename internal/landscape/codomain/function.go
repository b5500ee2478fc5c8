// Package codomain generates the per-clique fitness tables of a TD Mk
// landscape. Each Function is one generation policy; all of them fill M
// tables of 2^K entries, indexed by the clique's variable assignment
// with clique position 0 as the most significant bit.
package codomain

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/copyleftdev/TDMK/internal/landscape"
)

// Wire-format names of the generation policies, as they appear in file
// headers, configuration files, and CLI arguments.
const (
	NameRandom              = "random"
	NameTrap                = "trap"
	NameDeceptiveTrap       = "deceptive-trap"
	NameNKq                 = "nk-q"
	NameNKp                 = "nk-p"
	NameRandomDeceptiveTrap = "random-deceptive-trap"
	NameUnknown             = "unknown"
)

// Function selects a codomain generation policy.
type Function interface {
	// Generate draws one fitness table per clique from rng. The outer
	// slice has p.M entries, each inner slice 2^p.K values.
	Generate(p landscape.InputParameters, rng *rand.Rand) ([][]float64, error)

	// String returns the header form of the function, e.g. "nk-q 3".
	String() string

	// Slug returns the file-name form of the function, e.g. "nk-q-3".
	Slug() string
}

// ParseFunction decodes the header form of a function, e.g.
// "deceptive-trap" or "nk-q 3".
func ParseFunction(s string) (Function, error) {
	return ParseFunctionArgs(strings.Fields(s))
}

// ParseFunctionArgs decodes a function from pre-split arguments, the
// shape CLI positional arguments arrive in.
func ParseFunctionArgs(args []string) (Function, error) {
	const op = "ParseFunctionArgs"
	if len(args) == 0 {
		return nil, landscape.NewConfigurationErrorf("missing codomain function name").WithOperation(op)
	}
	name, params := args[0], args[1:]

	bare := func(fn Function) (Function, error) {
		if len(params) != 0 {
			return nil, landscape.NewConfigurationErrorf("codomain function %q takes no parameter, got %v", name, params).WithOperation(op)
		}
		return fn, nil
	}
	one := func() (string, error) {
		if len(params) != 1 {
			return "", landscape.NewConfigurationErrorf("codomain function %q expects exactly one parameter, got %v", name, params).WithOperation(op)
		}
		return params[0], nil
	}

	switch name {
	case NameRandom:
		return bare(Random{})
	case NameTrap:
		return bare(Trap{})
	case NameDeceptiveTrap:
		return bare(DeceptiveTrap{})
	case NameUnknown:
		return bare(Unknown{})
	case NameNKq:
		raw, err := one()
		if err != nil {
			return nil, err
		}
		q, err := strconv.Atoi(raw)
		if err != nil {
			return nil, landscape.NewConfigurationErrorf("nk-q parameter must be an integer, got %q", raw).WithOperation(op)
		}
		fn := NKq{Q: q}
		if err := fn.validate(); err != nil {
			return nil, err
		}
		return fn, nil
	case NameNKp:
		raw, err := one()
		if err != nil {
			return nil, err
		}
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, landscape.NewConfigurationErrorf("nk-p parameter must be a float, got %q", raw).WithOperation(op)
		}
		fn := NKp{P: p}
		if err := fn.validate(); err != nil {
			return nil, err
		}
		return fn, nil
	case NameRandomDeceptiveTrap:
		raw, err := one()
		if err != nil {
			return nil, err
		}
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, landscape.NewConfigurationErrorf("random-deceptive-trap parameter must be a float, got %q", raw).WithOperation(op)
		}
		fn := RandomDeceptiveTrap{PDeceptive: p}
		if err := fn.validate(); err != nil {
			return nil, err
		}
		return fn, nil
	default:
		return nil, landscape.NewConfigurationErrorf("unknown codomain function %q", name).WithOperation(op)
	}
}

// ValidateTables checks that externally supplied fitness tables match
// the landscape shape: p.M tables of 2^p.K entries each.
func ValidateTables(p landscape.InputParameters, tables [][]float64) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(tables) != p.M {
		return landscape.NewCodomainLengthErrorf("expected %d fitness tables, got %d", p.M, len(tables)).WithOperation("ValidateTables")
	}
	want := p.CliqueEntries()
	for i, table := range tables {
		if len(table) != want {
			return landscape.NewCodomainLengthError(i, want, len(table)).WithOperation("ValidateTables")
		}
	}
	return nil
}

// newTables validates p and allocates the M-by-2^K table set every
// generation policy fills.
func newTables(p landscape.InputParameters) ([][]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	tables := make([][]float64, p.M)
	entries := p.CliqueEntries()
	for i := range tables {
		tables[i] = make([]float64, entries)
	}
	return tables, nil
}

func formatFloatParam(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatIntParam(v int) string {
	return strconv.Itoa(v)
}
