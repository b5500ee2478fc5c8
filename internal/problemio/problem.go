package problemio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/landscape/cliquetree"
	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
)

// Problem is the on-disk description of a constructed landscape: its
// shape parameters, the global optimum set, and the variable ids of
// every clique. The fitness tables live in the matching codomain file.
type Problem struct {
	Params       landscape.InputParameters
	OptimumScore float64
	Optima       []landscape.Solution
	Cliques      [][]int
}

// FromTree snapshots a constructed landscape into its problem-file
// form.
func FromTree(t *cliquetree.CliqueTree) Problem {
	return Problem{
		Params:       t.Parameters(),
		OptimumScore: t.OptimumScore(),
		Optima:       t.Optima(),
		Cliques:      t.Cliques(),
	}
}

// BuildTree reassembles an evaluable landscape from a problem and the
// fitness tables of its codomain file. The stored optima are taken as
// given; propagation is not re-run.
func BuildTree(prob Problem, tables [][]float64) (*cliquetree.CliqueTree, error) {
	return cliquetree.NewFromProblem(prob.Params, codomain.Unknown{}, prob.Cliques, tables, prob.Optima, prob.OptimumScore)
}

// WriteProblem writes a problem file: the "M K O B" parameter line, the
// optimum score, the number of global optima, one line per optimum as a
// 0-1 string, and one line per clique listing its variable ids.
func WriteProblem(w io.Writer, prob Problem) error {
	const op = "WriteProblem"
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, prob.Params.String()); err != nil {
		return landscape.WrapError(err, "write parameter line").WithOperation(op)
	}
	if _, err := fmt.Fprintln(bw, formatValue(prob.OptimumScore)); err != nil {
		return landscape.WrapError(err, "write optimum score").WithOperation(op)
	}
	if _, err := fmt.Fprintln(bw, strconv.Itoa(len(prob.Optima))); err != nil {
		return landscape.WrapError(err, "write optimum count").WithOperation(op)
	}
	for _, sol := range prob.Optima {
		if _, err := fmt.Fprintln(bw, sol.String()); err != nil {
			return landscape.WrapError(err, "write optimum").WithOperation(op)
		}
	}
	for _, clique := range prob.Cliques {
		if _, err := fmt.Fprintln(bw, intLine(clique)); err != nil {
			return landscape.WrapError(err, "write clique").WithOperation(op)
		}
	}
	if err := bw.Flush(); err != nil {
		return landscape.WrapError(err, "flush problem file").WithOperation(op)
	}
	return nil
}

// WriteProblemFile writes a problem file at path, replacing any
// existing file.
func WriteProblemFile(path string, prob Problem) error {
	const op = "WriteProblemFile"
	f, err := os.Create(path)
	if err != nil {
		return landscape.WrapErrorf(err, "create problem file %s", path).WithOperation(op)
	}
	if err := WriteProblem(f, prob); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return landscape.WrapErrorf(err, "close problem file %s", path).WithOperation(op)
	}
	return nil
}

// ReadProblem parses the problem-file format written by WriteProblem.
func ReadProblem(r io.Reader) (Problem, error) {
	const op = "ReadProblem"
	sc := bufio.NewScanner(r)

	line, err := scanLine(sc)
	if err != nil {
		return Problem{}, landscape.NewConfigurationErrorf("problem file is empty").WithOperation(op)
	}
	p, err := parseParameterLine(line)
	if err != nil {
		return Problem{}, err
	}

	line, err = scanLine(sc)
	if err != nil {
		return Problem{}, landscape.NewConfigurationErrorf("problem file ends before the optimum score").WithOperation(op)
	}
	score, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return Problem{}, landscape.NewConfigurationErrorf("optimum score is not a float: %q", line).WithOperation(op)
	}

	line, err = scanLine(sc)
	if err != nil {
		return Problem{}, landscape.NewConfigurationErrorf("problem file ends before the optimum count").WithOperation(op)
	}
	count, err := strconv.Atoi(line)
	if err != nil || count < 1 {
		return Problem{}, landscape.NewConfigurationErrorf("optimum count must be a positive integer, got %q", line).WithOperation(op)
	}

	n := p.ProblemSize()
	optima := make([]landscape.Solution, count)
	for i := range optima {
		line, err = scanLine(sc)
		if err != nil {
			return Problem{}, landscape.NewConfigurationErrorf("problem file ends after %d of %d optima", i, count).WithOperation(op)
		}
		sol, err := landscape.ParseSolution(line)
		if err != nil {
			return Problem{}, err
		}
		if len(sol) != n {
			return Problem{}, landscape.NewDimensionMismatchErrorf("optimum %d has %d variables, expected %d", i, len(sol), n).WithOperation(op)
		}
		optima[i] = sol
	}

	cliques := make([][]int, p.M)
	for i := range cliques {
		line, err = scanLine(sc)
		if err != nil {
			return Problem{}, landscape.NewConfigurationErrorf("problem file ends after %d of %d cliques", i, p.M).WithOperation(op)
		}
		clique, err := parseIntLine(line, p.K)
		if err != nil {
			return Problem{}, landscape.NewConfigurationErrorf("clique %d: %v", i, err).WithOperation(op)
		}
		cliques[i] = clique
	}

	return Problem{Params: p, OptimumScore: score, Optima: optima, Cliques: cliques}, nil
}

// ReadProblemFile reads a problem file from path.
func ReadProblemFile(path string) (Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return Problem{}, landscape.WrapErrorf(err, "open problem file %s", path).WithOperation("ReadProblemFile")
	}
	defer f.Close()
	return ReadProblem(f)
}

// intLine renders ints space-separated, the form clique lines use.
func intLine(values []int) string {
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = strconv.Itoa(v)
	}
	return strings.Join(fields, " ")
}

// parseIntLine decodes exactly want space-separated ints.
func parseIntLine(line string, want int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d values, got %d", want, len(fields))
	}
	values := make([]int, want)
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("value %q is not an integer", field)
		}
		values[i] = v
	}
	return values, nil
}
