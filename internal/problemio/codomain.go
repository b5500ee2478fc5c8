// Package problemio reads and writes the text formats shared with the
// wider TD Mk Landscape tooling: codomain files holding per-clique
// fitness tables, problem files holding a constructed landscape and its
// global optima, and configuration files holding parameter ranges for
// batch generation.
package problemio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
)

// formatValue renders a fitness value as the shortest decimal string
// that parses back to the same float64, so files round-trip exactly.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCodomain writes a codomain file: the "M K O B" parameter line
// followed by every clique's 2^K fitness values, one value per line in
// clique order.
func WriteCodomain(w io.Writer, p landscape.InputParameters, tables [][]float64) error {
	const op = "WriteCodomain"
	if err := codomain.ValidateTables(p, tables); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, p.String()); err != nil {
		return landscape.WrapError(err, "write parameter line").WithOperation(op)
	}
	for _, table := range tables {
		for _, v := range table {
			if _, err := fmt.Fprintln(bw, formatValue(v)); err != nil {
				return landscape.WrapError(err, "write fitness value").WithOperation(op)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return landscape.WrapError(err, "flush codomain file").WithOperation(op)
	}
	return nil
}

// WriteCodomainFile writes a codomain file at path, replacing any
// existing file.
func WriteCodomainFile(path string, p landscape.InputParameters, tables [][]float64) error {
	const op = "WriteCodomainFile"
	f, err := os.Create(path)
	if err != nil {
		return landscape.WrapErrorf(err, "create codomain file %s", path).WithOperation(op)
	}
	if err := WriteCodomain(f, p, tables); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return landscape.WrapErrorf(err, "close codomain file %s", path).WithOperation(op)
	}
	return nil
}

// ReadCodomain parses a codomain file. Files written by WriteCodomain
// start with the parameter line; files from older generators carry the
// codomain function on an extra line before it. The legacy line is
// detected and returned, otherwise the function is codomain.Unknown.
func ReadCodomain(r io.Reader) (landscape.InputParameters, codomain.Function, [][]float64, error) {
	const op = "ReadCodomain"
	var fn codomain.Function = codomain.Unknown{}

	sc := bufio.NewScanner(r)
	line, err := scanLine(sc)
	if err != nil {
		return landscape.InputParameters{}, fn, nil, landscape.NewConfigurationErrorf("codomain file is empty").WithOperation(op)
	}
	p, perr := parseParameterLine(line)
	if perr != nil {
		legacy, ferr := codomain.ParseFunction(line)
		if ferr != nil {
			// Neither a parameter line nor a function name; report the
			// parameter failure, the shape current files must have.
			return landscape.InputParameters{}, fn, nil, perr
		}
		fn = legacy
		line, err = scanLine(sc)
		if err != nil {
			return landscape.InputParameters{}, fn, nil, landscape.NewConfigurationErrorf("codomain file ends before the parameter line").WithOperation(op)
		}
		if p, perr = parseParameterLine(line); perr != nil {
			return landscape.InputParameters{}, fn, nil, perr
		}
	}

	entries := p.CliqueEntries()
	tables := make([][]float64, p.M)
	for i := range tables {
		table := make([]float64, entries)
		for j := range table {
			line, err := scanLine(sc)
			if err != nil {
				return landscape.InputParameters{}, fn, nil, landscape.NewCodomainLengthErrorf(
					"codomain file ends after %d of %d values for clique %d", j, entries, i).WithOperation(op)
			}
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return landscape.InputParameters{}, fn, nil, landscape.NewConfigurationErrorf(
					"fitness value %d of clique %d is not a float: %q", j, i, line).WithOperation(op)
			}
			table[j] = v
		}
		tables[i] = table
	}
	return p, fn, tables, nil
}

// ReadCodomainFile reads a codomain file from path.
func ReadCodomainFile(path string) (landscape.InputParameters, codomain.Function, [][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return landscape.InputParameters{}, codomain.Unknown{}, nil,
			landscape.WrapErrorf(err, "open codomain file %s", path).WithOperation("ReadCodomainFile")
	}
	defer f.Close()
	return ReadCodomain(f)
}

// scanLine returns the next line with surrounding whitespace trimmed,
// or io.EOF when the input is exhausted.
func scanLine(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(sc.Text()), nil
}

// parseParameterLine decodes an "M K O B" line and validates the
// resulting parameters.
func parseParameterLine(line string) (landscape.InputParameters, error) {
	const op = "parseParameterLine"
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return landscape.InputParameters{}, landscape.NewConfigurationErrorf(
			"parameter line must hold the four values M K O B, got %q", line).WithOperation(op)
	}
	values := make([]int, 4)
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return landscape.InputParameters{}, landscape.NewConfigurationErrorf(
				"parameter %q is not an integer", field).WithOperation(op)
		}
		values[i] = v
	}
	return landscape.NewInputParameters(values[0], values[1], values[2], values[3])
}
