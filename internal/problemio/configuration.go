package problemio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
)

// Range is a half-open [Begin, End) interval of one landscape
// parameter, the form configuration files use.
type Range struct {
	Begin int
	End   int
}

// Len returns the number of values in the range.
func (r Range) Len() int {
	if r.End <= r.Begin {
		return 0
	}
	return r.End - r.Begin
}

// Configuration describes one batch of landscapes to generate: a range
// per shape parameter and the codomain function shared by every
// instance.
type Configuration struct {
	M Range
	K Range
	O Range
	B Range

	Function codomain.Function
}

// Count returns the number of parameter combinations the configuration
// expands to.
func (c Configuration) Count() int {
	return c.M.Len() * c.K.Len() * c.O.Len() * c.B.Len()
}

// Parameters expands the ranges into every concrete parameter set, in
// the fixed order downstream tooling relies on: b varies fastest, then
// o, then k, then m.
func (c Configuration) Parameters() []landscape.InputParameters {
	params := make([]landscape.InputParameters, 0, c.Count())
	for m := c.M.Begin; m < c.M.End; m++ {
		for k := c.K.Begin; k < c.K.End; k++ {
			for o := c.O.Begin; o < c.O.End; o++ {
				for b := c.B.Begin; b < c.B.End; b++ {
					params = append(params, landscape.InputParameters{M: m, K: k, O: o, B: b})
				}
			}
		}
	}
	return params
}

// validate rejects configurations whose expansion would contain an
// unconstructible parameter set.
func (c Configuration) validate() error {
	const op = "Configuration.validate"
	for _, rg := range []struct {
		label string
		Range
	}{{"m", c.M}, {"k", c.K}, {"o", c.O}, {"b", c.B}} {
		if rg.Begin >= rg.End {
			return landscape.NewConfigurationErrorf("range %s must have begin < end, got [%d, %d)", rg.label, rg.Begin, rg.End).WithOperation(op)
		}
	}
	switch {
	case c.M.Begin < 1:
		return landscape.NewConfigurationErrorf("clique count range must start at 1 or above, got %d", c.M.Begin).WithOperation(op)
	case c.K.Begin < 1:
		return landscape.NewConfigurationErrorf("clique size range must start at 1 or above, got %d", c.K.Begin).WithOperation(op)
	case c.K.End-1 > 30:
		return landscape.NewConfigurationErrorf("clique size range must stay at or below 30, got %d", c.K.End-1).WithOperation(op)
	case c.O.Begin < 0:
		return landscape.NewConfigurationErrorf("overlap range must start at 0 or above, got %d", c.O.Begin).WithOperation(op)
	case c.O.End-1 >= c.K.Begin:
		return landscape.NewConfigurationErrorf("largest overlap %d must be smaller than smallest clique size %d", c.O.End-1, c.K.Begin).WithOperation(op)
	case c.B.Begin < 1:
		return landscape.NewConfigurationErrorf("branching factor range must start at 1 or above, got %d", c.B.Begin).WithOperation(op)
	}
	return nil
}

// ReadConfiguration parses a configuration file: four range lines
// ("M begin end" or "N begin end", then "k begin end", "o begin end",
// "b begin end", all ends exclusive) followed by the codomain function
// in header form. An N first line ranges over the problem size instead
// of the clique count; it requires single-valued k and o ranges, and
// the clique count range is derived from it.
func ReadConfiguration(r io.Reader) (Configuration, error) {
	const op = "ReadConfiguration"
	sc := bufio.NewScanner(r)

	label, first, err := readRangeLine(sc, "M", "N")
	if err != nil {
		return Configuration{}, err
	}
	var cfg Configuration
	if _, cfg.K, err = readRangeLine(sc, "k"); err != nil {
		return Configuration{}, err
	}
	if _, cfg.O, err = readRangeLine(sc, "o"); err != nil {
		return Configuration{}, err
	}
	if _, cfg.B, err = readRangeLine(sc, "b"); err != nil {
		return Configuration{}, err
	}

	if label == "N" {
		if cfg.K.Len() != 1 || cfg.O.Len() != 1 {
			return Configuration{}, landscape.NewConfigurationErrorf(
				"a problem-size range requires single-valued k and o ranges").WithOperation(op)
		}
		k, o := cfg.K.Begin, cfg.O.Begin
		if o >= k {
			return Configuration{}, landscape.NewConfigurationErrorf(
				"overlap o must be smaller than clique size k, got o=%d k=%d", o, k).WithOperation(op)
		}
		cfg.M = Range{
			Begin: minCliquesFor(first.Begin, k, o),
			End:   maxCliquesFor(first.End, k, o),
		}
	} else {
		cfg.M = first
	}

	line, err := scanLine(sc)
	if err != nil {
		return Configuration{}, landscape.NewConfigurationErrorf("configuration file ends before the codomain function").WithOperation(op)
	}
	if strings.Contains(line, ",") {
		return Configuration{}, landscape.NewConfigurationErrorf("configuration takes a single codomain function, got %q", line).WithOperation(op)
	}
	fn, err := codomain.ParseFunction(line)
	if err != nil {
		return Configuration{}, err
	}
	if _, unknown := fn.(codomain.Unknown); unknown {
		return Configuration{}, landscape.NewConfigurationErrorf("configuration needs a generating codomain function").WithOperation(op)
	}
	cfg.Function = fn

	if err := cfg.validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// ReadConfigurationFile reads a configuration file from path.
func ReadConfigurationFile(path string) (Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return Configuration{}, landscape.WrapErrorf(err, "open configuration file %s", path).WithOperation("ReadConfigurationFile")
	}
	defer f.Close()
	return ReadConfiguration(f)
}

// readRangeLine reads one "label begin end" line whose label must be
// one of want.
func readRangeLine(sc *bufio.Scanner, want ...string) (string, Range, error) {
	const op = "ReadConfiguration"
	line, err := scanLine(sc)
	if err != nil {
		return "", Range{}, landscape.NewConfigurationErrorf("configuration file ends before the %s range", want[0]).WithOperation(op)
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return "", Range{}, landscape.NewConfigurationErrorf("range line must hold a label and two integers, got %q", line).WithOperation(op)
	}
	ok := false
	for _, w := range want {
		if fields[0] == w {
			ok = true
			break
		}
	}
	if !ok {
		return "", Range{}, landscape.NewConfigurationErrorf("expected range label %s, got %q", strings.Join(want, " or "), fields[0]).WithOperation(op)
	}
	begin, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", Range{}, landscape.NewConfigurationErrorf("range begin %q is not an integer", fields[1]).WithOperation(op)
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", Range{}, landscape.NewConfigurationErrorf("range end %q is not an integer", fields[2]).WithOperation(op)
	}
	return fields[0], Range{Begin: begin, End: end}, nil
}

// minCliquesFor returns the smallest clique count whose landscape
// reaches size variables: the least m with (m-1)*(k-o)+k >= size,
// clamped to at least 1.
func minCliquesFor(size, k, o int) int {
	m := ceilDiv(size-o, k-o)
	if m < 1 {
		return 1
	}
	return m
}

// maxCliquesFor returns the exclusive upper clique count for an
// exclusive problem-size bound, clamped so the range holds at least
// one value.
func maxCliquesFor(size, k, o int) int {
	m := ceilDiv(size-o, k-o)
	if m < 2 {
		return 2
	}
	return m
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
