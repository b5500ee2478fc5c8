// Command tdmk generates TD Mk landscape benchmark instances: codomain
// files holding per-clique fitness tables, and problem files holding a
// constructed landscape together with its exhaustive global optimum
// set.
package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/copyleftdev/TDMK/internal/config"
	"github.com/copyleftdev/TDMK/internal/generator"
	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options carries the flag values shared by every subcommand.
type options struct {
	seed      int64
	instances int
	verbose   bool
}

// newRunner builds the generator behind a subcommand. The returned
// logger must be synced by the caller.
func (o *options) newRunner() (*generator.Runner, *zap.Logger, error) {
	level := "info"
	if o.verbose {
		level = "debug"
	}
	logger, err := logging.NewLogger(&logging.Config{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, nil, err
	}
	return generator.NewRunner(logger, landscape.NewRand(o.seed), o.instances), logger, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "tdmk",
		Short: "Generate TD Mk landscape benchmark instances",
		Long: `tdmk generates pseudo-boolean benchmark landscapes built from m cliques
of k binary variables that overlap in o variables along a clique tree
with branching factor b. Every instance ships with its exhaustive set
of global optima, computed exactly by propagation over the tree.

Instances are written as two text files: a codomain file with the
per-clique fitness tables and a problem file with the clique layout and
the global optima. Batch generation expands configuration files into
<root>/codomain_files/<config>/ and <root>/problems/<config>/.`,
		SilenceUsage: true,
	}

	seed, instances := flagDefaults()
	cmd.PersistentFlags().Int64VarP(&opts.seed, "seed", "s", seed, "random seed; 0 draws one from the clock")
	cmd.PersistentFlags().IntVarP(&opts.instances, "instances", "n", instances, "instances per parameter combination")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every generated file")

	cmd.AddCommand(newCodomainCmd(opts))
	cmd.AddCommand(newProblemCmd(opts))
	return cmd
}

// flagDefaults pulls flag defaults from the environment so batch jobs
// can be configured without changing their command lines.
func flagDefaults() (seed int64, instances int) {
	seed, instances = 0, generator.DefaultInstances
	if cfg, err := config.Load(); err == nil {
		seed, instances = cfg.Generator.Seed, cfg.Generator.Instances
	}
	return seed, instances
}

// parseParameterArgs decodes the four leading M K O B positional
// arguments.
func parseParameterArgs(args []string) (landscape.InputParameters, error) {
	values := make([]int, 4)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return landscape.InputParameters{}, landscape.NewConfigurationErrorf(
				"parameter %q is not an integer", arg).WithOperation("parseParameterArgs")
		}
		values[i] = v
	}
	return landscape.NewInputParameters(values[0], values[1], values[2], values[3])
}
