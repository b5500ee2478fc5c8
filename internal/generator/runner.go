// Package generator turns configuration files into batches of landscape
// instances on disk, in the layout downstream optimizer experiments
// consume: configuration files under <root>/problem_generation or
// <root>/codomain_generation, generated codomain files under
// <root>/codomain_files/<config>/ and problem files under
// <root>/problems/<config>/.
package generator

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/copyleftdev/TDMK/internal/landscape"
	"github.com/copyleftdev/TDMK/internal/landscape/cliquetree"
	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
	"github.com/copyleftdev/TDMK/internal/problemio"
)

// DefaultInstances is the number of instances generated per parameter
// combination when the caller does not override it.
const DefaultInstances = 25

const (
	codomainConfigDir = "codomain_generation"
	problemConfigDir  = "problem_generation"
	codomainOutDir    = "codomain_files"
	problemOutDir     = "problems"
)

// Runner generates landscape instances from configuration files. All
// randomness flows through the single injected source, so a fixed seed
// reproduces an entire batch file for file. The shared source also
// means a Runner is not safe for concurrent use.
type Runner struct {
	logger    *zap.Logger
	rng       *rand.Rand
	instances int
}

// NewRunner builds a Runner. A nil logger disables logging and a
// non-positive instance count falls back to DefaultInstances.
func NewRunner(logger *zap.Logger, rng *rand.Rand, instances int) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if instances <= 0 {
		instances = DefaultInstances
	}
	return &Runner{logger: logger, rng: rng, instances: instances}
}

// CodomainInstance draws one set of fitness tables under fn and writes
// it as a codomain file at path.
func (r *Runner) CodomainInstance(p landscape.InputParameters, fn codomain.Function, path string) error {
	tables, err := fn.Generate(p, r.rng)
	if err != nil {
		return err
	}
	if err := problemio.WriteCodomainFile(path, p, tables); err != nil {
		return err
	}
	r.logger.Debug("wrote codomain file",
		zap.String("parameters", p.String()),
		zap.String("function", fn.String()),
		zap.String("path", path))
	return nil
}

// ProblemInstance constructs one landscape and writes its problem file
// to problemPath. Unless codomainPath is empty, the fitness tables are
// written there as the matching codomain file.
func (r *Runner) ProblemInstance(p landscape.InputParameters, fn codomain.Function, codomainPath, problemPath string) error {
	tree, err := cliquetree.New(p, fn, r.rng)
	if err != nil {
		return err
	}
	if codomainPath != "" {
		if err := problemio.WriteCodomainFile(codomainPath, p, tree.CodomainValues()); err != nil {
			return err
		}
	}
	if err := problemio.WriteProblemFile(problemPath, problemio.FromTree(tree)); err != nil {
		return err
	}
	r.logger.Debug("wrote problem instance",
		zap.String("parameters", p.String()),
		zap.String("function", fn.String()),
		zap.Float64("optimum_score", tree.OptimumScore()),
		zap.Int("optima", tree.OptimumCount()),
		zap.String("path", problemPath))
	return nil
}

// CodomainFile expands one configuration file into codomain files under
// <parent>/codomain_files/<config>/, where parent is the directory
// holding the configuration folder. An existing output folder for the
// configuration is replaced.
func (r *Runner) CodomainFile(configPath string) error {
	cfg, err := problemio.ReadConfigurationFile(configPath)
	if err != nil {
		return err
	}
	outDir, err := resetOutputDir(configPath, codomainOutDir)
	if err != nil {
		return err
	}

	params := cfg.Parameters()
	for _, p := range params {
		for num := 0; num < r.instances; num++ {
			path := filepath.Join(outDir, instanceName(cfg.Function, p, num))
			if err := r.CodomainInstance(p, cfg.Function, path); err != nil {
				return err
			}
		}
	}
	r.logger.Info("generated codomain files",
		zap.String("configuration", configPath),
		zap.String("function", cfg.Function.String()),
		zap.Int("combinations", len(params)),
		zap.Int("files", len(params)*r.instances),
		zap.String("output", outDir))
	return nil
}

// ProblemFile expands one configuration file into problem files under
// <parent>/problems/<config>/ plus their codomain files under
// <parent>/codomain_files/<config>/. Existing output folders for the
// configuration are replaced.
func (r *Runner) ProblemFile(configPath string) error {
	cfg, err := problemio.ReadConfigurationFile(configPath)
	if err != nil {
		return err
	}
	codomainDir, err := resetOutputDir(configPath, codomainOutDir)
	if err != nil {
		return err
	}
	problemDir, err := resetOutputDir(configPath, problemOutDir)
	if err != nil {
		return err
	}

	params := cfg.Parameters()
	for _, p := range params {
		for num := 0; num < r.instances; num++ {
			name := instanceName(cfg.Function, p, num)
			err := r.ProblemInstance(p, cfg.Function,
				filepath.Join(codomainDir, name), filepath.Join(problemDir, name))
			if err != nil {
				return err
			}
		}
	}
	r.logger.Info("generated problem files",
		zap.String("configuration", configPath),
		zap.String("function", cfg.Function.String()),
		zap.Int("combinations", len(params)),
		zap.Int("files", len(params)*r.instances),
		zap.String("output", problemDir))
	return nil
}

// CodomainFolder runs CodomainFile for every configuration file in
// <root>/codomain_generation, in file-name order.
func (r *Runner) CodomainFolder(root string) error {
	return r.runFolder(filepath.Join(root, codomainConfigDir), r.CodomainFile)
}

// ProblemFolder runs ProblemFile for every configuration file in
// <root>/problem_generation, in file-name order.
func (r *Runner) ProblemFolder(root string) error {
	return r.runFolder(filepath.Join(root, problemConfigDir), r.ProblemFile)
}

func (r *Runner) runFolder(dir string, run func(string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return landscape.WrapErrorf(err, "read configuration folder %s", dir).WithOperation("Runner.runFolder")
	}
	processed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := run(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
		processed++
	}
	if processed == 0 {
		r.logger.Warn("no configuration files found", zap.String("folder", dir))
	}
	return nil
}

// instanceName builds the file name of one generated instance:
// <function>_<m>_<k>_<o>_<b>_<number>.txt.
func instanceName(fn codomain.Function, p landscape.InputParameters, num int) string {
	return fmt.Sprintf("%s_%d_%d_%d_%d_%d.txt", fn.Slug(), p.M, p.K, p.O, p.B, num)
}

// resetOutputDir resolves <parent>/<kind>/<config-stem> for a
// configuration file at <parent>/<config-folder>/<config-stem>.txt and
// recreates it empty.
func resetOutputDir(configPath, kind string) (string, error) {
	const op = "Runner.resetOutputDir"
	stem := strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath))
	dir := filepath.Join(filepath.Dir(filepath.Dir(configPath)), kind, stem)
	if err := os.RemoveAll(dir); err != nil {
		return "", landscape.WrapErrorf(err, "clear output folder %s", dir).WithOperation(op)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", landscape.WrapErrorf(err, "create output folder %s", dir).WithOperation(op)
	}
	return dir, nil
}
