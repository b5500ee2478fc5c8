package main

import (
	"github.com/spf13/cobra"

	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
)

func newProblemCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Generate problem files (landscapes with their global optima)",
	}
	cmd.AddCommand(newProblemInstanceCmd(opts))
	cmd.AddCommand(newProblemFileCmd(opts))
	cmd.AddCommand(newProblemFolderCmd(opts))
	return cmd
}

func newProblemInstanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "instance M K O B CODOMAIN_FILE PROBLEM_FILE FUNCTION [PARAMETER]",
		Short: "Generate a single landscape instance",
		Long: `Constructs one landscape, writes its fitness tables to CODOMAIN_FILE
and the clique layout plus the exhaustive global optimum set to
PROBLEM_FILE.`,
		Example: `  tdmk problem instance 5 3 1 2 codomain.txt problem.txt deceptive-trap
  tdmk problem instance 10 4 2 2 codomain.txt problem.txt nk-p 0.3`,
		Args: cobra.MinimumNArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParameterArgs(args[:4])
			if err != nil {
				return err
			}
			fn, err := codomain.ParseFunctionArgs(args[6:])
			if err != nil {
				return err
			}
			runner, logger, err := opts.newRunner()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runner.ProblemInstance(p, fn, args[4], args[5])
		},
	}
}

func newProblemFileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "file CONFIGURATION...",
		Short: "Expand configuration files into problem instances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, logger, err := opts.newRunner()
			if err != nil {
				return err
			}
			defer logger.Sync()
			for _, path := range args {
				if err := runner.ProblemFile(path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newProblemFolderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "folder ROOT...",
		Short: "Expand every configuration in <root>/problem_generation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, logger, err := opts.newRunner()
			if err != nil {
				return err
			}
			defer logger.Sync()
			for _, root := range args {
				if err := runner.ProblemFolder(root); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
