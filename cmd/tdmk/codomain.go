package main

import (
	"github.com/spf13/cobra"

	"github.com/copyleftdev/TDMK/internal/landscape/codomain"
)

func newCodomainCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codomain",
		Short: "Generate codomain files (per-clique fitness tables)",
	}
	cmd.AddCommand(newCodomainInstanceCmd(opts))
	cmd.AddCommand(newCodomainFileCmd(opts))
	cmd.AddCommand(newCodomainFolderCmd(opts))
	return cmd
}

func newCodomainInstanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "instance M K O B FILE FUNCTION [PARAMETER]",
		Short: "Generate a single codomain file",
		Example: `  tdmk codomain instance 5 3 1 2 codomain.txt random
  tdmk codomain instance 5 3 1 2 codomain.txt nk-q 3`,
		Args: cobra.MinimumNArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParameterArgs(args[:4])
			if err != nil {
				return err
			}
			fn, err := codomain.ParseFunctionArgs(args[5:])
			if err != nil {
				return err
			}
			runner, logger, err := opts.newRunner()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runner.CodomainInstance(p, fn, args[4])
		},
	}
}

func newCodomainFileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "file CONFIGURATION...",
		Short: "Expand configuration files into codomain files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, logger, err := opts.newRunner()
			if err != nil {
				return err
			}
			defer logger.Sync()
			for _, path := range args {
				if err := runner.CodomainFile(path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCodomainFolderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "folder ROOT...",
		Short: "Expand every configuration in <root>/codomain_generation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, logger, err := opts.newRunner()
			if err != nil {
				return err
			}
			defer logger.Sync()
			for _, root := range args {
				if err := runner.CodomainFolder(root); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
