package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup PATH...",
		Short: "Resolve element or group paths and print their values",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			for _, path := range args {
				v, err := a.Lookup(cmd.Context(), path)
				if err != nil {
					return &ExitError{Code: 1, Message: err.Error()}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", path, v)
			}
			return nil
		},
	}
}

func newTreeCommand(opts *options) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "List every element path of the assembly",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			for _, path := range a.Paths() {
				line := path
				if verbose {
					if line, err = a.Describe(path); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show builder kinds and overlay counts.")
	return cmd
}

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run PATH [ARGS...]",
		Short: "Look up a runnable element and run it",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.Run(cmd.Context(), args[0], args[1:]); err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			return nil
		},
	}
}
