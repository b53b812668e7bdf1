package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/assemblygo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type options struct {
	files     []string
	configDir string
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree. Program output goes to stdout,
// logs and diagnostics to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "assemblygo",
		Short: "Assemble and inspect object graphs from HCL or YAML definitions",
		Long: `assemblygo loads element, group and overlay definitions from .hcl and
.yaml files, assembles them lazily and lets you look up, list or run the
resulting elements.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringArrayVarP(&opts.files, "file", "f", nil, "Assembly file or directory (repeatable).")
	flags.StringVar(&opts.configDir, "config-dir", "", "Override the config directory exposed to builders.")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	rootCmd.AddCommand(
		newLookupCommand(opts),
		newTreeCommand(opts),
		newRunCommand(opts),
	)
	return rootCmd
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// newApp validates the shared flags and builds the App.
func (o *options) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		AssemblyPaths: o.files,
		ConfigDir:     o.configDir,
		LogFormat:     o.logFormat,
		LogLevel:      o.logLevel,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	a, err := app.NewApp(cmd.ErrOrStderr(), cfg, app.CoreModules(cmd.OutOrStdout(), cmd.ErrOrStderr())...)
	if err != nil {
		return nil, &ExitError{Code: 1, Message: err.Error()}
	}
	return a, nil
}

// usageArgs wraps a positional-argument validator so that failures exit
// with the usage code.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return &ExitError{Code: 2, Message: fmt.Sprintf("%s: %v", cmd.CommandPath(), err)}
		}
		return nil
	}
}
