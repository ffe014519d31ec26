package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/dirhist/internal/dirhist"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// AllowedOutputs lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var AllowedOutputs = []string{"table", "json", "yaml"}

func help(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, heredoc.Doc(`
		dirhist counts the files below a directory by size bucket and by extension.

		Usage:

			dirhist [flags] [path]

		Positional Arguments:
		  path                   Directory to analyze. Defaults to current directory if not specified.

		Reports:
		  The total number of files, a histogram of file counts per size bucket
		  and the most common file extensions. Symbolic links are never followed
		  nor counted.

		Flags:
	`))
	fmt.Fprint(out, cmd.Flags().FlagUsages())
}

// Command builds the root command.
// Only the first positional argument is inspected.
func (c CLI) Command() *cobra.Command {
	var options dirhist.Options

	cmd := &cobra.Command{
		Use:           "dirhist [flags] [path]",
		Short:         "Histogram of file sizes and extensions below a directory",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Version {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)

				return nil
			}

			if !slices.Contains(AllowedOutputs, options.Output) {
				return fmt.Errorf("invalid output format %q: must be one of %v", options.Output, AllowedOutputs)
			}

			if options.TopN <= 0 {
				return errors.New("top must be positive")
			}

			if len(args) == 0 {
				options.Path = "."
			} else {
				options.Path = args[0]
			}

			return logic(cmd, options)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false

	flags.IntVarP(&options.TopN, "top", "t", dirhist.DefaultTopN, "Number of top extensions to display")
	flags.StringVarP(&options.Output, "output", "o", "table", "Output format: table, json or yaml")
	flags.BoolVar(&options.NoColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")

	cmd.SetHelpFunc(help)

	return cmd
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute(args []string) error {
	cmd := c.Command()
	cmd.SetArgs(args)

	return cmd.Execute()
}
