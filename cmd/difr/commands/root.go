// Package commands implements the difr cobra commands.
package commands

import (
	"github.com/spf13/cobra"
)

// compareArgCount is the number of positional arguments of the root command.
const compareArgCount = 2

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
	quiet      bool
	logJSON    bool
}

// NewRootCommand creates the difr root command. Invoked with two paths it
// compares the files, the subcommands cover everything else.
func NewRootCommand() *cobra.Command {
	globals := &globalFlags{}
	flags := &compareFlags{}

	rootCmd := &cobra.Command{
		Use:   "difr file1 file2",
		Short: "Compare two files line by line",
		Long: `difr compares two files position by position.

It prints the size and line count of both files and their SHA3-256 digests.
Identical digests end the comparison. Otherwise the Nth line of the first file
is paired with the Nth line of the second and every differing position is
reported, followed by the lines left over when one file is longer.

Binary files are compared by digest only.

Examples:
  difr a.txt b.txt                         # Coloured text report
  difr --exclude-empty-lines a.txt b.txt   # Ignore blank lines
  difr --from 10 --to 20 a.txt b.txt       # Compare source lines [10, 20)
  difr -f json -o report.json a.txt b.txt  # Machine-readable report
  difr --exit-code -q a.txt b.txt          # Exit status only`,
		Args:          cobra.ExactArgs(compareArgCount),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, globals, flags, args[0], args[1])
		},
	}

	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "config file (default is ./.difr.yaml or $HOME/.difr.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globals.quiet, "quiet", "q", false, "suppress output")
	rootCmd.PersistentFlags().BoolVar(&globals.logJSON, "log-json", false, "emit logs as JSON")

	flags.register(rootCmd)

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(completionCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(mcpCmd(globals))

	return rootCmd
}
