package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the idprovider command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "idprovider",
		Short: "Allocate integer identifiers",
		Long: `idprovider hands out integer identifiers, draining an optional reserved
pool (last entry first) before drawing random identifiers that never repeat
within a scope.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(NewPopCommand())
	rootCmd.AddCommand(NewVersionCommand())
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
