package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information - these will be set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "idprovider %s (commit %s, %s %s/%s)\n",
				Version, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
