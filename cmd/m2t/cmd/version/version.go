package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X mp3-to-text/cmd/m2t/cmd/version.version=..."
var version = "v0.1.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of m2t",
	Long:  `All software has versions. This is m2t's.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version)
		return nil
	},
}

// Version returns the build version.
func Version() string {
	return version
}
