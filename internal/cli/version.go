package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Andre-Pham/FamApp-sub000/pkg/buildinfo"
)

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), appName)
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
