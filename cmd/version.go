package cmd

import (
	"fmt"

	"github.com/fbz-tec/skytrack/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "skytrack %s\nBuild time: %s\nGit commit: %s\n",
			version.AppVersion, version.BuildTime, version.GitCommit)
	},
}
