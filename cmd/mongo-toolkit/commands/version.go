package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/version"

	"github.com/thoreinstein/mongo-toolkit/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date, Go runtime and MongoDB driver version of mongo-toolkit.`,
	Run: func(c *cobra.Command, _ []string) {
		out := c.OutOrStdout()
		fmt.Fprintf(out, "mongo-toolkit version %s\n", cmd.Version)
		fmt.Fprintf(out, "  commit:    %s\n", cmd.Commit)
		fmt.Fprintf(out, "  built:     %s\n", cmd.Date)
		fmt.Fprintf(out, "  go:        %s\n", runtime.Version())
		fmt.Fprintf(out, "  driver:    %s\n", version.Driver)
	},
}
