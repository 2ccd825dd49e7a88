package hdfs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/env"
	"github.com/danieljhkim/churnguard/internal/util"
)

func newListCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List files in an HDFS directory",
		Long: `List files in an HDFS directory. Defaults to the raw-data directory.

Examples:
  churnguard hdfs list
  churnguard hdfs list archive
  churnguard hdfs list /tmp`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge, _, err := newBridge(pathsGetter, runner)
			if err != nil {
				return err
			}

			dir := bridge.RawDir()
			target := ""
			if len(args) > 0 {
				target = args[0]
				dir = bridge.Resolve(target)
			}

			util.Log("Listing files in: %s", dir)
			entries, err := bridge.List(cmd.Context(), target)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				util.Log("Directory is empty")
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}

	return cmd
}
