package wrappers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/danieljhkim/churnguard/internal/env"
	hdfspkg "github.com/danieljhkim/churnguard/internal/hdfs"
	"github.com/danieljhkim/churnguard/internal/logging"
)

// NewDFSCmd creates the dfs wrapper command
func NewDFSCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dfs [args...]",
		Short: "Run hdfs dfs commands inside the relay container",
		Long: `Run "hdfs dfs" with the given arguments inside the relay container.

Examples:
  churnguard dfs -ls /
  churnguard dfs -cat /churnguard/data/raw/telco_churn.csv
  churnguard dfs -rm -r /churnguard/tmp`,
		DisableFlagParsing: true, // Critical: pass all args through
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
				return cmd.Help()
			}

			settings, err := config.NewSettingsManager(pathsGetter()).Resolve()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			bridge := hdfspkg.NewBridge(settings.HDFS, runner, logging.L())

			return bridge.StreamDFS(cmd.Context(), args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	return cmd
}
