package hdfs

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/env"
	hdfspkg "github.com/danieljhkim/churnguard/internal/hdfs"
	"github.com/danieljhkim/churnguard/internal/util"
)

func newTestCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check that the relay container is up and HDFS answers",
		Long: `Check HDFS connectivity in two stages:

  relay       the namenode container is running (docker ps)
  filesystem  "hdfs dfs -ls /" succeeds inside the container

The filesystem stage is skipped when the relay stage fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge, _, err := newBridge(pathsGetter, runner)
			if err != nil {
				return err
			}

			util.Log("Testing HDFS connection...")
			report, err := bridge.CheckConnectivity(cmd.Context())

			rows := make([]util.StatusTableRow, 0, len(report.Stages))
			for _, stage := range report.Stages {
				status := "OK"
				if !stage.OK {
					status = "FAIL"
				}
				rows = append(rows, util.StatusTableRow{
					Name:   string(stage.Stage),
					Status: status,
					Detail: stage.Detail,
					Ok:     stage.OK,
				})
			}
			util.StatusTable(cmd.OutOrStdout(), rows)

			if err != nil {
				util.Fail("HDFS connection failed (stage: %s)", report.FailedStage)
				if errors.Is(err, hdfspkg.ErrRelayUnavailable) {
					util.Log("Start it using: docker compose up -d %s", bridge.Container())
				}
				return err
			}

			util.Success("HDFS connection successful")
			return nil
		},
	}

	return cmd
}
