package hdfs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/env"
	"github.com/danieljhkim/churnguard/internal/frame"
	"github.com/danieljhkim/churnguard/internal/util"
)

func newReadCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a CSV file from HDFS and report its shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := download(cmd, pathsGetter, runner, args[0])
			if err != nil {
				return err
			}

			rows, cols := f.Shape()
			fmt.Fprintf(cmd.OutOrStdout(), "DataFrame loaded with shape: (%d, %d)\n", rows, cols)
			return nil
		},
	}

	return cmd
}

// download fetches and parses a remote CSV, reporting progress on stderr
func download(cmd *cobra.Command, pathsGetter PathsGetter, runner env.Runner, remote string) (*frame.Frame, error) {
	bridge, _, err := newBridge(pathsGetter, runner)
	if err != nil {
		return nil, err
	}

	util.Log("Reading CSV from HDFS: %s", bridge.Resolve(remote))
	f, err := bridge.Download(cmd.Context(), remote)
	if err != nil {
		return nil, err
	}
	util.Success("Successfully loaded %d rows", f.Rows())
	return f, nil
}
