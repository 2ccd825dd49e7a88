package hdfs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/danieljhkim/churnguard/internal/env"
	hdfspkg "github.com/danieljhkim/churnguard/internal/hdfs"
	"github.com/danieljhkim/churnguard/internal/logging"
)

// PathsGetter is a function that returns the Paths instance
type PathsGetter func() *config.Paths

// NewHDFSCmd creates the hdfs command with all subcommands
func NewHDFSCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hdfs",
		Short: "Upload, list and inspect files in HDFS",
		Long: `Upload, list and inspect files in HDFS.

Every operation is relayed through the namenode container: files are copied
into the container with "docker cp" and moved in or out of HDFS with
"hdfs dfs". Relative paths resolve under the raw-data directory
(hdfs.namenode + hdfs.root + hdfs.raw-subdir).`,
	}

	cmd.AddCommand(newTestCmd(pathsGetter, runner))
	cmd.AddCommand(newListCmd(pathsGetter, runner))
	cmd.AddCommand(newUploadCmd(pathsGetter, runner))
	cmd.AddCommand(newReadCmd(pathsGetter, runner))
	cmd.AddCommand(newSampleCmd(pathsGetter, runner))
	cmd.AddCommand(newStatsCmd(pathsGetter, runner))
	cmd.AddCommand(newInfoCmd(pathsGetter, runner))

	return cmd
}

// newBridge builds a bridge from the effective settings
func newBridge(pathsGetter PathsGetter, runner env.Runner) (*hdfspkg.Bridge, *config.Settings, error) {
	settings, err := config.NewSettingsManager(pathsGetter()).Resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return hdfspkg.NewBridge(settings.HDFS, runner, logging.L()), settings, nil
}
