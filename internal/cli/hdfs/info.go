package hdfs

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/env"
)

func newInfoCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show name, size and modification time of a file in HDFS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bridge, _, err := newBridge(pathsGetter, runner)
			if err != nil {
				return err
			}

			info, err := bridge.Stat(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File info for %s:\n", info.Path)
			fmt.Fprintf(out, "  name:     %s\n", info.Name)
			fmt.Fprintf(out, "  size:     %d bytes\n", info.Size)
			fmt.Fprintf(out, "  modified: %s\n", info.ModTime.Format(time.DateTime))
			return nil
		},
	}

	return cmd
}
