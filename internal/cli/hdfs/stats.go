package hdfs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/env"
	"github.com/danieljhkim/churnguard/internal/frame"
	"github.com/danieljhkim/churnguard/internal/util"
)

func newStatsCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Show column types, missing values and summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := download(cmd, pathsGetter, runner, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows, cols := f.Shape()
			util.Section(out, "Statistics for %s", args[0])
			fmt.Fprintf(out, "Total rows: %d\n", rows)
			fmt.Fprintf(out, "Total columns: %d\n", cols)

			fmt.Fprintln(out, "\nColumn types:")
			if err := f.RenderKinds(out); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nMissing values:")
			if err := f.RenderMissing(out); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nNumeric columns summary:")
			if err := frame.RenderDescribe(out, f.Describe()); err != nil {
				return err
			}

			if text := f.DescribeText(); len(text) > 0 {
				fmt.Fprintln(out, "\nText columns summary:")
				if err := frame.RenderDescribeText(out, text); err != nil {
					return err
				}
			}
			return nil
		},
	}

	return cmd
}
