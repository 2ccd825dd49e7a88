package hdfs

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/env"
	"github.com/danieljhkim/churnguard/internal/util"
)

func newSampleCmd(pathsGetter PathsGetter, runner env.Runner) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "sample <file>",
		Short: "Show the first rows of a CSV file in HDFS",
		Long: `Show the first rows of a CSV file in HDFS, followed by its shape and columns.

Examples:
  churnguard hdfs sample telco_churn.csv
  churnguard hdfs sample telco_churn.csv --rows 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 {
				return fmt.Errorf("--rows must not be negative, got %d", rows)
			}

			f, err := download(cmd, pathsGetter, runner, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			util.Section(out, "Sample data from %s (first %d rows)", args[0], rows)
			if err := f.Render(out, rows); err != nil {
				return err
			}

			r, c := f.Shape()
			fmt.Fprintf(out, "\nShape: (%d, %d)\n", r, c)
			fmt.Fprintf(out, "Columns: [%s]\n", strings.Join(f.Columns(), ", "))
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "Number of rows to show")

	return cmd
}
