package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/danieljhkim/churnguard/internal/util"
	"github.com/spf13/cobra"
)

// NewLogsCmd creates the logs command
func NewLogsCmd(pathsGetter func() *config.Paths) *cobra.Command {
	var (
		lines int
		file  string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the most recent diagnostic log entries",
		Long: `Display the most recent entries of the diagnostic log file.

Every command appends its debug trace (relay commands, exit codes, cleanup
failures) to $CHURNGUARD_HOME/logs/churnguard.log unless --log-file says otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = pathsGetter().DefaultLogFile()
			}

			tail, err := tailFile(file, lines)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					util.Log("No log file yet at %s", file)
					return nil
				}
				return err
			}

			out := cmd.OutOrStdout()
			util.Section(out, "%s", file)
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 120, "Number of lines to show")
	cmd.Flags().StringVar(&file, "file", "", "Log file to read (default: $CHURNGUARD_HOME/logs/churnguard.log)")

	return cmd
}

// tailFile returns the last n lines of path
func tailFile(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if n <= 0 {
		return nil, nil
	}

	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ring, nil
}
