package env

import (
	"fmt"

	envpkg "github.com/danieljhkim/churnguard/internal/env"
	"github.com/spf13/cobra"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor [target]",
		Short: "Check required and optional dependencies",
		Long: `Check that all required commands are available.

Optional target can be specified to check command-specific dependencies:
  - "hdfs"       : docker CLI for the relay container
  - "postgres"   : psql and pg_isready (optional)
  - "cassandra"  : cqlsh and nodetool (optional)

Examples:
  churnguard doctor
  churnguard doctor hdfs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) > 0 {
				target = args[0]
			}

			result := envpkg.RunDoctor(target)
			result.Print(cmd.OutOrStdout())

			if result.ExitCode() != 0 {
				return fmt.Errorf("required dependencies are missing")
			}
			return nil
		},
	}

	return cmd
}
