package setting

import (
	"fmt"
	"os"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/spf13/cobra"
)

func newSetCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configurable user setting",
		Long: `Set a configurable user setting.

Values are validated per key: ports must be integers between 1 and 65535,
cassandra.hosts takes a comma-separated list, durations use Go syntax (10s).
Run 'churnguard setting list' for the supported keys.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			sm := config.NewSettingsManager(pathsGetter())
			settings, err := sm.LoadOrDefault()
			if err != nil {
				return err
			}

			if err := settings.Set(key, value); err != nil {
				return err
			}

			if err := sm.Save(settings); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s in %s\n", key, sm.Path())
			if _, ok := os.LookupEnv(config.EnvVar(key)); ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: %s is set and takes precedence over the saved value.\n", config.EnvVar(key))
			}
			return nil
		},
	}

	return cmd
}
