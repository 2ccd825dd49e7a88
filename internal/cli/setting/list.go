package setting

import (
	"fmt"
	"os"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/spf13/cobra"
)

func newListCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configurable user settings",
		Long: `List all configurable user settings and their persisted values.

Keys overridden by an environment variable are marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sm := config.NewSettingsManager(pathsGetter())
			settings, err := sm.LoadOrDefault()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, key := range config.Keys() {
				value, err := settings.Get(key)
				if err != nil {
					return err
				}
				if config.IsSecret(key) {
					value = maskedPassword(value)
				}

				line := fmt.Sprintf("- %s: %s", key, value)
				if _, ok := os.LookupEnv(config.EnvVar(key)); ok {
					line += fmt.Sprintf(" (overridden by %s)", config.EnvVar(key))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	return cmd
}

func maskedPassword(value string) string {
	if value == "" {
		return ""
	}
	return "********"
}
