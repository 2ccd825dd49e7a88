package setting

import (
	"fmt"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/spf13/cobra"
)

func newShowCmd(pathsGetter PathsGetter) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show the effective value of one setting",
		Long: `Show the effective value of one setting: the persisted value, or the
environment override when one is set. Secrets are masked unless --reveal is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			settings, err := config.NewSettingsManager(pathsGetter()).Resolve()
			if err != nil {
				return err
			}

			value, err := settings.Get(key)
			if err != nil {
				return err
			}
			if config.IsSecret(key) && !reveal {
				value = maskedPassword(value)
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "Print secret values in clear text")

	return cmd
}
