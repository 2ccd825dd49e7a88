package setting

import (
	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/spf13/cobra"
)

// PathsGetter is a function that returns the Paths instance.
type PathsGetter func() *config.Paths

// NewSettingCmd creates the setting command with all subcommands.
func NewSettingCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Manage user settings",
		Long: `Manage user settings for churnguard.

Settings are persisted at $CHURNGUARD_HOME/settings/settings.yaml.
Every key can be overridden for a single run with an environment variable,
e.g. hdfs.container -> CHURNGUARD_HDFS_CONTAINER. A .env file in the working
directory is loaded first.`,
	}

	cmd.AddCommand(newListCmd(pathsGetter))
	cmd.AddCommand(newSetCmd(pathsGetter))
	cmd.AddCommand(newShowCmd(pathsGetter))

	return cmd
}
