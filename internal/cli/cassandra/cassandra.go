package cassandra

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cassandrapkg "github.com/danieljhkim/churnguard/internal/cassandra"
	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/danieljhkim/churnguard/internal/logging"
	"github.com/danieljhkim/churnguard/internal/util"
)

// PathsGetter is a function that returns the Paths instance
type PathsGetter func() *config.Paths

// Connector opens a session against the configured cluster
type Connector func(cfg config.CassandraConfig, logger *zap.Logger) (cassandrapkg.Session, error)

// NewCassandraCmd creates the cassandra command with all subcommands
func NewCassandraCmd(pathsGetter PathsGetter, connect Connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cassandra",
		Short: "Initialize and test the Cassandra store",
		Long: `Initialize and test the Cassandra store that holds customer events
and support tickets.

Connection parameters come from the cassandra.* settings
(see 'churnguard setting list').`,
	}

	cmd.AddCommand(newInitCmd(pathsGetter, connect))
	cmd.AddCommand(newTestCmd(pathsGetter, connect))

	return cmd
}

func newInitCmd(pathsGetter PathsGetter, connect Connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the keyspace and recreate its tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(pathsGetter)
			if err != nil {
				return err
			}

			session, err := connect(cfg, logging.L())
			if err != nil {
				util.Fail("Error connecting to Cassandra: %v", err)
				util.Log("Tip: Make sure the Cassandra container is fully started (may take 60-90 seconds)")
				return err
			}
			defer session.Close()

			util.Log("Initializing Cassandra keyspace %s", cfg.Keyspace)
			if err := cassandrapkg.Init(cmd.Context(), session, cfg); err != nil {
				util.Fail("Schema initialization failed")
				return err
			}

			util.Success("Cassandra schema initialized successfully")
			return nil
		},
	}

	return cmd
}

func newTestCmd(pathsGetter PathsGetter, connect Connector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Connect and print the release version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(pathsGetter)
			if err != nil {
				return err
			}

			version, err := releaseVersion(cmd, cfg, connect)
			if err != nil {
				util.Fail("Connection failed: %v", err)
				fmt.Fprintln(cmd.ErrOrStderr(), "\nTroubleshooting:")
				for i, hint := range cassandrapkg.Hints {
					fmt.Fprintf(cmd.ErrOrStderr(), "%d. %s\n", i+1, hint)
				}
				return err
			}

			util.Success("Connected to Cassandra")
			fmt.Fprintf(cmd.OutOrStdout(), "  Version: %s\n", version)
			return nil
		},
	}

	return cmd
}

func releaseVersion(cmd *cobra.Command, cfg config.CassandraConfig, connect Connector) (string, error) {
	session, err := connect(cfg, logging.L())
	if err != nil {
		return "", err
	}
	defer session.Close()

	return session.ReleaseVersion(cmd.Context())
}

func resolve(pathsGetter PathsGetter) (config.CassandraConfig, error) {
	settings, err := config.NewSettingsManager(pathsGetter()).Resolve()
	if err != nil {
		return config.CassandraConfig{}, fmt.Errorf("failed to load settings: %w", err)
	}
	logging.L().Debug("resolved cassandra settings",
		zap.String("hosts", strings.Join(settings.Cassandra.Hosts, ",")),
		zap.Int("port", settings.Cassandra.Port),
		zap.String("keyspace", settings.Cassandra.Keyspace))
	return settings.Cassandra, nil
}
