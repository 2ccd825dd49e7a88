package postgres

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/danieljhkim/churnguard/internal/logging"
	postgrespkg "github.com/danieljhkim/churnguard/internal/postgres"
	"github.com/danieljhkim/churnguard/internal/util"
)

// PathsGetter is a function that returns the Paths instance
type PathsGetter func() *config.Paths

// NewPostgresCmd creates the postgres command with all subcommands
func NewPostgresCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "postgres",
		Short: "Initialize and test the PostgreSQL store",
		Long: `Initialize and test the PostgreSQL store that holds customer records.

Connection parameters come from the postgres.* settings
(see 'churnguard setting list').`,
	}

	cmd.AddCommand(newInitCmd(pathsGetter))
	cmd.AddCommand(newTestCmd(pathsGetter))

	return cmd
}

func newInitCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Drop and recreate the customers table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := open(pathsGetter)
			if err != nil {
				return err
			}
			defer db.Close()

			util.Log("Initializing PostgreSQL schema on %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
			if err := postgrespkg.InitSchema(cmd.Context(), db, logging.L()); err != nil {
				util.Fail("Schema initialization failed")
				return err
			}

			util.Success("PostgreSQL schema initialized successfully")
			return nil
		},
	}

	return cmd
}

func newTestCmd(pathsGetter PathsGetter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Connect and print the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := open(pathsGetter)
			if err != nil {
				return err
			}
			defer db.Close()

			version, err := postgrespkg.Version(cmd.Context(), db)
			if err != nil {
				util.Fail("Connection failed: %v", err)
				return err
			}

			util.Success("Connected to PostgreSQL")
			fmt.Fprintf(cmd.OutOrStdout(), "  Version: %s\n", postgrespkg.ShortVersion(version))
			return nil
		},
	}

	return cmd
}

func open(pathsGetter PathsGetter) (*sql.DB, *config.PostgresConfig, error) {
	settings, err := config.NewSettingsManager(pathsGetter()).Resolve()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	db, err := postgrespkg.Open(settings.Postgres)
	if err != nil {
		return nil, nil, err
	}
	return db, &settings.Postgres, nil
}
