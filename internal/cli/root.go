package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cassandrapkg "github.com/danieljhkim/churnguard/internal/cassandra"
	"github.com/danieljhkim/churnguard/internal/cli/cassandra"
	"github.com/danieljhkim/churnguard/internal/cli/env"
	"github.com/danieljhkim/churnguard/internal/cli/hdfs"
	"github.com/danieljhkim/churnguard/internal/cli/postgres"
	"github.com/danieljhkim/churnguard/internal/cli/setting"
	"github.com/danieljhkim/churnguard/internal/cli/wrappers"
	"github.com/danieljhkim/churnguard/internal/config"
	envpkg "github.com/danieljhkim/churnguard/internal/env"
	"github.com/danieljhkim/churnguard/internal/logging"
	"github.com/danieljhkim/churnguard/internal/util"
)

// logFileOff disables the diagnostic log file
const logFileOff = "none"

var (
	// Global paths instance
	paths *config.Paths

	logLevel  string
	logFormat string
	logFile   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "churnguard",
	Short: "Operate the ChurnGuard data platform",
	Long: `churnguard: operate the ChurnGuard data platform.

Moves files in and out of HDFS through the namenode container, inspects CSV
data stored there, and initializes the PostgreSQL and Cassandra schemas.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and runs it with ctx.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	defer logging.Sync()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "warn", "Diagnostic log level on stderr (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "console", "Diagnostic log format on stderr (console, json)")
	flags.StringVar(&logFile, "log-file", "", `Diagnostic log file (default: $CHURNGUARD_HOME/logs/churnguard.log, "none" disables)`)

	runner := envpkg.NewExecRunner()

	rootCmd.AddCommand(hdfs.NewHDFSCmd(getPaths, runner))
	rootCmd.AddCommand(postgres.NewPostgresCmd(getPaths))
	rootCmd.AddCommand(cassandra.NewCassandraCmd(getPaths, cassandrapkg.Connect))
	rootCmd.AddCommand(setting.NewSettingCmd(getPaths))
	rootCmd.AddCommand(env.NewDoctorCmd())
	rootCmd.AddCommand(NewLogsCmd(getPaths))

	// Add wrapper commands
	rootCmd.AddCommand(wrappers.NewDFSCmd(getPaths, runner))
}

// setup loads .env and installs the diagnostic logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := logging.Config{
		Level:  logLevel,
		Format: logFormat,
		File:   logFile,
	}
	switch cfg.File {
	case "":
		cfg.File = getPaths().DefaultLogFile()
	case logFileOff:
		cfg.File = ""
	}

	if err := logging.Init(cfg); err != nil {
		util.Warn("Diagnostic log file disabled: %v", err)
		cfg.File = ""
		if err := logging.Init(cfg); err != nil {
			return err
		}
	}

	logging.L().Debug("command started",
		zap.String("command", cmd.CommandPath()),
		zap.Strings("args", args),
		zap.String("base_dir", getPaths().BaseDir))
	return nil
}

// initConfig resolves the base directory
func initConfig() {
	paths = config.NewPaths(config.DefaultBaseDir())
}

// getPaths returns the global paths instance
// This is passed to subcommands as a getter function
func getPaths() *config.Paths {
	if paths == nil {
		initConfig()
	}
	return paths
}
