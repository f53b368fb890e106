// Command pvm operates a process engine from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:           "pvm",
	Short:         "Run and inspect business processes",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `pvm runs process definitions loaded from YAML files.

Process state is stored in a BoltDB file by default. Set --sql-driver and
--sql-dsn to use a SQLite ("sqlite") or PostgreSQL ("pgx") database instead.
Every flag may also be set with a PVM_ environment variable, such as
PVM_SQL_DSN, or in the file named by --config.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfigFile()
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("PVM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfigFile reads the file named by the --config flag, if any.
func loadConfigFile() error {
	f := viper.GetString("config")
	if f == "" {
		return nil
	}

	viper.SetConfigFile(f)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	return nil
}

func addPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (YAML, JSON or TOML)")
	flags.String("definitions", "definitions", "directory containing process definition files")
	flags.String("bolt-path", "pvm.boltdb", "path to the BoltDB database file")
	flags.String("sql-driver", "", "SQL driver name, either 'sqlite' or 'pgx'")
	flags.String("sql-dsn", "", "SQL data source name")
	flags.String("cluster-key", "pvm", "key of the data shared by the nodes of a cluster")
	flags.String("node-id", "", "ID of this node, random if empty")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	for _, n := range []string{
		"config",
		"definitions",
		"bolt-path",
		"sql-driver",
		"sql-dsn",
		"cluster-key",
		"node-id",
		"log-level",
	} {
		_ = viper.BindPFlag(n, flags.Lookup(n))
	}
}

func registerCommands() {
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(definitionsCmd())
	rootCmd.AddCommand(startCmd())
	rootCmd.AddCommand(signalCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(jobCmd())
	rootCmd.AddCommand(incidentsCmd())
	rootCmd.AddCommand(schemaCmd())
}

// newLogger returns a logger that writes at the configured level.
func newLogger() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(viper.GetString("log-level")); err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build()
}

// setMaxProcs sets GOMAXPROCS to match the container's CPU quota.
func setMaxProcs(logger *zap.Logger) {
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf)); err != nil {
		logger.Warn("unable to set GOMAXPROCS", zap.Error(err))
	}
}
