package cmd

import (
	"strings"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/client"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/config"
	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagServer   string
	flagDB       string
	flagActor    string
	flagLogLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pmsledger",
	Short: "Double-entry accounting core for residential property management",
	Long: "pmsledger keeps the books for a residential portfolio: tenant charges and payments, " +
		"recurring rent, scheduled rent increases, receivables aging and financial reports, " +
		"all posted to an append-only double-entry ledger backed by SQLite.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			loaded.Database.Path = flagDB
		}
		if cmd.Flags().Changed("actor") {
			loaded.Server.DefaultActor = flagActor
		}
		if flagLogLevel != "" {
			loaded.Log.Level = strings.ToLower(flagLogLevel)
		}
		cfg = loaded
		return logger.Setup(cfg.LoggerConfig())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "pmsledger.yaml", "Config file (optional)")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8888", "Server address")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "pmsledger.db", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", "", "User recorded as postedBy")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func Execute() error {
	return rootCmd.Execute()
}

func newClient() *client.Client {
	return client.New(flagServer).WithActor(flagActor)
}
