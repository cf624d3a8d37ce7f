package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"artcat/internal/config"
	"artcat/internal/logger"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "artcat",
	Short: "Artifact inventory for project tooling",
	Long: `artcat scans a project's tool sources, slash commands, scripts,
validators, schemas and resource sheets, reconciles what it finds
against the existing inventory table, and keeps the table current
without erasing curated data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}

		logCfg := logger.DefaultConfig()
		logCfg.Level = logger.ParseLevel(level)
		logCfg.Format = cfg.LogFormat
		logger.Init(logCfg)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, defaults apply without one)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}
