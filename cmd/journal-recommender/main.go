// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the journal-recommender CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/journal-recommender/internal/logging"
	"github.com/pdiddy/journal-recommender/internal/secrets"
	"github.com/pdiddy/journal-recommender/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// rootCmd is the base command for the journal-recommender CLI.
var rootCmd = &cobra.Command{
	Use:   "journal-recommender",
	Short: "Find the best-matching journals for a research paper",
	Long: `journal-recommender sends a paper's subject area, title, and abstract to a
journal recommendation service and presents the top three matches as a
podium: best match, second choice, third choice.

Use "recommend" for a one-off query, "serve" to expose the same flow over
HTTP, and "history" to review past submissions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./journal-recommender.yaml or ~/.config/journal-recommender/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	setDefaults()
}

// setDefaults registers every configuration key so env overrides apply
// even when no config file exists.
func setDefaults() {
	viper.SetDefault("backend.base_url", "http://localhost:8000")
	viper.SetDefault("backend.timeout", "60s")
	viper.SetDefault("backend.user_agent", "journal-recommender/"+version)
	viper.SetDefault("backend.api_token", "")
	viper.SetDefault("backend.max_retries", 2)

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.require_session", false)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "120s")

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.db_path", filepath.Join("data", "history.db"))
	viper.SetDefault("history.max_entries", 500)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("journal-recommender")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "journal-recommender"))
		}
	}

	viper.SetEnvPrefix("JOURNAL_RECOMMENDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// The service URL variable shared with the web front end.
	viper.BindEnv("backend.base_url", "JOURNAL_RECOMMENDER_BACKEND_BASE_URL", "BACKEND_API_URL")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged viper configuration, fills credentials from
// secrets, and installs the process logger.
func loadConfig() (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Backend.APIToken = loadedSecrets.Or(secrets.BackendAPIToken, cfg.Backend.APIToken)

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return cfg, err
	}
	slog.SetDefault(logger)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
