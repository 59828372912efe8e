// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the startup-analyzer CLI.
// Subcommands run one analysis from the terminal, serve the HTTP API, and
// manage stored projects and the built-in role instructions.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/startup-analyzer/internal/secrets"
	"github.com/pdiddy/startup-analyzer/internal/telemetry"
	"github.com/pdiddy/startup-analyzer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the resolved configuration, filled in PersistentPreRunE.
	cfg types.Config

	// logger writes structured logs to stderr.
	logger *slog.Logger

	// creds resolves API keys: .secrets/ files first, then the environment.
	creds secrets.Source
)

// rootCmd is the base command for the startup-analyzer CLI.
var rootCmd = &cobra.Command{
	Use:   "startup-analyzer",
	Short: "Multi-role AI analysis of startup ideas",
	Long: `startup-analyzer sends a startup idea through a fixed pipeline of nine
AI roles: six specialists (market, cost, strategy, monetization, legal,
technology), a strategist who synthesizes their reports, a critic who
stress-tests the synthesis, and a final refinement.

Run one analysis with "analyze", or start the HTTP API with "serve".
Analyses can be saved as projects and exported as Markdown, YAML, or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		l, err := telemetry.NewLogger(os.Stderr, cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)

		loaded, err := secrets.Load(cfg.Secrets.Dir, os.Stderr)
		if err != nil {
			return err
		}
		if len(loaded) > 0 {
			keys := make([]string, 0, len(loaded))
			for k := range loaded {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		creds = secrets.Chain{loaded, secrets.Env{}}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./startup-analyzer.yaml or ~/.config/startup-analyzer/startup-analyzer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("provider", "", "model provider: anthropic, groq, bedrock")
	rootCmd.PersistentFlags().String("model", "", "model identifier (default depends on provider)")
	rootCmd.PersistentFlags().String("db", "", "project database path")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("model.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("model.name", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("db"))
}

// setDefaults registers every configuration key so that environment
// variables are seen by viper.Unmarshal.
func setDefaults() {
	viper.SetDefault("model.provider", string(types.ProviderAnthropic))
	viper.SetDefault("model.name", "")
	viper.SetDefault("model.temperature", 0.7)
	viper.SetDefault("model.max_tokens", 4096)
	viper.SetDefault("model.timeout", 5*time.Minute)
	viper.SetDefault("model.base_url", "")
	viper.SetDefault("model.region", "")
	viper.SetDefault("model.profile", "")
	viper.SetDefault("store.path", filepath.Join("data", "startup-analyzer.db"))
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.read_header_timeout", 10*time.Second)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("secrets.dir", ".secrets/")
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("startup-analyzer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "startup-analyzer"))
		}
	}

	viper.SetEnvPrefix("STARTUP_ANALYZER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
