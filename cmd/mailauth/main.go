package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/altafino/mailauth/internal/config"
	"github.com/altafino/mailauth/internal/logger"
	"github.com/altafino/mailauth/internal/types"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	cfg       *types.Config
	log       *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mailauth",
	Short: "XOAUTH2 credential resolution for mail protocols",
	Long: `Resolves a short-lived OAuth2 access token for a (host, user, port)
identity from a configured credential source and hands it to IMAP/SMTP
sessions via the SASL XOAUTH2 mechanism.`,
}

func init() {
	// Setup default logger until we load config
	log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(log)

	cobra.OnInitialize(initConfig)

	// Command line flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mailauth.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override logging format (text, json, pretty)")

	// Bind flags to viper
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newProvidersCmd())
	rootCmd.AddCommand(newVerifyCmd())
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = "./mailauth.yaml"
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// Commands like encode work without a config file.
			cfg = config.Default()
			applyLogOverrides()
			log = logger.Setup(cfg)
			slog.SetDefault(log)
			return
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded
	applyLogOverrides()

	log = logger.Setup(cfg)
	slog.SetDefault(log)

	log.Debug("configuration loaded",
		"id", cfg.Meta.ID,
		"credential_source", cfg.Credentials.Source,
		"use_curl", cfg.TokenEndpoint.UseCurl,
	)
}

func applyLogOverrides() {
	if v := viper.GetString("logging.level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("logging.format"); v != "" {
		cfg.Logging.Format = v
	}
}
