package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/voice-studio/internal/config"
	"github.com/example/voice-studio/internal/server"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	activeCfg    config.Config
	configLoaded bool
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "voicestudio",
		Short: "Voice Studio command line",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			configLoaded = true
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newVoicesCmd())
	cmd.AddCommand(newLiveCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHealthCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := server.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if !configLoaded {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}
