package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/voice-studio/internal/config"
	"github.com/example/voice-studio/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Voice Studio HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			srv := server.New(cfg).
				WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeout) * time.Second)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	defaults := config.DefaultConfig()
	config.RegisterFlags(cmd.Flags(), defaults)

	return cmd
}
