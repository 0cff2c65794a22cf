package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kolkov/bigo/internal/cache"
	"github.com/kolkov/bigo/internal/config"
	"github.com/kolkov/bigo/internal/llm"
	"github.com/kolkov/bigo/internal/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analyzer HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			var llmClient llm.Client
			if cfg.LLM.Enabled {
				key := cfg.APIKey()
				if key == "" {
					return fmt.Errorf("llm enabled but %s is not set", cfg.LLM.APIKeyEnv)
				}
				client, err := llm.New(llm.Options{
					APIKey:      key,
					Model:       cfg.LLM.Model,
					Temperature: cfg.LLM.Temperature,
					MaxRetries:  cfg.LLM.MaxRetries,
					Timeout:     cfg.LLM.Timeout,
				})
				if err != nil {
					return err
				}
				llmClient = client
			}

			var store *cache.Store
			if cfg.Cache.Enabled {
				var err error
				store, err = cache.Open(cache.Options{
					Path:     cfg.Cache.Path,
					InMemory: cfg.Cache.InMemory,
					TTL:      cfg.Cache.TTL,
				})
				if err != nil {
					return err
				}
				defer func() {
					if err := store.Close(); err != nil {
						slog.Error("closing cache", "error", err)
					}
				}()
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(cfg, llmClient, store).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	return cmd
}
