package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerview/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the résumé, career matching, learning path and persona chat endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	svc, cleanup, err := newService(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer func() {
		if err := cleanup.Close(); err != nil {
			log.Warn("cleanup failed", zap.Error(err))
		}
	}()

	if !cfg.Auth.Enabled() {
		log.Warn("auth.admin_secret not set; admin endpoints are open")
	}
	return server.New(svc, cfg, log).Start()
}
