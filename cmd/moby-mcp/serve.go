package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mobymcp "github.com/dylangroos/moby-mcp"
	"github.com/dylangroos/moby-mcp/filesystem"
	mobyhttp "github.com/dylangroos/moby-mcp/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the moby-mcp HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8000, "HTTP server port")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	_, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	storageRoot := cfg.Storage.Root
	if err := os.MkdirAll(storageRoot, 0o750); err != nil {
		return fmt.Errorf("create root directory: %w", err)
	}

	root, err := os.OpenRoot(storageRoot)
	if err != nil {
		return fmt.Errorf("open root directory: %w", err)
	}
	defer func() { _ = root.Close() }()

	store := filesystem.NewStore(root)

	allowed := mobymcp.NewExtensionSet(cfg.Storage.Extensions)
	auth, err := mobymcp.NewAuthorizer(storageRoot, allowed)
	if err != nil {
		return fmt.Errorf("create authorizer: %w", err)
	}

	service, err := mobymcp.NewService(auth, store)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	var gate *mobymcp.Gate
	if cfg.Auth.Token != "" {
		gate = mobymcp.NewGate(cfg.Auth.Token)
	} else {
		slog.Warn("auth token not configured, serving without authentication")
	}

	corsConfig := cfg.CORS

	handlerConfig := mobyhttp.HandlerConfig{
		Gate:          gate,
		ExemptPaths:   mobyhttp.DefaultExemptPaths,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		CORS:          corsConfig,
	}

	handler := mobyhttp.NewHandler(&handlerConfig, service)

	port := cfg.Server.Port
	addr := fmt.Sprintf(":%d", port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"root", auth.Root(),
		"extensions", allowed.List(),
		"auth", gate != nil,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
