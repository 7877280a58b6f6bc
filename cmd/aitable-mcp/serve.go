package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/roivaz/aitable-mcp/internal/config"
	"github.com/roivaz/aitable-mcp/internal/logging"
	"github.com/roivaz/aitable-mcp/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (default command)",
		RunE:  runServe,
	}
}

// setup loads settings and builds the root logger.
func setup() (config.Settings, logging.Logger, error) {
	settings, err := config.Load()
	if err != nil {
		return config.Settings{}, logging.Logger{}, err
	}
	logger := logging.New(logging.NewLogr(settings.LogLevel))
	return settings, logger, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, logger, err := setup()
	if err != nil {
		return err
	}
	srv := mcp.New(mcp.DefaultConfig(settings, logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch settings.Transport {
	case config.TransportHTTP:
		return serveHTTP(ctx, srv, settings.Addr(), logger)
	default:
		return serveStdio(ctx, srv, logger)
	}
}

func serveStdio(ctx context.Context, srv *mcp.Server, logger logging.Logger) error {
	stdio := server.NewStdioServer(srv.MCP)
	stdio.SetErrorLogger(log.New(os.Stderr, "stdio: ", log.LstdFlags))

	logger.Info("MCP server listening on stdio")
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, srv *mcp.Server, addr string, logger logging.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
