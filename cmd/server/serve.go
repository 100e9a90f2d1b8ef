package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/projtrack/internal/mcp"
	"github.com/rpggio/projtrack/internal/transport"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and the MCP endpoint over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *configPath, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.serveHTTP(ctx)
		},
	}
}

// serveHTTP runs the HTTP server until ctx is canceled, then shuts it down
// within the configured timeout.
func (a *app) serveHTTP(ctx context.Context) error {
	var mcpHandler http.Handler
	if !a.cfg.MCP.Disabled {
		mcpHandler = mcp.NewHTTPHandler(mcp.NewServer(mcp.Config{
			Projects: a.projects,
			Logger:   a.logger.Named("mcp"),
			Version:  version,
		}))
	}

	httpServer := &http.Server{
		Addr: a.cfg.Server.Addr(),
		Handler: transport.NewServer(transport.Config{
			Projects: a.projects,
			MCP:      mcpHandler,
			Logger:   a.logger.Named("http"),
			Version:  version,
		}),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening",
			zap.String("addr", httpServer.Addr),
			zap.Bool("mcp", mcpHandler != nil),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		a.logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("server error", zap.Error(err))
		return err
	}
	return nil
}
