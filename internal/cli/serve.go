package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/signdeck/internal/api"
	"github.com/phrazzld/signdeck/internal/platform/logger"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(g *globals) *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.Setup(g.cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}
			g.logger = log

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return g.withApp(cmd, catalogPath, func(app *application) error {
				return app.serve(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file (overrides config)")
	return cmd
}

// serve runs the HTTP server until ctx is canceled, then shuts it down
// gracefully.
func (app *application) serve(ctx context.Context) error {
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: api.NewRouter(api.RouterConfig{
			Engine:              app.engine,
			Catalog:             app.catalog,
			JWTService:          app.jwtService,
			DefaultSessionCount: app.config.Session.DefaultCount,
			Logger:              app.logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server",
			slog.Int("port", app.config.Server.Port),
			slog.String("backend", app.config.Storage.Backend),
			slog.Bool("auth_enabled", app.jwtService != nil))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			app.logger.Error("server failed", slog.String("error", err.Error()))
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}
