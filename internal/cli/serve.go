package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/robustify/gmplot/internal/server"
	"github.com/robustify/gmplot/pkg/config"
	"github.com/robustify/gmplot/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the HTTP plot service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP plot service",
		Long: `Serve runs the plot renderer as an HTTP API.

POST /v1/maps renders an annotation stream; GET /v1/maps lists archived
maps and GET /v1/maps/{id} serves an archived page. Backends for the
page cache and the archive are selected in the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe wires the configured backends into a runner and serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	logger := loggerFromContext(ctx)

	pageCache, err := cfg.OpenCache(ctx)
	if err != nil {
		return err
	}
	defer pageCache.Close()

	archive, err := cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	if archive != nil {
		defer archive.Close(context.Background())
	}

	runner := pipeline.NewRunner(pageCache, archive, logger)
	runner.APIKey = cfg.Maps.APIKey
	runner.IconBase = cfg.Maps.IconBase
	runner.MinInterval = cfg.MinInterval()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(runner, archive, logger).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
