package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/filemerge/filemerge/internal/api"
	"github.com/filemerge/filemerge/pkg/cache"
	"github.com/filemerge/filemerge/pkg/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may finish after
// the server receives a stop signal.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the merge engine over HTTP",
		Long: `Start an HTTP server exposing the merge engine:

  POST /v1/merge/images   multipart upload, responds with the merged image
  POST /v1/merge/text     multipart upload, responds with the merged text
  GET  /version           build information
  GET  /healthz           liveness probe

The cache backend follows the settings file; --no-cache disables caching
for this server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runServe blocks until the context is cancelled or the server fails.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg := c.loadSettings()

	store, err := c.newCache(ctx, cfg.General, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	// API results get their own key namespace so CLI merges of the same
	// files never collide with uploaded content.
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(runner, c.Logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	c.Logger.Info("Server started", "addr", addr)
	printInfo("Serving on %s", StyleLink.Render(serveURL(addr)))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("Server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveURL renders a listen address as a clickable URL.
func serveURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
