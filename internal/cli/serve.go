package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudscope/cloudscope/internal/server"
	"github.com/cloudscope/cloudscope/pkg/render"
	"github.com/cloudscope/cloudscope/pkg/session"
)

// serveCommand runs the HTTP API over a persisted dataset session.
func (c *CLI) serveCommand(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API over the inventory graph",
		Long: `Run the HTTP API over the inventory graph.

Sources persisted in the configured store are loaded at startup; uploads
through the API are persisted back to it. The server owns one session, so
filter and layout state is shared by all clients.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg Config) error {
	logger := loggerFromContext(ctx)

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	sess := session.New(session.WithStore(st))
	p := newProgress(logger)
	skipped, err := sess.Load(ctx)
	if err != nil {
		return err
	}
	for _, skipErr := range skipped {
		logger.Warn("skipped persisted source", "err", skipErr)
	}
	report := sess.Report()
	p.done("Loaded sources")
	logger.Info("graph ready",
		"nodes", report.Nodes,
		"edges", report.Edges,
		"dropped_edges", report.DroppedEdges,
	)

	exportCache, err := newCache(cfg.Cache.Disabled, cfg.Cache.Dir)
	if err != nil {
		return err
	}
	defer exportCache.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(sess, render.NewExporter(exportCache), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
