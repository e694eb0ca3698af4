package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notifyd/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the engine as a daemon with the HTTP admin API",
		Example: "  notifyd serve --addr :8080\n" +
			"  curl -XPOST localhost:8080/topics/AAPL/publish -H 'Content-Type: application/json' -d '{\"value\":145}'",
		Args: args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, argv []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			} else if v := envStr("NOTIFYD_ADDR", ""); v != "" {
				a.cfg.Addr = v
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080 (defaults NOTIFYD_ADDR or config addr)")
	return cmd
}

// serve blocks until ctx is done or the listener fails, then shuts the HTTP
// server down gracefully. The engine is closed by the caller.
func (a *app) serve(ctx context.Context) error {
	e, err := a.engine()
	if err != nil {
		return err
	}
	httpapi.SetCORSOptions(a.cfg.CORS.Enabled, a.cfg.CORS.Origins, a.cfg.CORS.Methods, a.cfg.CORS.Headers)
	httpapi.SetRequestLogLevel(a.cfg.LogLevel)
	httpapi.SetMaxBodyBytes(a.cfg.MaxBodyBytes)
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           httpapi.NewMux(e),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.Addr).Str("delivery_mode", a.cfg.DeliveryMode).Msg("notifyd listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	a.log.Info().Msg("shutting down")
	cancelBase()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		a.log.Warn().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}
