package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	accountmod "github.com/dmitrymomot/authgate/modules/account"
	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/metrics"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.HTTP.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	d, err := a.buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close(a.log)

	svc, err := a.newServices(d)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(a.cfg.HTTP,
		httpserver.WithLogger(a.log),
		httpserver.WithStartHook(func(addr string) {
			a.log.Info("authgate is listening", slog.String("addr", addr))
		}),
	)
	return srv.Run(ctx, a.router(svc, d.checks))
}

func (a *app) router(svc accountmod.Services, checks []httpserver.Check) http.Handler {
	ips := clientip.New(clientip.WithTrustedProxyHeaders(a.cfg.TrustProxyHeaders))

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		metrics.Middleware,
		ips.Middleware,
	)

	r.Get("/healthz", httpserver.HealthCheckHandler(a.log, checks...))
	r.Handle("/metrics", metrics.Handler())
	r.Mount("/", accountmod.New(svc, a.log).Routes())
	return r
}
