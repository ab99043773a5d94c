package main

import (
	"context"
	"dedupgate/internal/api"
	"dedupgate/internal/api/handler/v1handler"
	"dedupgate/internal/config"
	"dedupgate/internal/gate"
	"dedupgate/pkg/logger"
	"dedupgate/pkg/metrics"
	"dedupgate/pkg/storage"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newValidators builds the client and company gates over st with the
// configured catalog and lookup mode.
func newValidators(cfg *config.Config, st storage.Lookup, opts gate.Options) (clients, companies gate.Validator, err error) {
	catalog, err := gate.CatalogFor(cfg.Validation.Locale)
	if err != nil {
		return nil, nil, err
	}

	if clients, err = gate.New(st, gate.ClientProfile(catalog), opts); err != nil {
		return nil, nil, fmt.Errorf("could not create client gate: %w", err)
	}
	if companies, err = gate.New(st, gate.CompanyProfile(catalog), opts); err != nil {
		return nil, nil, fmt.Errorf("could not create company gate: %w", err)
	}

	return clients, companies, nil
}

func setupServer(ctx context.Context, cfg *config.Config, st storage.Storage) func(ctx context.Context) {
	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}

	opts := gate.NewOptions(cfg)
	opts.MeterProvider = mp
	clients, companies, err := newValidators(cfg, st, opts)
	if err != nil {
		logger.Fatal(ctx, "could not create validators", zap.Error(err))
	}

	server, err := api.NewServer(api.Deps{Deps: v1handler.Deps{
		Clients:   clients,
		Companies: companies,
		Store:     st,
	}}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the validation API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			stopWebserver := setupServer(ctx, cfg, st)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
