// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the validation gate.
package api

import (
	"dedupgate/internal/api/handler/v1handler"
	"dedupgate/internal/config"
	"dedupgate/pkg/controller"
	_ "embed"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds the context of every request. Zero leaves requests unbounded.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
}

type Deps struct {
	v1handler.Deps
}

// NewHandler builds the router of the service:
// - v1 validation routes and the compatibility routes of the first deployment
// - health endpoint
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - pprof endpoints for profiling
// The router is wrapped with request timeout, recover, CORS and logging middlewares.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	if deps.Clients == nil || deps.Companies == nil {
		return nil, errors.New("client and company validators are required")
	}
	h := v1handler.New(deps.Deps)

	r := chi.NewRouter()
	r.Use(controller.WithMetrics)

	// v1 api
	r.Route("/v1", func(r chi.Router) {
		r.Post("/clients/validate", h.ValidateClient)
		r.Post("/companies/validate", h.ValidateCompany)
		// v1 api swagger playground
		r.Handle("/docs/*", v5emb.New(
			"Duplicate Validation Gate",
			"/specs/v1.yaml",
			"/v1/docs/",
		))
	})
	// compatibility routes of the first deployment
	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", h.ValidateClient)
		r.Post("/validate-client", h.ValidateClient)
		r.Post("/validate-company", h.ValidateCompany)
	})
	r.Get("/healthz", h.Health)

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})

	// prometheus metrics server
	if opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}

	// pprof
	r.Handle(controller.PprofPrefix+"*", controller.PprofMux())

	var handler http.Handler = r
	if opts.RequestTimeout > 0 {
		handler = controller.WithTimeout(handler, opts.RequestTimeout)
	}

	// panics answer like any other internal error
	internal := v1handler.ErrorBody(deps.Clients.Profile().Catalog.Internal)
	handler = controller.WithRecover(handler, internal)

	// cors
	handler = controller.WithCORS(handler)

	// logger
	handler = controller.WithLogger(handler)

	return handler, nil
}

// NewServer wires up and returns a configured *http.Server using the provided
// Options.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
