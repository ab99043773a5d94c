package controller_test

import (
	"dedupgate/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func requestsFor(t *testing.T, route, status string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["route"] == route && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}

	return 0
}

func TestWithMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(controller.WithMetrics)
	r.Post("/v1/items/{id}/validate", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	beforeMatched := requestsFor(t, "/v1/items/{id}/validate", "200")
	beforeUnmatched := requestsFor(t, "unmatched", "404")

	for _, path := range []string{"/v1/items/1/validate", "/v1/items/2/validate"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/nope/123", nil))

	require.InDelta(t, beforeMatched+2, requestsFor(t, "/v1/items/{id}/validate", "200"), 0)
	require.InDelta(t, beforeUnmatched+1, requestsFor(t, "unmatched", "404"), 0)
}
