// Package httptransport assembles the public router.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bifrost/internal/onboarding/handler"
)

// Registrar is anything that can mount its routes on the router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the onboarding API plus the operational endpoints.
func NewRouter(onboarding *handler.Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	onboarding.Register(r)
	return r
}
