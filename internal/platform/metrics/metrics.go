package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the onboarding service.
type Metrics struct {
	SessionsStarted       prometheus.Counter
	SessionsAuthorized    prometheus.Counter
	SessionsFailed        prometheus.Counter
	ChallengesIssued      *prometheus.CounterVec
	ChallengesVerified    *prometheus.CounterVec
	ChallengeResends      prometheus.Counter
	RequirementsResolved  prometheus.Histogram
	LivenessFallbacks     prometheus.Counter
	RequestLatencySeconds *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics with the given registerer.
// Pass prometheus.DefaultRegisterer in main; tests use a private registry to
// avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bifrost_onboarding_sessions_started_total",
			Help: "Total number of onboarding sessions started",
		}),
		SessionsAuthorized: factory.NewCounter(prometheus.CounterOpts{
			Name: "bifrost_onboarding_sessions_authorized_total",
			Help: "Total number of onboarding sessions reaching the authorized state",
		}),
		SessionsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "bifrost_onboarding_sessions_failed_total",
			Help: "Total number of onboarding sessions terminating in failure",
		}),
		ChallengesIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bifrost_challenges_issued_total",
			Help: "Total number of authentication challenges issued, by kind",
		}, []string{"kind"}),
		ChallengesVerified: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bifrost_challenges_verified_total",
			Help: "Total number of challenge verification attempts, by kind and outcome",
		}, []string{"kind", "outcome"}),
		ChallengeResends: factory.NewCounter(prometheus.CounterOpts{
			Name: "bifrost_challenge_resends_total",
			Help: "Total number of challenge resends requested",
		}),
		RequirementsResolved: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bifrost_requirements_resolved",
			Help:    "Number of requirements presented per resolution pass",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 8},
		}),
		LivenessFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "bifrost_liveness_fallbacks_total",
			Help: "Total number of sessions falling back from biometric registration",
		}),
		RequestLatencySeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bifrost_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
