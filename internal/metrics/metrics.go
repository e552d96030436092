package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/qepting91/subreddit-analyzer/internal/domain"
)

var (
	// Fetches counts outbound calls per endpoint and outcome (ok, status, malformed, error).
	Fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "analyzer",
		Name:      "fetches_total",
		Help:      "Outbound reddit requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	// Skips counts posts and authors dropped from a run.
	Skips = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "analyzer",
		Name:      "skipped_total",
		Help:      "Posts and authors skipped after a failed fetch.",
	}, []string{"level"})

	Runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "analyzer",
		Name:      "runs_total",
		Help:      "Aggregation runs by result.",
	}, []string{"result"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "analyzer",
		Name:      "run_duration_seconds",
		Help:      "Wall time of aggregation runs.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)

const (
	EndpointAbout    = "about"
	EndpointListing  = "listing"
	EndpointComments = "comments"
	EndpointUser     = "user"
)

// ObserveFetch records one outbound call.
func ObserveFetch(endpoint string, err error) {
	Fetches.WithLabelValues(endpoint, Outcome(err)).Inc()
}

// Outcome classifies a fetch error for the Fetches counter.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsStatus(err):
		return "status"
	case errors.Is(err, domain.ErrMalformed):
		return "malformed"
	default:
		return "error"
	}
}
