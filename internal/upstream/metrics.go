package upstream

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	clientLive = "live"
	clientMock = "mock"

	resultFound    = "found"
	resultNotFound = "not_found"
	resultError    = "error"
)

var (
	fetchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_bff",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Number of activity fetches grouped by client variant and result.",
	}, []string{"client", "result"})

	fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activity_bff",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of outbound calls to the activity API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})

	transportRecycles = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_bff",
		Subsystem: "upstream",
		Name:      "transport_recycles_total",
		Help:      "Number of times the pooled upstream transport was replaced after reaching its lifetime.",
	})
)

func init() {
	prometheus.MustRegister(fetchCounter, fetchDuration, transportRecycles)
}

func fetchResult(act *Activity, err error) string {
	switch {
	case err != nil:
		return resultError
	case !act.Found():
		return resultNotFound
	default:
		return resultFound
	}
}

func recordFetch(client string, act *Activity, err error) {
	fetchCounter.WithLabelValues(client, fetchResult(act, err)).Inc()
}

func observeLiveFetch(act *Activity, err error, elapsed time.Duration) {
	result := fetchResult(act, err)
	fetchCounter.WithLabelValues(clientLive, result).Inc()
	fetchDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}
