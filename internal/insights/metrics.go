package insights

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomeEmpty   = "empty"
)

var (
	generateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kidtracker_insight_requests_total",
		Help: "Gemini generateContent calls by outcome",
	}, []string{"outcome"})

	generateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kidtracker_insight_request_duration_seconds",
		Help:    "Gemini generateContent latency in seconds",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
	})
)
