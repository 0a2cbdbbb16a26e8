package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NewsFetchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_fetches_total",
			Help: "Total number of upstream news fetches",
		},
	)

	NewsFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_fetch_failures_total",
			Help: "Total number of failed upstream news fetches",
		},
	)

	NewsFetchDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_fetch_duration_seconds",
			Help:    "Duration of upstream news fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
