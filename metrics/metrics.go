// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RatingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieapi_ratings_created_total",
			Help: "Total number of ratings created",
		},
	)

	RatingsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieapi_ratings_deleted_total",
			Help: "Total number of ratings deleted",
		},
	)

	// CommentsDeleted counts every removed comment, including replies removed by a subtree cascade.
	CommentsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieapi_comments_deleted_total",
			Help: "Total number of comments deleted, replies included",
		},
	)

	LoginFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieapi_login_failures_total",
			Help: "Total number of rejected login attempts",
		},
	)

	RecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movieapi_rating_recompute_duration_seconds",
			Help:    "Duration of movie aggregate rating recomputation",
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieapi_rating_cache_requests_total",
			Help: "Average-rating cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	ReconcileRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieapi_reconcile_runs_total",
			Help: "Scheduled aggregate reconciliation runs by outcome",
		},
		[]string{"outcome"}, // success, error
	)
)
