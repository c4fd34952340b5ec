package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_submissions_total",
			Help: "Total number of exam submissions",
		},
		[]string{"outcome"},
	)

	GradingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_gradings_total",
			Help: "Total number of graded submissions",
		},
		[]string{"mode"},
	)

	ScorePercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "exam_score_percentage",
			Help:    "Distribution of result percentages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
