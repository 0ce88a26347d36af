package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transcodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vodsite_transcode_duration_seconds",
		Help:    "Time taken to transcode one rendition",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})
	transcodeJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vodsite_transcode_jobs_total",
		Help: "Transcode jobs by outcome",
	}, []string{"outcome"})
	activeJobs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vodsite_transcode_active_jobs",
		Help: "Transcode jobs currently running",
	})
	ingestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vodsite_ingest_total",
		Help: "Upload ingestions by outcome",
	}, []string{"outcome"})
)
