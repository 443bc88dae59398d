// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels shared by the encode and render counters.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Cache outcome labels.
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	QREncodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_encode_total",
			Help: "Total number of encode calls by QR type and result",
		},
		[]string{"qr_type", "result"},
	)

	QREncodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qr_encode_duration_seconds",
			Help:    "Duration of validate plus build in seconds",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		},
		[]string{"qr_type"},
	)

	QRRenderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_render_total",
			Help: "Total number of render service calls by result",
		},
		[]string{"result"},
	)

	QRRenderCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_render_cache_total",
			Help: "Render cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// EncodeResult maps an encode error to its result label.
func EncodeResult(err error, validation bool) string {
	switch {
	case err == nil:
		return ResultSuccess
	case validation:
		return ResultInvalid
	default:
		return ResultError
	}
}
