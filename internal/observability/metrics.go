package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MediaUploadRetries counts media store upload attempts that failed and were retried.
	MediaUploadRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_media_upload_retries_total",
		Help: "Total number of retried media store uploads by object kind",
	}, []string{"kind"})

	// MediaUploadFailures counts media store uploads that exhausted all attempts.
	MediaUploadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_media_upload_failures_total",
		Help: "Total number of media store uploads that failed permanently",
	}, []string{"kind"})

	// ToggleConflicts counts toggle inserts lost to a concurrent duplicate,
	// resolved as "already present".
	ToggleConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipstream_toggle_conflicts_total",
		Help: "Total number of toggle inserts that hit the uniqueness constraint",
	}, []string{"kind"})
)
