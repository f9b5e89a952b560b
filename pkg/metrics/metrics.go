package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every metric exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	initOnce sync.Once

	// Custom histogram buckets for API response times from milliseconds to seconds
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Object storage client metrics
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	Signups = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_signups_total",
			Help: "Total signup attempts",
		},
		[]string{"role", "status"},
	)

	Logins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_logins_total",
			Help: "Total login attempts",
		},
		[]string{"status"},
	)

	SessionValidations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_session_validations_total",
			Help: "Total session credential validations",
		},
		[]string{"status"},
	)

	ProfileUpdates = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_profile_updates_total",
			Help: "Total number of profile updates",
		},
		[]string{"role", "status"},
	)

	AvatarFetches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_avatar_fetches_total",
			Help: "Total avatar fetches by outcome",
		},
		[]string{"result"}, // "image", "placeholder"
	)

	MentorDirectoryQueries = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_mentor_directory_queries_total",
			Help: "Total mentor directory listings",
		},
		[]string{"order_by", "filtered"},
	)

	MatchRequestOperations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_match_request_operations_total",
			Help: "Total match request operations by outcome",
		},
		[]string{"operation", "status"},
	)

	MatchRequestOperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentormatch_match_request_operation_duration_seconds",
			Help:    "Match request operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	MatchRequestsCascadeRejected = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "mentormatch_match_requests_cascade_rejected_total",
			Help: "Pending requests rejected because the mentor accepted another request",
		},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init registers runtime collectors and the build info gauge
func Init(serviceName, version string) {
	initOnce.Do(func() {
		Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		buildInfo := factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mentormatch_build_info",
				Help: "Build information",
			},
			[]string{"service_name", "version"},
		)
		buildInfo.WithLabelValues(serviceName, version).Set(1)
	})
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
