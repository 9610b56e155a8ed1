package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay stage counters and histograms. Queue and watcher metrics carry no
// chain label (there is one value chain per process); RPC metrics are
// partitioned by chain role.

var (
	// Watcher
	WatcherNoticesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "watcher",
		Name:      "notices_total",
		Help:      "Total stake-intent notices delivered by the event source",
	}, []string{"path"}) // path: data | changed

	WatcherSubscriptionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "watcher",
		Name:      "subscription_errors_total",
		Help:      "Total event source errors (ingestion continues)",
	})

	WatcherHeadHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "relayer",
		Subsystem: "watcher",
		Name:      "head_height",
		Help:      "Latest observed value chain head height",
	})

	// Delay queue
	QueueEnqueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "queue",
		Name:      "enqueued_total",
		Help:      "Total stake intents inserted into the delay queue",
	})

	QueueDedupedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "queue",
		Name:      "deduplicated_total",
		Help:      "Total enqueue no-ops due to a live entry for the same intent",
	})

	QueuePromotedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "queue",
		Name:      "promoted_total",
		Help:      "Total entries promoted from pending to due",
	})

	QueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "relayer",
		Subsystem: "queue",
		Name:      "depth",
		Help:      "Live queue entries by state",
	}, []string{"state"})

	// Pipeline
	PipelineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Total pipeline runs by result code",
	}, []string{"code"})

	PipelineStageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "relayer",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Per-stage pipeline duration including mining wait",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"stage"})

	PipelineActiveRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "relayer",
		Subsystem: "pipeline",
		Name:      "active_runs",
		Help:      "Pipeline runs currently in flight (bounded by the single worker)",
	})

	// RPC
	RPCCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "rpc",
		Name:      "calls_total",
		Help:      "Total JSON-RPC calls by chain role, method and status",
	}, []string{"chain", "method", "status"})

	RPCRateLimitWaits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "rpc",
		Name:      "rate_limit_waits_total",
		Help:      "Total RPC calls delayed by the client-side rate limiter",
	}, []string{"chain"})

	RPCBreakerRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "rpc",
		Name:      "breaker_rejections_total",
		Help:      "Total RPC calls rejected by an open circuit breaker",
	}, []string{"chain"})

	// Caches
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits per cache",
	}, []string{"cache"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses per cache",
	}, []string{"cache"})

	// Alerts
	AlertsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "alerts",
		Name:      "sent_total",
		Help:      "Total alerts sent per channel and type",
	}, []string{"channel", "type"})

	AlertsCooldownSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayer",
		Subsystem: "alerts",
		Name:      "cooldown_skipped_total",
		Help:      "Total alerts suppressed by cooldown per channel and type",
	}, []string{"channel", "type"})
)
