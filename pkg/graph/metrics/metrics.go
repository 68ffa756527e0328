package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// System metrics
	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_bytes",
		Help: "Current system memory usage",
	})

	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_goroutines",
		Help: "Number of goroutines",
	})

	// KEGG client metrics
	KEGGRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kegg_requests_total",
			Help: "Total number of requests made to the KEGG REST API",
		},
		[]string{"op", "status"},
	)

	// Analysis metrics
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "overlap_analysis_duration_seconds",
			Help: "Time spent fetching memberships and computing overlaps",
		},
		[]string{"status"},
	)

	PathwaysSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "overlap_pathways_skipped_total",
		Help: "Number of selected pathways skipped because their genes could not be fetched",
	})

	CatalogFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_fetch_errors_total",
		Help: "Number of failed pathway catalog fetches",
	})

	// Graph metrics
	GraphNodeCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graph_nodes_total",
			Help: "Number of nodes in the last rendered graph",
		},
		[]string{"node_type"},
	)

	GraphEdgeCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graph_edges_total",
			Help: "Number of edges in the last rendered graph",
		},
		[]string{"edge_type"},
	)

	// Session metrics
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "web_sessions_active",
		Help: "Number of live web sessions",
	})
)

// UpdateSystemMetrics updates system-level metrics
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}
