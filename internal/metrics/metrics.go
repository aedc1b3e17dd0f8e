package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	combineTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planview_combine_total",
			Help: "The total number of aggregation runs over optimization results",
		},
	)
	resultRecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "planview_result_records_total",
			Help: "The total number of optimization result records folded into plans",
		},
	)
	teamStatsCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planview_team_stats_cache_total",
			Help: "Team statistics lookups by cache result",
		},
		[]string{"result"},
	)
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planview_upstream_requests_total",
			Help: "Requests sent to the planning API by endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)
)

// RecordCombine counts one aggregation run over n records
func RecordCombine(n int) {
	combineTotal.Inc()
	resultRecordsTotal.Add(float64(n))
}

// RecordStatsLookup counts a team statistics cache hit or miss
func RecordStatsLookup(hit bool) {
	if hit {
		teamStatsCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	teamStatsCacheTotal.WithLabelValues("miss").Inc()
}

// RecordUpstream counts one planning API call. status 0 means the request failed before a response.
func RecordUpstream(endpoint string, status int) {
	upstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}
