package state

import "github.com/prometheus/client_golang/prometheus"

var (
	// cacheLookups counts view cache lookups by result ("hit" or "miss").
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_view_cache_lookups_total",
			Help: "Listing view cache lookups by result.",
		},
		[]string{"result"},
	)

	// invalidations counts listing change notifications received by states.
	invalidations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_view_cache_invalidations_total",
			Help: "Listing change notifications that invalidated a view cache.",
		},
	)
)

func init() {
	prometheus.MustRegister(cacheLookups, invalidations)
}
