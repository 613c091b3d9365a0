package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inputhook_events_total",
			Help: "Decoded input events delivered to a callback",
		},
		[]string{"engine", "kind"},
	)
	EventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inputhook_events_dropped_total",
			Help: "Raw input events that could not be decoded",
		},
		[]string{"engine", "reason"},
	)
	GrabDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inputhook_grab_decisions_total",
			Help: "Grab callback outcomes",
		},
		[]string{"decision"},
	)
	SimulateErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inputhook_simulate_errors_total",
			Help: "Failed simulate calls by error kind",
		},
		[]string{"kind"},
	)
)

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{EventsTotal, EventsDropped, GrabDecisions, SimulateErrors}
}
