package handler

import "github.com/prometheus/client_golang/prometheus"

var requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "inventory",
	Subsystem: "api",
	Name:      "requests_total",
	Help:      "Inventory requests grouped by transport, operation and outcome.",
}, []string{"transport", "op", "status"})

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{requestsTotal}
}
