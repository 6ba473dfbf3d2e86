package cache

import "github.com/prometheus/client_golang/prometheus"

var operationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_operations_total",
		Help: "Cache operations by backend, operation and outcome",
	},
	[]string{"backend", "operation", "result"},
)

func init() {
	prometheus.MustRegister(operationsTotal)
}

func observeOp(backend, operation, result string) {
	operationsTotal.WithLabelValues(backend, operation, result).Inc()
}
