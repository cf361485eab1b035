package rest

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Counter of HTTP requests by route and status code.",
		}, []string{"method", "route", "code"})

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taskkeeper",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Bucketed histogram of HTTP request handling time.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"})

	httpRejectedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Subsystem: "http",
			Name:      "rejected_total",
			Help:      "Counter of requests turned away by the in-flight limiter.",
		})

	httpPanicCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Subsystem: "http",
			Name:      "panics_total",
			Help:      "Counter of panics recovered while serving requests.",
		})
)

func init() {
	prometheus.MustRegister(httpRequestCounter)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRejectedCounter)
	prometheus.MustRegister(httpPanicCounter)
}
