package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securein_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "securein_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	PassesIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securein_passes_issued_total",
		Help: "Total entry passes issued",
	})

	PassScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "securein_pass_scans_total",
		Help: "Total scan outcomes by action (entry, exit, rejected, conflict)",
	}, []string{"action"})

	PassesExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "securein_passes_expired_total",
		Help: "Total passes transitioned to expired by read-path write-backs and sweeps",
	})
)
