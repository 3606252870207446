package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	MealsLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "meals_logged_total",
			Help: "Total meals logged against a budget",
		},
	)
	MealsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "meals_deleted_total",
			Help: "Total meal logs deleted (with refund attempt)",
		},
	)
	AuditFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_audit_failures_total",
			Help: "Audit log writes that failed",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(MealsLogged)
	prometheus.MustRegister(MealsDeleted)
	prometheus.MustRegister(AuditFailures)
	prometheus.MustRegister(WorkerQueueDepth)
}
