package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/piwi3910/RackPlan/internal/model"
)

type metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	computations *prometheus.CounterVec
	findings     *prometheus.CounterVec
	exports      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rackplan_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rackplan_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rackplan_computations_total",
			Help: "Capacity computations by bay-count method.",
		}, []string{"method"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rackplan_validation_findings_total",
			Help: "Validation findings by severity and kind.",
		}, []string{"severity", "kind"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rackplan_exports_total",
			Help: "Rendered exports by format.",
		}, []string{"format"}),
	}
	reg.MustRegister(m.requests, m.duration, m.computations, m.findings, m.exports)
	return m
}

func (m *metrics) observe(res model.Result) {
	m.computations.WithLabelValues(string(res.BayCountDetails.Method)).Inc()
	for _, f := range res.Validation.Errors {
		m.findings.WithLabelValues("error", string(f.Kind)).Inc()
	}
	for _, f := range res.Validation.Warnings {
		m.findings.WithLabelValues("warning", string(f.Kind)).Inc()
	}
}
