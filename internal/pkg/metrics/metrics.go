// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "robinrocks"

type Metrics struct {
	registry *prometheus.Registry

	RecordingTransitions *prometheus.CounterVec
	DeviceFailures       prometheus.Counter
	ActiveRecordings     prometheus.Gauge
	AdvisorReplies       *prometheus.CounterVec
	ScrapingJobs         *prometheus.CounterVec
	LeadsSubmitted       prometheus.Counter
}

// New builds the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RecordingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recorder",
			Name:      "transitions_total",
			Help:      "Recording state transitions by target state.",
		}, []string{"state"}),
		DeviceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recorder",
			Name:      "device_failures_total",
			Help:      "Failed attempts to acquire the audio input.",
		}),
		ActiveRecordings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "recorder",
			Name:      "active_sessions",
			Help:      "Sessions currently holding an audio input.",
		}),
		AdvisorReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "replies_total",
			Help:      "Advisor replies by ruleset and matched rule.",
		}, []string{"ruleset", "rule"}),
		ScrapingJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scraper",
			Name:      "jobs_total",
			Help:      "Scraping jobs by final status.",
		}, []string{"status"}),
		LeadsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leads",
			Name:      "submitted_total",
			Help:      "Accepted lead generation forms.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RecordingTransitions,
		m.DeviceFailures,
		m.ActiveRecordings,
		m.AdvisorReplies,
		m.ScrapingJobs,
		m.LeadsSubmitted,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
